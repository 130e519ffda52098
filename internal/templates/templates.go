// Package templates renders the storefront page and the product grid fragment.
package templates

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/camposjoaoc/Seedly/internal/catalog"
	"github.com/camposjoaoc/Seedly/internal/productgrid"
)

//go:embed files/*.tmpl
var files embed.FS

var views = template.Must(template.New("seedly").Funcs(template.FuncMap{
	"price":        Price,
	"gridPath":     func() string { return GridPath },
	"showMorePath": func() string { return ShowMorePath },
}).ParseFS(files, "files/*.tmpl"))

// CardRenderer renders a single product card.
type CardRenderer interface {
	RenderCard(ctx context.Context, w io.Writer, p catalog.Product) error
}

// CardRendererFunc adapts a function to CardRenderer.
type CardRendererFunc func(ctx context.Context, w io.Writer, p catalog.Product) error

// RenderCard implements CardRenderer.
func (f CardRendererFunc) RenderCard(ctx context.Context, w io.Writer, p catalog.Product) error {
	return f(ctx, w, p)
}

type defaultCard struct{}

func (defaultCard) RenderCard(_ context.Context, w io.Writer, p catalog.Product) error {
	return views.ExecuteTemplate(w, "card", p)
}

// DefaultCardRenderer renders the built-in product card.
func DefaultCardRenderer() CardRenderer {
	return defaultCard{}
}

type gridItem struct {
	Anchor string
	Card   template.HTML
}

type gridView struct {
	GridData
	Items []gridItem
}

type pageView struct {
	PageData
	GridHTML template.HTML
}

// Grid renders the grid fragment. Each displayed product is wrapped in its scroll anchor.
func Grid(data GridData, cards CardRenderer) templ.Component {
	if cards == nil {
		cards = DefaultCardRenderer()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		view := gridView{GridData: data}
		if !data.Empty {
			view.Items = make([]gridItem, 0, len(data.Displayed))
			var buf bytes.Buffer
			for _, p := range data.Displayed {
				buf.Reset()
				if err := cards.RenderCard(ctx, &buf, p); err != nil {
					return fmt.Errorf("templates: render card %s: %w", p.ID, err)
				}
				view.Items = append(view.Items, gridItem{
					Anchor: productgrid.AnchorID(p),
					Card:   template.HTML(buf.String()), //nolint:gosec // produced by a CardRenderer
				})
			}
		}
		return views.ExecuteTemplate(w, "grid", view)
	})
}

// Page renders the full products page with the grid embedded.
func Page(data PageData, cards CardRenderer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var grid bytes.Buffer
		if err := Grid(data.Grid, cards).Render(ctx, &grid); err != nil {
			return err
		}
		view := pageView{PageData: data, GridHTML: template.HTML(grid.String())} //nolint:gosec // rendered above
		return views.ExecuteTemplate(w, "page", view)
	})
}
