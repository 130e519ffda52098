package testutil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// CardIDs returns the anchor ids of the rendered grid cards, in document order.
func CardIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("#product-grid div.card-item").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("id", ""))
	})
	return ids
}

// ShowMoreValues decodes the hx-vals payload of the "Show More" button. It returns nil
// when the button is absent.
func ShowMoreValues(t testing.TB, doc *goquery.Document) map[string]string {
	t.Helper()

	button := doc.Find("button#show-more")
	if button.Length() == 0 {
		return nil
	}
	vals := map[string]string{}
	if err := json.Unmarshal([]byte(button.AttrOr("hx-vals", "")), &vals); err != nil {
		t.Fatalf("decode hx-vals: %v", err)
	}
	return vals
}

// PageToken returns the page-session token carried by the grid.
func PageToken(doc *goquery.Document) string {
	return doc.Find("#grid-page").AttrOr("value", "")
}
