package productgrid

import (
	"strings"

	"github.com/camposjoaoc/Seedly/internal/catalog"
)

const (
	anchorPrefix = "card-"
	hexDigits    = "0123456789abcdef"
)

// AnchorID returns the DOM id of the card wrapper for p. ASCII letters, digits and '-'
// are kept; every other byte, '_' included, is written as '_' plus two hex digits, so
// distinct product ids never share an anchor.
func AnchorID(p catalog.Product) string {
	var b strings.Builder
	b.Grow(len(anchorPrefix) + len(p.ID))
	b.WriteString(anchorPrefix)
	for i := 0; i < len(p.ID); i++ {
		c := p.ID[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
		}
	}
	return b.String()
}
