// Package css reads values out of inline CSS style attributes.
package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// PixelSize returns the font-size declared in an inline style attribute,
// truncated to a whole number. The unit is ignored: Notion renders block
// sizes in px. It reports false when the style is empty, malformed, or has
// no numeric font-size. When font-size is declared more than once the last
// declaration wins, as in the browser.
func PixelSize(style string) (int, bool) {
	if strings.TrimSpace(style) == "" {
		return 0, false
	}

	p := css.NewParser(parse.NewInputString(style), true)

	size, found := 0, false
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return size, found
		case css.DeclarationGrammar:
			if !strings.EqualFold(string(data), "font-size") {
				continue
			}
			if n, ok := firstNumber(p.Values()); ok {
				size, found = n, true
			}
		}
	}
}

// firstNumber returns the integer part of the first numeric token.
func firstNumber(tokens []css.Token) (int, bool) {
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			continue
		case css.NumberToken, css.DimensionToken, css.PercentageToken:
			return leadingInt(string(t.Data))
		default:
			return 0, false
		}
	}
	return 0, false
}

// leadingInt parses the digits at the start of s, e.g. "32.5px" -> 32.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
