package generator

import (
	"strings"

	"github.com/hay-kot/makeconfig/internal/serials"
)

// Placeholder returns the token replaced by the value of key.
func Placeholder(key string) string {
	return ":" + key + ":"
}

// segment is a run of template text. Replaced segments hold substituted values
// and are never searched for further placeholders.
type segment struct {
	text     string
	replaced bool
}

// Substitute replaces every literal occurrence of ":key:" with its value. Keys
// are applied one at a time in the order of s. Text inserted by a replacement
// is not scanned again, so a value that looks like a placeholder is written
// verbatim. Tokens without a matching key are left untouched.
func Substitute(content string, s serials.Serials) string {
	segments := []segment{{text: content}}

	for _, e := range s {
		token := Placeholder(e.Key)
		next := make([]segment, 0, len(segments))

		for _, seg := range segments {
			if seg.replaced || !strings.Contains(seg.text, token) {
				next = append(next, seg)
				continue
			}

			parts := strings.Split(seg.text, token)
			for i, part := range parts {
				if i > 0 {
					next = append(next, segment{text: e.Value, replaced: true})
				}
				if part != "" {
					next = append(next, segment{text: part})
				}
			}
		}

		segments = next
	}

	var sb strings.Builder
	sb.Grow(len(content))
	for _, seg := range segments {
		sb.WriteString(seg.text)
	}

	return sb.String()
}
