package compositor

import "github.com/mossjr/tab-image-gen-poc/internal/domain"

// Fields pairs each content value with its style in drawing order. Money
// fields get a literal "$" prefix.
func Fields(content domain.AdContent, layout domain.TextLayoutConfig) []Field {
	out := make([]Field, 0, len(domain.FieldKeys))
	for _, key := range domain.FieldKeys {
		text := content.Value(key)
		if key == domain.FieldPrizeAmount || key == domain.FieldProjectedPool {
			text = "$" + text
		}
		out = append(out, Field{Key: key, Text: text, Style: layout.Style(key)})
	}
	return out
}
