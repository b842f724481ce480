package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Markdown converts a rendered catalog fragment to Markdown for consumers
// that index or post-process the catalog as text.
func Markdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("convert fragment to markdown: %w", err)
	}
	return md, nil
}
