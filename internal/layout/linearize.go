package layout

import (
	"fmt"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
)

// PageMarker returns the boundary line written ahead of each page.
func PageMarker(n int) string {
	return fmt.Sprintf("--- PAGE %d ---", n)
}

// LinearizePage renders one page, marker included. Multi-column pages emit
// the whole left column before any of the right column.
func LinearizePage(page *document.Page) string {
	blocks := SortBlocks(page.Blocks)
	mid := page.Width / 2

	var body string
	if IsMultiColumn(blocks, mid) {
		left, right := SplitColumns(blocks, mid)
		body = strings.Join(left, "\n") + "\n\n" + strings.Join(right, "\n")
	} else {
		var all []string
		for _, b := range blocks {
			if text := strings.TrimSpace(b.Text); text != "" {
				all = append(all, text)
			}
		}
		body = strings.Join(all, "\n")
	}

	return "\n" + PageMarker(page.Number) + "\n\n" + body
}

// Linearize renders every page of the document into one text blob.
func Linearize(doc *document.Document) string {
	var sb strings.Builder
	for _, page := range doc.Pages {
		sb.WriteString(LinearizePage(page))
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
