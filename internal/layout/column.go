package layout

import (
	"sort"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
)

// Column is the bucket a block is assigned to on a page.
type Column string

const (
	ColumnLeft      Column = "left"
	ColumnRight     Column = "right"
	ColumnFullWidth Column = "full-width"
)

// ColumnAssignment records how one block on a page was classified.
type ColumnAssignment struct {
	Block        document.TextBlock `json:"block"`
	Column       Column             `json:"column"`
	SpansMidline bool               `json:"spans_midline,omitempty"`
}

// SpansMidline reports whether the block starts left of mid and ends right
// of it.
func SpansMidline(b document.TextBlock, mid float64) bool {
	return b.Left < mid && b.Right > mid
}

// IsMultiColumn reports whether any block crosses the midline. A single wide
// heading is enough to put the whole page in two-column mode.
func IsMultiColumn(blocks []document.TextBlock, mid float64) bool {
	for _, b := range blocks {
		if SpansMidline(b, mid) {
			return true
		}
	}
	return false
}

// SortBlocks returns a copy of blocks ordered by (top, left).
func SortBlocks(blocks []document.TextBlock) []document.TextBlock {
	sorted := make([]document.TextBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].Left < sorted[j].Left
	})
	return sorted
}

// SplitColumns buckets the non-empty blocks by their left edge. Blocks must
// already be sorted.
func SplitColumns(blocks []document.TextBlock, mid float64) (left, right []string) {
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		if b.Left < mid {
			left = append(left, text)
		} else {
			right = append(right, text)
		}
	}
	return left, right
}

// AssignColumns classifies every non-empty block on the page, matching the
// bucket LinearizePage renders it in. On single column pages every block is
// full-width; on multi-column pages a block crossing the midline goes left.
func AssignColumns(page *document.Page) []ColumnAssignment {
	mid := page.Width / 2
	blocks := SortBlocks(page.Blocks)
	multi := IsMultiColumn(blocks, mid)

	out := make([]ColumnAssignment, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		col := ColumnFullWidth
		switch {
		case !multi:
		case b.Left < mid:
			col = ColumnLeft
		default:
			col = ColumnRight
		}
		out = append(out, ColumnAssignment{Block: b, Column: col, SpansMidline: SpansMidline(b, mid)})
	}
	return out
}
