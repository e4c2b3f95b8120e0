package parser

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Grouping thresholds, as multiples of the font size.
const (
	rowTolerance    = 0.5 // baselines closer than this share a row
	wordGap         = 0.2 // horizontal gap that implies a space
	columnGap       = 2.0 // horizontal gap that splits a row into segments
	paragraphGap    = 0.7 // vertical gap between lines that starts a new block
	defaultFontSize = 10.0
)

// glyph is one shown string in top-down page coordinates.
type glyph struct {
	left, right float64
	top, bottom float64 // bottom is the baseline
	size        float64
	s           string
}

// segment is a horizontal run of glyphs on one row with no column-sized gap.
type segment struct {
	left, right float64
	top, bottom float64
	size        float64
	text        string
}

type blockBuilder struct {
	left, right float64
	top, bottom float64
	size        float64
	lines       []string
}

// blocksFromGlyphs groups positioned glyphs into text blocks: glyphs into
// rows, rows into segments split at wide gaps, segments into blocks by
// vertical proximity and horizontal overlap.
func blocksFromGlyphs(texts []pdflib.Text, box pageBox) []document.TextBlock {
	glyphs := toGlyphs(texts, box)
	if len(glyphs) == 0 {
		return nil
	}

	var segments []segment
	for _, row := range groupRows(glyphs) {
		segments = append(segments, splitRow(row)...)
	}
	return groupSegments(segments)
}

// toGlyphs converts shown strings to top-down boxes. Fonts without a
// /Widths array report W=0 and the reader stops advancing X, so a run of
// such glyphs would pile up on one spot; those are laid out with a cursor
// that starts each glyph no further left than the previous one's right edge.
func toGlyphs(texts []pdflib.Text, box pageBox) []glyph {
	glyphs := make([]glyph, 0, len(texts))
	var prev *glyph
	prevX := 0.0 // unshifted X of prev
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size < 0 {
			size = -size
		}
		if size == 0 {
			size = defaultFontSize
		}
		baseline := box.y1 - t.Y
		x := t.X - box.x0
		left := x
		w := t.W
		estimated := w <= 0
		if estimated {
			w = 0.5 * size * float64(utf8.RuneCountInString(t.S))
			if prev != nil && math.Abs(prev.bottom-baseline) <= rowTolerance*size && x >= prevX && x < prev.right {
				left = prev.right
			}
		}
		glyphs = append(glyphs, glyph{
			left:   left,
			right:  left + w,
			top:    baseline - size,
			bottom: baseline,
			size:   size,
			s:      t.S,
		})
		prev = nil
		if estimated {
			prev = &glyphs[len(glyphs)-1]
			prevX = x
		}
	}
	return glyphs
}

// groupRows buckets glyphs that share a baseline, top row first, each row
// ordered left to right.
func groupRows(glyphs []glyph) [][]glyph {
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].bottom != glyphs[j].bottom {
			return glyphs[i].bottom < glyphs[j].bottom
		}
		return glyphs[i].left < glyphs[j].left
	})

	var rows [][]glyph
	var current []glyph
	baseline := 0.0
	for _, g := range glyphs {
		if len(current) > 0 && g.bottom-baseline > rowTolerance*g.size {
			rows = append(rows, current)
			current = nil
		}
		if len(current) == 0 {
			baseline = g.bottom
		}
		current = append(current, g)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].left < row[j].left })
	}
	return rows
}

// splitRow turns one row into segments, breaking wherever the gap between
// consecutive glyphs is wide enough to be a column gutter.
func splitRow(row []glyph) []segment {
	var out []segment
	var sb strings.Builder
	var seg segment
	open := false
	pendingSpace := false
	prevRight := 0.0

	flush := func() {
		if !open {
			return
		}
		seg.text = strings.TrimSpace(sb.String())
		if seg.text != "" {
			out = append(out, seg)
		}
		sb.Reset()
		open = false
	}

	for _, g := range row {
		if strings.TrimSpace(g.s) == "" {
			pendingSpace = true
			continue
		}
		if open && g.left-prevRight > columnGap*g.size {
			flush()
		}
		if !open {
			seg = segment{left: g.left, right: g.right, top: g.top, bottom: g.bottom, size: g.size}
			open = true
			pendingSpace = false
		} else {
			if pendingSpace || g.left-prevRight > wordGap*g.size {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			seg.right = max(seg.right, g.right)
			seg.top = min(seg.top, g.top)
			seg.bottom = max(seg.bottom, g.bottom)
			seg.size = max(seg.size, g.size)
		}
		sb.WriteString(g.s)
		prevRight = g.right
	}
	flush()
	return out
}

// groupSegments merges segments into blocks. A segment continues the most
// recent block it sits just below and horizontally overlaps.
func groupSegments(segments []segment) []document.TextBlock {
	var blocks []*blockBuilder
	for _, s := range segments {
		var target *blockBuilder
		for i := len(blocks) - 1; i >= 0; i-- {
			b := blocks[i]
			gap := s.top - b.bottom
			if gap < -rowTolerance*s.size || gap > paragraphGap*max(s.size, b.size) {
				continue
			}
			if s.left < b.right && s.right > b.left {
				target = b
				break
			}
		}
		if target == nil {
			blocks = append(blocks, &blockBuilder{
				left: s.left, right: s.right, top: s.top, bottom: s.bottom,
				size:  s.size,
				lines: []string{s.text},
			})
			continue
		}
		target.lines = append(target.lines, s.text)
		target.left = min(target.left, s.left)
		target.right = max(target.right, s.right)
		target.bottom = max(target.bottom, s.bottom)
		target.size = s.size
	}

	out := make([]document.TextBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, document.TextBlock{
			Left:   b.left,
			Top:    b.top,
			Right:  b.right,
			Bottom: b.bottom,
			Text:   norm.NFC.String(strings.Join(b.lines, "\n")),
		})
	}
	return out
}
