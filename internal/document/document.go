package document

// Document is a loaded resume: an ordered sequence of pages.
type Document struct {
	Name  string  // Source filename or path
	Pages []*Page // 1-based Number, in order
}

// Page is one rendered page and its text blocks.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Blocks []TextBlock
}

// TextBlock is a bounding-boxed span of text on one page. Coordinates are
// top-down: Top grows toward the bottom of the page.
type TextBlock struct {
	Left, Top, Right, Bottom float64
	Text                     string
}

// Width returns the horizontal extent of the block.
func (b TextBlock) Width() float64 {
	return b.Right - b.Left
}

// NumBlocks counts blocks across all pages.
func (d *Document) NumBlocks() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Blocks)
	}
	return n
}

// Reflowed builds a single-page document from text that has no geometry,
// such as paragraphs of a .docx or .md file. Blocks are stacked in source
// order with zero width so they always linearize as one column.
func Reflowed(name string, paragraphs []string) *Document {
	page := &Page{Number: 1}
	for i, p := range paragraphs {
		page.Blocks = append(page.Blocks, TextBlock{
			Top:    float64(i),
			Bottom: float64(i),
			Text:   p,
		})
	}
	return &Document{Name: name, Pages: []*Page{page}}
}
