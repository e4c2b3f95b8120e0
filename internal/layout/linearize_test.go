package layout

import (
	"strings"
	"testing"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
)

func blk(text string, left, top, right float64) document.TextBlock {
	return document.TextBlock{Left: left, Top: top, Right: right, Bottom: top + 12, Text: text}
}

func onePage(width float64, blocks ...document.TextBlock) *document.Document {
	return &document.Document{Pages: []*document.Page{{Number: 1, Width: width, Blocks: blocks}}}
}

func TestLinearize_SingleColumnScenario(t *testing.T) {
	doc := onePage(600,
		blk("Jane Doe", 0, 0, 200),
		blk("jane@x.com", 0, 20, 200),
	)
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\nJane Doe\njane@x.com"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_SpanningBlockJoinsLeftBucket(t *testing.T) {
	doc := onePage(600,
		blk("Jane Doe", 100, 0, 500),
		blk("Experience", 0, 40, 280),
		blk("Skills", 320, 40, 600),
	)
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\nJane Doe\nExperience\n\nSkills"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_LeftColumnPrecedesRight(t *testing.T) {
	// Right column blocks sit higher on the page than the left ones.
	doc := onePage(600,
		blk("R1", 320, 10, 580),
		blk("L1", 0, 20, 280),
		blk("Banner", 0, 0, 600),
		blk("R2", 320, 30, 580),
		blk("L2", 0, 40, 280),
	)
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\nBanner\nL1\nL2\n\nR1\nR2"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_SortsByTopThenLeft(t *testing.T) {
	doc := onePage(600,
		blk("third", 0, 30, 100),
		blk("second", 150, 10, 250),
		blk("first", 0, 10, 100),
	)
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\nfirst\nsecond\nthird"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_DropsEmptyBlocks(t *testing.T) {
	doc := onePage(600,
		blk("  Jane  ", 0, 0, 100),
		blk("   ", 0, 10, 100),
		blk("\n", 0, 20, 100),
		blk("Doe", 0, 30, 100),
	)
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\nJane\nDoe"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_MultiplePages(t *testing.T) {
	doc := &document.Document{Pages: []*document.Page{
		{Number: 1, Width: 600, Blocks: []document.TextBlock{blk("one", 0, 0, 100)}},
		{Number: 2, Width: 600, Blocks: []document.TextBlock{blk("two", 0, 0, 100)}},
	}}
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\none\n\n--- PAGE 2 ---\n\ntwo"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_EmptyPageKeepsMarker(t *testing.T) {
	doc := &document.Document{Pages: []*document.Page{
		{Number: 1, Width: 600},
		{Number: 2, Width: 600, Blocks: []document.TextBlock{blk("two", 0, 0, 100)}},
	}}
	got := Linearize(doc)
	if !strings.HasPrefix(got, "--- PAGE 1 ---") || !strings.Contains(got, "--- PAGE 2 ---\n\ntwo") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestLinearize_ReflowedDocumentIsSingleColumn(t *testing.T) {
	doc := document.Reflowed("cv.txt", []string{"Jane Doe", "Go, SQL"})
	got := Linearize(doc)
	want := "--- PAGE 1 ---\n\nJane Doe\nGo, SQL"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLinearize_DoesNotMutateBlocks(t *testing.T) {
	doc := onePage(600, blk("b", 0, 20, 100), blk("a", 0, 10, 100))
	Linearize(doc)
	if doc.Pages[0].Blocks[0].Text != "b" {
		t.Error("expected source block order to be left untouched")
	}
}
