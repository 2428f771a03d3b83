package diff

import (
	"math"
	"testing"

	"github.com/hazyhaar/domdiff/dom"
)

func el(tag string, attrs map[string]string) *dom.Node {
	return dom.NewElement(tag, attrs)
}

func TestScoreIdenticalFullSignals(t *testing.T) {
	a := el("div", map[string]string{"id": "main", "class": "box wide"})
	b := el("div", map[string]string{"id": "main", "class": "box wide"})
	a.XPath = "/html/body/div"
	b.XPath = "/html/body/div"

	if got := Score(a, b); got != 1.0 {
		t.Fatalf("got %v, want 1.0", got)
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := []struct {
		a, b *dom.Node
	}{
		{el("div", nil), el("span", nil)},
		{el("div", map[string]string{"id": "a"}), el("div", map[string]string{"id": "b"})},
		{el("div", map[string]string{"class": "x y"}), el("div", map[string]string{"class": "y z"})},
		{el("a", map[string]string{"id": "x", "class": "c"}), el("a", map[string]string{"id": "x", "class": "c"})},
	}
	for i, p := range pairs {
		s := Score(p.a, p.b)
		if s < 0 || s > 1 {
			t.Fatalf("pair %d: score %v out of [0,1]", i, s)
		}
	}
}

func TestScoreNoCommonSignals(t *testing.T) {
	a := el("div", map[string]string{"id": "a"})
	b := el("span", map[string]string{"id": "b"})
	a.XPath = "/html/body/div"
	b.XPath = "/html/body/span"

	if got := Score(a, b); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestScoreMissingIDContributesNothing(t *testing.T) {
	// Tag and xpath agree, neither side has id or class: 5/11.
	a := el("p", nil)
	b := el("p", nil)
	a.XPath = "/html/body/p"
	b.XPath = "/html/body/p"

	want := 5.0 / 11.0
	if got := Score(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScoreIDOnOneSideOnly(t *testing.T) {
	a := el("div", map[string]string{"id": "main"})
	b := el("div", nil)

	withID := Score(a, b)
	a2 := el("div", nil)
	without := Score(a2, b)
	if withID != without {
		t.Fatalf("one-sided id changed score: %v vs %v", withID, without)
	}
}

func TestClassOverlapPartial(t *testing.T) {
	// {box, wide} vs {box, tall}: intersection 1, union 3.
	a := el("div", map[string]string{"class": "box wide"})
	b := el("div", map[string]string{"class": "box tall"})

	want := (weightTag + weightClass*(1.0/3.0)) / totalWeight
	if got := Score(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestClassOverlapDuplicateAndMessyTokens(t *testing.T) {
	// Duplicates collapse; arbitrary whitespace splits.
	a := el("div", map[string]string{"class": "  box   box\twide "})
	b := el("div", map[string]string{"class": "wide box"})

	want := (weightTag + weightClass) / totalWeight
	if got := Score(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestClassOverlapEmptyValue(t *testing.T) {
	// Both carry class="": zero tokens, overlap is 0, not NaN.
	a := el("div", map[string]string{"class": ""})
	b := el("div", map[string]string{"class": ""})

	got := Score(a, b)
	if math.IsNaN(got) {
		t.Fatalf("score is NaN")
	}
	want := weightTag / totalWeight
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScoreIgnoresText(t *testing.T) {
	a := dom.NewElement("p", nil, dom.NewText("before"))
	b := dom.NewElement("p", nil, dom.NewText("after, completely different"))
	a.XPath = "/html/body/p"
	b.XPath = "/html/body/p"

	c := dom.NewElement("p", nil, dom.NewText("before"))
	c.XPath = "/html/body/p"
	if Score(a, b) != Score(a, c) {
		t.Fatalf("text content influenced score")
	}
}
