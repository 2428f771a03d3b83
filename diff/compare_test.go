package diff

import (
	"strings"
	"testing"

	"github.com/hazyhaar/domdiff/dom"
)

// page builds an html>body>... tree with computed xpaths.
func page(body ...*dom.Node) *dom.Node {
	root := dom.NewElement("html", nil, dom.NewElement("body", nil, body...))
	dom.ComputePaths(root)
	return root
}

func countElements(root *dom.Node) int {
	n := 0
	root.WalkElements(func(*dom.Node) { n++ })
	return n
}

func TestCompareSelfDiff(t *testing.T) {
	build := func() *dom.Node {
		return page(
			dom.NewElement("div", map[string]string{"id": "container", "class": "container"},
				dom.NewElement("div", map[string]string{"id": "item-1", "class": "item"}),
				dom.NewElement("div", map[string]string{"id": "item-2", "class": "item"}),
			),
		)
	}
	res := Compare(build(), build())

	if len(res.Added) != 0 || len(res.Removed) != 0 || len(res.Modified) != 0 {
		t.Fatalf("self diff not clean: added=%d removed=%d modified=%d",
			len(res.Added), len(res.Removed), len(res.Modified))
	}
	if got, want := len(res.Unchanged), countElements(build()); got != want {
		t.Fatalf("got %d unchanged, want %d", got, want)
	}
}

func TestCompareCompleteness(t *testing.T) {
	old := page(
		dom.NewElement("div", map[string]string{"id": "a"}),
		dom.NewElement("div", map[string]string{"id": "b", "class": "x"}),
		dom.NewElement("p", map[string]string{"id": "gone"}),
	)
	new := page(
		dom.NewElement("div", map[string]string{"id": "a"}),
		dom.NewElement("div", map[string]string{"id": "b", "class": "y"}),
		dom.NewElement("section", map[string]string{"id": "fresh"}),
	)

	res := Compare(old, new)

	oldTotal := len(res.Removed) + len(res.Modified) + len(res.Unchanged)
	if got, want := oldTotal, countElements(old); got != want {
		t.Fatalf("old side accounts for %d elements, want %d", got, want)
	}
	newTotal := len(res.Added) + len(res.Modified) + len(res.Unchanged)
	if got, want := newTotal, countElements(new); got != want {
		t.Fatalf("new side accounts for %d elements, want %d", got, want)
	}
}

func TestCompareRootsAlwaysPaired(t *testing.T) {
	old := dom.NewElement("html", nil)
	new := dom.NewElement("body", map[string]string{"id": "other"})
	dom.ComputePaths(old)
	dom.ComputePaths(new)

	res := Compare(old, new)

	if len(res.Added) != 0 || len(res.Removed) != 0 {
		t.Fatalf("roots swept instead of paired: added=%d removed=%d",
			len(res.Added), len(res.Removed))
	}
	if len(res.Modified) != 1 {
		t.Fatalf("got %d modified, want 1", len(res.Modified))
	}
}

func TestCompareThresholdStrict(t *testing.T) {
	// Same tag and id, shifted xpath, no class: 7/11 ≈ 0.636. The candidate
	// is scored during child alignment and must be rejected.
	old := page(
		dom.NewElement("div", map[string]string{"id": "x"}),
	)
	new := page(
		dom.NewElement("div", map[string]string{"id": "other"}),
		dom.NewElement("div", map[string]string{"id": "x"}),
	)

	res := Compare(old, new)

	if len(res.Removed) != 1 {
		t.Fatalf("got %d removed, want 1", len(res.Removed))
	}
	if id, _ := res.Removed[0].Attr("id"); id != "x" {
		t.Fatalf("removed id = %q, want x", id)
	}
	if len(res.Added) != 2 {
		t.Fatalf("got %d added, want 2", len(res.Added))
	}
	if len(res.Modified) != 0 {
		t.Fatalf("got %d modified, want 0", len(res.Modified))
	}
}

func TestCompareMatchSurvivesAttributeChange(t *testing.T) {
	// Same tag, xpath, and id: 9/11 ≈ 0.818. A changed non-identity attribute
	// must not break the match.
	old := page(dom.NewElement("div", map[string]string{"id": "hero", "title": "before"}))
	new := page(dom.NewElement("div", map[string]string{"id": "hero", "title": "after"}))

	res := Compare(old, new)

	if len(res.Added) != 0 || len(res.Removed) != 0 {
		t.Fatalf("matched pair split: added=%d removed=%d", len(res.Added), len(res.Removed))
	}
	if len(res.Modified) != 1 {
		t.Fatalf("got %d modified, want 1", len(res.Modified))
	}
	if got := res.Modified[0].Changes; len(got) != 1 || !strings.Contains(got[0], `"title"`) {
		t.Fatalf("got changes %v, want one title change", got)
	}
}

func TestCompareLowSimilaritySplits(t *testing.T) {
	old := page(dom.NewElement("div", map[string]string{"id": "alpha", "class": "one"}))
	new := page(dom.NewElement("span", map[string]string{"id": "beta", "class": "two"}))

	res := Compare(old, new)

	if len(res.Removed) != 1 {
		t.Fatalf("got %d removed, want 1", len(res.Removed))
	}
	if len(res.Added) != 1 {
		t.Fatalf("got %d added, want 1", len(res.Added))
	}
	if got, _ := res.Removed[0].Attr("id"); got != "alpha" {
		t.Fatalf("removed id = %q, want alpha", got)
	}
	if got, _ := res.Added[0].Attr("id"); got != "beta" {
		t.Fatalf("added id = %q, want beta", got)
	}
}

func TestCompareUnchangedDescendantsUnderModifiedParent(t *testing.T) {
	old := page(
		dom.NewElement("div", map[string]string{"id": "wrap", "data-v": "1"},
			dom.NewElement("p", map[string]string{"id": "inner"}),
		),
	)
	new := page(
		dom.NewElement("div", map[string]string{"id": "wrap", "data-v": "2"},
			dom.NewElement("p", map[string]string{"id": "inner"}),
		),
	)

	res := Compare(old, new)

	if len(res.Modified) != 1 {
		t.Fatalf("got %d modified, want 1", len(res.Modified))
	}
	found := false
	for _, n := range res.Unchanged {
		if id, _ := n.Attr("id"); id == "inner" {
			found = true
		}
	}
	if !found {
		t.Fatalf("descendant of modified parent not classified unchanged")
	}
}

func TestCompareDuplicateSiblingsClaimedOnce(t *testing.T) {
	// Two old siblings carrying the same id against a single new candidate:
	// greedy matching must not hand the new node to both. Each old node
	// scores tag+id+class against it, well over the bar.
	old := page(
		dom.NewElement("li", map[string]string{"id": "dup", "class": "row"}),
		dom.NewElement("li", map[string]string{"id": "dup", "class": "row"}),
	)
	new := page(
		dom.NewElement("li", map[string]string{"id": "dup", "class": "row"}),
	)

	res := Compare(old, new)

	if len(res.Added) != 0 {
		t.Fatalf("got %d added, want 0", len(res.Added))
	}
	if len(res.Removed) != 1 {
		t.Fatalf("got %d removed, want 1", len(res.Removed))
	}
}

func TestCompareEndToEndScenario(t *testing.T) {
	items := func() []*dom.Node {
		return []*dom.Node{
			dom.NewElement("div", map[string]string{"id": "item-1", "class": "item"}),
			dom.NewElement("div", map[string]string{"id": "item-2", "class": "item"}),
			dom.NewElement("div", map[string]string{"id": "item-3", "class": "item"}),
		}
	}

	old := page(
		dom.NewElement("div", map[string]string{"id": "container", "class": "container"},
			items()...,
		),
	)

	changed := items()
	changed[1].Attrs["data-modified"] = "true"
	new := page(
		dom.NewElement("div", map[string]string{"id": "container", "class": "container"},
			append(changed, dom.NewElement("span", map[string]string{"id": "new-element"}))...,
		),
	)

	res := Compare(old, new)

	if len(res.Modified) != 1 {
		t.Fatalf("got %d modified, want 1", len(res.Modified))
	}
	if id, _ := res.Modified[0].Old.Attr("id"); id != "item-2" {
		t.Fatalf("modified node id = %q, want item-2", id)
	}
	ch := res.Modified[0].Changes
	if len(ch) != 1 || !strings.Contains(ch[0], "added") {
		t.Fatalf("got changes %v, want one attribute addition", ch)
	}

	if len(res.Added) != 1 {
		t.Fatalf("got %d added, want 1", len(res.Added))
	}
	if id, _ := res.Added[0].Attr("id"); id != "new-element" {
		t.Fatalf("added node id = %q, want new-element", id)
	}

	if len(res.Removed) != 0 {
		t.Fatalf("got %d removed, want 0", len(res.Removed))
	}
	if len(res.Unchanged) != 5 {
		t.Fatalf("got %d unchanged, want 5", len(res.Unchanged))
	}
}
