// Package diff implements structural change detection between two snapshot
// trees captured at different points in time.
//
// Node instances are re-created on every snapshot, so no persistent identity
// exists across captures. The engine infers identity by structural
// similarity: a cheap attribute-driven score decides candidate matches, a
// greedy per-level alignment pairs siblings, and a field-level detector
// enumerates what changed on each accepted pair. Everything left unpaired is
// swept up as removed or added.
package diff

import (
	"strings"

	"github.com/hazyhaar/domdiff/dom"
)

// Signal weights. The denominator is fixed: a missing id or class still
// costs its weight, it just contributes nothing to the numerator.
const (
	weightTag   = 3.0
	weightXPath = 2.0
	weightID    = 4.0
	weightClass = 2.0

	totalWeight = weightTag + weightXPath + weightID + weightClass
)

// Score returns a normalized [0,1] affinity between two element nodes.
//
// Text content is deliberately not part of the score: matching stays stable
// under copy changes. The strongest discriminator is the id attribute; xpath
// equality is weak (it shifts with structure) but cheap and often stable for
// unchanged subtrees.
func Score(a, b *dom.Node) float64 {
	var acc float64

	if a.Tag == b.Tag {
		acc += weightTag
	}
	if a.XPath == b.XPath {
		acc += weightXPath
	}

	idA, okA := a.Attr("id")
	idB, okB := b.Attr("id")
	if okA && okB && idA == idB {
		acc += weightID
	}

	acc += weightClass * classOverlap(a, b)

	return acc / totalWeight
}

// classOverlap returns the Jaccard overlap of the two class token sets, or 0
// when either side lacks a class attribute. Tokenization splits on arbitrary
// whitespace, so a malformed class value degrades to a single token instead
// of failing.
func classOverlap(a, b *dom.Node) float64 {
	clsA, okA := a.Attr("class")
	clsB, okB := b.Attr("class")
	if !okA || !okB {
		return 0
	}

	setA := tokenSet(clsA)
	setB := tokenSet(clsB)

	union := len(setB)
	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
