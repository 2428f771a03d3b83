package diff

import "github.com/hazyhaar/domdiff/dom"

// matchThreshold is the acceptance bar for a candidate pair. Strictly
// greater than: a score of exactly 0.7 is no match.
const matchThreshold = 0.7

// Modification is one matched pair whose facets differ.
type Modification struct {
	Old     *dom.Node
	New     *dom.Node
	Changes []string
}

// Result is the four-way classification of every element node of both
// snapshots. Each old-tree element appears exactly once across Removed,
// Modified (as Old), and Unchanged; each new-tree element exactly once
// across Added and Modified (as New) and the counterparts of Unchanged.
type Result struct {
	Added     []*dom.Node
	Removed   []*dom.Node
	Modified  []Modification
	Unchanged []*dom.Node
}

// comparator holds the state of a single Compare call: one exclusion set per
// tree, keyed by node instance. Two structurally identical nodes of the same
// snapshot are still distinct entries.
type comparator struct {
	seenOld map[*dom.Node]struct{}
	seenNew map[*dom.Node]struct{}
	res     *Result
}

// Compare aligns two snapshot trees and classifies every element node.
//
// The roots are always force-paired, whatever their similarity: both
// snapshots are assumed to represent the same monitored surface at two
// points in time. Inputs are never mutated; the exclusion sets live only
// for the duration of one call.
func Compare(oldRoot, newRoot *dom.Node) *Result {
	c := &comparator{
		seenOld: make(map[*dom.Node]struct{}),
		seenNew: make(map[*dom.Node]struct{}),
		res:     &Result{},
	}

	c.alignPair(oldRoot, newRoot)

	// Sweep leftovers: anything unclassified on the old side was removed,
	// anything on the new side was added.
	oldRoot.WalkElements(func(n *dom.Node) {
		if _, ok := c.seenOld[n]; !ok {
			c.seenOld[n] = struct{}{}
			c.res.Removed = append(c.res.Removed, n)
		}
	})
	newRoot.WalkElements(func(n *dom.Node) {
		if _, ok := c.seenNew[n]; !ok {
			c.seenNew[n] = struct{}{}
			c.res.Added = append(c.res.Added, n)
		}
	})

	return c.res
}

func (c *comparator) alignPair(oldNode, newNode *dom.Node) {
	c.seenOld[oldNode] = struct{}{}
	c.seenNew[newNode] = struct{}{}

	if changes := DetectChanges(oldNode, newNode); len(changes) == 0 {
		c.res.Unchanged = append(c.res.Unchanged, oldNode)
	} else {
		c.res.Modified = append(c.res.Modified, Modification{
			Old:     oldNode,
			New:     newNode,
			Changes: changes,
		})
	}

	// A modified node's subtree may still hold unchanged descendants.
	c.alignChildren(oldNode, newNode)
}

// alignChildren pairs element children greedily: old children in document
// order, each claiming the best still-available new candidate, candidates in
// document order. First-come local matching is not a globally optimal
// assignment, but deterministic for a fixed pair of trees.
func (c *comparator) alignChildren(oldParent, newParent *dom.Node) {
	oldKids := oldParent.ElementChildren()
	newKids := newParent.ElementChildren()

	for _, oldChild := range oldKids {
		if _, done := c.seenOld[oldChild]; done {
			continue
		}

		var best *dom.Node
		bestScore := 0.0
		for _, newChild := range newKids {
			if _, claimed := c.seenNew[newChild]; claimed {
				continue
			}
			if s := Score(oldChild, newChild); s > bestScore {
				best, bestScore = newChild, s
			}
		}

		if best != nil && bestScore > matchThreshold {
			c.alignPair(oldChild, best)
		}
		// Below threshold the child stays unmatched; the sweep will
		// classify it.
	}
}
