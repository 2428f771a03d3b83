package diff

import (
	"fmt"
	"sort"

	"github.com/hazyhaar/domdiff/dom"
)

// DetectChanges enumerates the field-level differences between a matched
// pair. It is called only on nodes already accepted as the same logical
// element; an empty result is the signal the pair is unchanged.
//
// Descriptors are appended in a fixed facet order (tag, removed attributes,
// changed attributes, added attributes, visibility, interactivity, position)
// with attribute keys sorted so output is deterministic for a fixed input.
func DetectChanges(old, new *dom.Node) []string {
	var changes []string

	if old.Tag != new.Tag {
		changes = append(changes, fmt.Sprintf("tag changed: %s -> %s", old.Tag, new.Tag))
	}

	for _, key := range sortedKeys(old.Attrs) {
		if _, ok := new.Attrs[key]; !ok {
			changes = append(changes, fmt.Sprintf("attribute %q removed (was %q)", key, old.Attrs[key]))
		}
	}
	for _, key := range sortedKeys(old.Attrs) {
		if nv, ok := new.Attrs[key]; ok && nv != old.Attrs[key] {
			changes = append(changes, fmt.Sprintf("attribute %q changed: %q -> %q", key, old.Attrs[key], nv))
		}
	}
	for _, key := range sortedKeys(new.Attrs) {
		if _, ok := old.Attrs[key]; !ok {
			changes = append(changes, fmt.Sprintf("attribute %q added: %q", key, new.Attrs[key]))
		}
	}

	if old.Visible != new.Visible {
		changes = append(changes, fmt.Sprintf("visibility changed: %t -> %t", old.Visible, new.Visible))
	}
	if old.Interactive != new.Interactive {
		changes = append(changes, fmt.Sprintf("interactivity changed: %t -> %t", old.Interactive, new.Interactive))
	}

	// Position is only comparable when both snapshots carried geometry. Any
	// nonzero center delta is reported raw, without tolerance.
	if old.Box != nil && new.Box != nil {
		ox, oy := old.Box.Center()
		nx, ny := new.Box.Center()
		if ox != nx || oy != ny {
			changes = append(changes, fmt.Sprintf("position changed: (%.1f, %.1f) -> (%.1f, %.1f)", ox, oy, nx, ny))
		}
	}

	return changes
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
