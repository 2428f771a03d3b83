package dom

import "fmt"

// ComputePaths assigns an XPath to every element node of the tree rooted at
// root. Paths use sibling indexes only when a tag repeats among its element
// siblings: /html/body/div[2]/span. The root keeps a bare /tag path.
//
// Snapshot providers call this once at construction time; the paths are
// snapshot-local and must be recomputed for every new capture.
func ComputePaths(root *Node) {
	if root == nil || root.Type != ElementNode {
		return
	}
	root.XPath = "/" + root.Tag
	assignChildPaths(root)
}

func assignChildPaths(parent *Node) {
	kids := parent.ElementChildren()

	// Count element siblings per tag to decide whether an index is needed.
	total := make(map[string]int, len(kids))
	for _, c := range kids {
		total[c.Tag]++
	}

	seen := make(map[string]int, len(kids))
	for _, c := range kids {
		seen[c.Tag]++
		if total[c.Tag] > 1 {
			c.XPath = fmt.Sprintf("%s/%s[%d]", parent.XPath, c.Tag, seen[c.Tag])
		} else {
			c.XPath = parent.XPath + "/" + c.Tag
		}
		assignChildPaths(c)
	}
}
