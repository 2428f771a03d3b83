package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML document and builds a snapshot tree rooted at its
// <html> element. Comments and doctype are dropped, whitespace-only text is
// skipped. Visibility and interactivity are derived statically; no geometry
// is available from this provider.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}

	var rootEl *html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			rootEl = c
			break
		}
	}
	if rootEl == nil {
		return nil, fmt.Errorf("dom: document has no root element")
	}

	root := convert(rootEl)
	ComputePaths(root)
	return root, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func convert(n *html.Node) *Node {
	tag := strings.ToLower(n.Data)

	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if _, dup := attrs[a.Key]; dup {
			continue
		}
		attrs[a.Key] = a.Val
	}

	node := &Node{
		Type:        ElementNode,
		Tag:         tag,
		Attrs:       attrs,
		Visible:     staticVisible(tag, attrs),
		Interactive: staticInteractive(tag, attrs),
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			node.Children = append(node.Children, convert(c))
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			node.Children = append(node.Children, NewText(c.Data))
		}
	}

	return node
}
