package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hazyhaar/domdiff/dom"
)

// captureScript walks the live DOM and serialises the element tree with the
// presentation state only a layout engine can provide: real visibility and
// viewport geometry. Text leaves are kept so document order survives; script
// and style subtrees are skipped outright.
const captureScript = `() => {
	const SKIP = new Set(['SCRIPT', 'STYLE', 'TEMPLATE', 'NOSCRIPT']);
	const INTERACTIVE = new Set(['A', 'BUTTON', 'INPUT', 'SELECT', 'TEXTAREA', 'OPTION', 'SUMMARY']);

	function isVisible(el) {
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden' || style.opacity === '0') return false;
		const rect = el.getBoundingClientRect();
		return rect.width > 0 || rect.height > 0;
	}

	function isInteractive(el) {
		if (INTERACTIVE.has(el.tagName)) return true;
		if (el.hasAttribute('onclick') || el.hasAttribute('tabindex')) return true;
		const role = (el.getAttribute('role') || '').toLowerCase();
		return ['button', 'link', 'checkbox', 'radio', 'menuitem', 'tab', 'switch', 'textbox'].includes(role);
	}

	function walk(node) {
		if (node.nodeType === 3) {
			const text = node.textContent;
			if (!text || !text.trim()) return null;
			return {type: 3, text: text};
		}
		if (node.nodeType !== 1 || SKIP.has(node.tagName)) return null;

		const attrs = {};
		for (const a of node.attributes) attrs[a.name] = a.value;

		const rect = node.getBoundingClientRect();
		const out = {
			type: 1,
			tag: node.tagName.toLowerCase(),
			attrs: attrs,
			visible: isVisible(node),
			interactive: isInteractive(node),
			rect: {x: rect.x, y: rect.y, width: rect.width, height: rect.height},
			children: [],
		};
		for (const child of node.childNodes) {
			const c = walk(child);
			if (c) out.children.push(c);
		}
		return out;
	}

	return JSON.stringify(walk(document.documentElement));
}`

type rawNode struct {
	Type        int               `json:"type"`
	Tag         string            `json:"tag"`
	Attrs       map[string]string `json:"attrs"`
	Visible     bool              `json:"visible"`
	Interactive bool              `json:"interactive"`
	Rect        *dom.Box          `json:"rect"`
	Text        string            `json:"text"`
	Children    []rawNode         `json:"children"`
}

// CaptureTree snapshots the element tree of a loaded tab: one Eval round
// trip, then conversion to the dom model with freshly computed xpaths.
func CaptureTree(ctx context.Context, tab *Tab) (*dom.Node, error) {
	res, err := tab.Page.Context(ctx).Eval(captureScript)
	if err != nil {
		return nil, fmt.Errorf("browser: capture eval: %w", err)
	}

	var raw rawNode
	if err := json.Unmarshal([]byte(res.Value.Str()), &raw); err != nil {
		return nil, fmt.Errorf("browser: decode capture: %w", err)
	}
	if raw.Type != 1 {
		return nil, fmt.Errorf("browser: capture returned no element root")
	}

	root := convertRaw(raw)
	dom.ComputePaths(root)
	return root, nil
}

func convertRaw(raw rawNode) *dom.Node {
	if raw.Type == 3 {
		return dom.NewText(raw.Text)
	}

	n := &dom.Node{
		Type:        dom.ElementNode,
		Tag:         raw.Tag,
		Attrs:       raw.Attrs,
		Visible:     raw.Visible,
		Interactive: raw.Interactive,
		Box:         raw.Rect,
	}
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	for _, c := range raw.Children {
		n.Children = append(n.Children, convertRaw(c))
	}
	return n
}
