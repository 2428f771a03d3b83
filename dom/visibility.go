package dom

import (
	"regexp"
	"strings"
)

// hiddenStylePatterns match inline styles that remove an element from
// presentation. Matching any of them marks the element invisible in
// snapshots built from static HTML, where no layout engine ran.
var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0(\s|;|$)`),
}

// nonRenderedTags never produce visible output.
var nonRenderedTags = map[string]bool{
	"head": true, "meta": true, "link": true, "title": true,
	"script": true, "style": true, "noscript": true, "template": true,
	"base": true,
}

// interactiveTags are interactive by their element kind alone.
var interactiveTags = map[string]bool{
	"a": true, "button": true, "input": true, "select": true,
	"textarea": true, "option": true, "summary": true,
}

// interactiveRoles are ARIA roles that confer interactivity.
var interactiveRoles = map[string]bool{
	"button": true, "link": true, "checkbox": true, "radio": true,
	"menuitem": true, "tab": true, "switch": true, "textbox": true,
}

// staticVisible derives a visibility flag for an element parsed from static
// HTML. Best effort: without layout only explicit hiding is detectable.
func staticVisible(tag string, attrs map[string]string) bool {
	if nonRenderedTags[tag] {
		return false
	}
	if _, hidden := attrs["hidden"]; hidden {
		return false
	}
	if attrs["aria-hidden"] == "true" {
		return false
	}
	if tag == "input" && strings.EqualFold(attrs["type"], "hidden") {
		return false
	}
	if style, ok := attrs["style"]; ok {
		for _, pat := range hiddenStylePatterns {
			if pat.MatchString(style) {
				return false
			}
		}
	}
	return true
}

// staticInteractive derives an interactivity flag for an element parsed from
// static HTML.
func staticInteractive(tag string, attrs map[string]string) bool {
	if interactiveTags[tag] {
		return true
	}
	if _, ok := attrs["onclick"]; ok {
		return true
	}
	if interactiveRoles[strings.ToLower(attrs["role"])] {
		return true
	}
	if _, ok := attrs["tabindex"]; ok {
		return true
	}
	return false
}
