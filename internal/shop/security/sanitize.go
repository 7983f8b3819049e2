package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowedTags = map[string]struct{}{
	"p": {}, "br": {}, "strong": {}, "em": {}, "u": {}, "b": {}, "i": {},
	"ul": {}, "ol": {}, "li": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"span": {}, "div": {}, "img": {},
}

var allowedAttrs = map[string]struct{}{
	"class": {}, "style": {}, "href": {}, "src": {},
	"alt": {}, "title": {}, "width": {}, "height": {},
}

// SanitizeHTML filters an HTML fragment down to an allowlist of tags and
// attributes. Disallowed elements are dropped together with their content,
// event handler attributes and javascript: URLs are removed. Comments are
// dropped as well. The fragment is re-serialized, so quotes in text and
// attribute values come back as &#34; and &#39;.
func SanitizeHTML(src string) string {
	if src == "" {
		return ""
	}

	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := nethtml.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		return ""
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var found []*nethtml.Node
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.ElementNode || c.Type == nethtml.CommentNode {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(body)

	// Reverse document order: children are handled before their parents,
	// so removing a parent never skips a pending node.
	for i := len(found) - 1; i >= 0; i-- {
		el := found[i]
		if el.Type == nethtml.CommentNode {
			el.Parent.RemoveChild(el)
			continue
		}
		if _, ok := allowedTags[strings.ToLower(el.Data)]; !ok {
			el.Parent.RemoveChild(el)
			continue
		}
		el.Attr = filterAttrs(el.Attr)
	}

	var b strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := nethtml.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}

func filterAttrs(attrs []nethtml.Attribute) []nethtml.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		name := strings.ToLower(a.Key)
		if a.Namespace != "" || strings.HasPrefix(name, "on") {
			continue
		}
		if name == "href" || name == "src" {
			if strings.HasPrefix(strings.TrimSpace(strings.ToLower(a.Val)), "javascript:") {
				continue
			}
		}
		if _, ok := allowedAttrs[name]; !ok {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

var plainPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// PlainText strips all markup from an HTML fragment and collapses runs of
// whitespace. Script and style content is dropped, entities are decoded.
func PlainText(src string) string {
	if src == "" {
		return ""
	}
	stripped := html.UnescapeString(plainPolicy.Sanitize(src))
	return strings.Join(strings.Fields(stripped), " ")
}
