// Package resultlog holds the session's append-only upload log and renders
// upload outcomes into it.
//
// The log is an HTML node tree (<ol id="log">) of <li> entries, the same
// markup a browser page would hold. Entries are only ever appended; nothing
// is removed, rewritten or reordered. All methods are safe for concurrent use.
package resultlog

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Entry kinds, taken from the class attribute of the entry.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Link is an anchor inside an entry.
type Link struct {
	Href   string
	Label  string
	Target string
}

// Entry is a read-only view of one log entry. Text excludes the nested file
// list, whose anchors are reported in Links.
type Entry struct {
	Kind  string
	Text  string
	Links []Link
}

type Log struct {
	mu   sync.Mutex
	root *html.Node
}

func New() *Log {
	return &Log{root: element(atom.Ol, "id", "log")}
}

// Append adds n as the last entry. n must not belong to another tree.
func (l *Log) Append(n *html.Node) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.root.AppendChild(n)
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for c := l.root.FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	return n
}

// Entries returns a snapshot of all entries in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for c := l.root.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, entryOf(c))
	}
	return out
}

// WriteHTML renders the whole log as HTML.
func (l *Log) WriteHTML(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return html.Render(w, l.root)
}

func entryOf(n *html.Node) Entry {
	e := Entry{Kind: attr(n, "class"), Text: ownText(n)}
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == atom.A {
			e.Links = append(e.Links, Link{
				Href:   attr(c, "href"),
				Label:  textContent(c),
				Target: attr(c, "target"),
			})
		}
	})
	return e
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

// ownText is the text of n outside nested lists.
func ownText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Ol {
			continue
		}
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// element builds an element node; kv are attribute key/value pairs.
func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
