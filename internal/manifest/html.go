package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/qcreview/internal/domain"
	"golang.org/x/net/html"
)

// LoadHTMLFile parses a generated report page.
func LoadHTMLFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	rep, err := ParseHTML(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	rep.Source = path
	rep.BaseDir = filepath.Dir(path)
	return rep, nil
}

// ParseHTML reads metrics from the children of the #navigation element and
// subjects from the elements of class "tab" inside each metric's pane. A
// navigation entry without a pane, such as the dashboard, yields an empty
// metric.
func ParseHTML(r io.Reader) (*Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	if t := findFirst(doc, func(n *html.Node) bool { return n.Data == "title" }); t != nil {
		rep.Title = extractText(t)
	}

	nav := findByID(doc, "navigation")
	if nav == nil {
		return rep, nil
	}

	for c := nav.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		label := extractText(c)
		if label == "" {
			continue
		}
		name := domain.NormalizeMetricName(label)
		m := domain.Metric{Name: name}
		if pane := findByID(doc, name); pane != nil {
			m.Subjects = subjectsIn(pane, name)
		}
		rep.Metrics = append(rep.Metrics, m)
	}
	return rep, nil
}

func subjectsIn(pane *html.Node, metric string) []*domain.Subject {
	var out []*domain.Subject
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "tab") {
			if id := getAttr(n, "id"); id != "" {
				out = append(out, &domain.Subject{ID: id, Metric: metric, Media: mediaOf(n)})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := pane.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// mediaOf returns the screenshot or video of a subject tab. Images are
// lazy-loaded, so data-src wins over src.
func mediaOf(tab *html.Node) string {
	img := findFirst(tab, func(n *html.Node) bool { return n.Data == "img" && hasClass(n, "small") })
	if img != nil {
		if src := getAttr(img, "data-src"); src != "" {
			return src
		}
		return getAttr(img, "src")
	}
	video := findFirst(tab, func(n *html.Node) bool { return n.Data == "video" })
	if video == nil {
		return ""
	}
	if src := getAttr(video, "src"); src != "" {
		return src
	}
	if source := findFirst(video, func(n *html.Node) bool { return n.Data == "source" }); source != nil {
		return getAttr(source, "src")
	}
	return ""
}

func findByID(n *html.Node, id string) *html.Node {
	return findFirst(n, func(n *html.Node) bool { return getAttr(n, "id") == id })
}

// findFirst returns the first element below n, in document order, that
// matches.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func extractText(n *html.Node) string {
	var text strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			text.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(text.String()), " ")
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
