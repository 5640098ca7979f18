package canvas

import (
	"strings"
	"time"
)

// Page is a scrapbook page. Items are kept in z-order: later items are
// drawn on top of earlier ones. ID is zero until the page is stored.
type Page struct {
	ID              int64
	Title           string
	Created         time.Time
	Modified        time.Time
	Background      Color
	BackgroundImage string
	Items           []*Item
}

// now is truncated to milliseconds, the precision page records keep.
func now() time.Time {
	return time.UnixMilli(time.Now().UnixMilli())
}

// NewPage returns an empty page with the default cream background.
func NewPage(title string) *Page {
	t := now()
	return &Page{
		Title:      title,
		Created:    t,
		Modified:   t,
		Background: DefaultPageBackground,
	}
}

// Touch records a modification.
func (p *Page) Touch() {
	p.Modified = now()
}

// Clone returns a deep copy of p. Items keep their IDs.
func (p *Page) Clone() *Page {
	cp := *p
	cp.Items = make([]*Item, len(p.Items))
	for i, it := range p.Items {
		c := *it
		if it.Content != nil {
			c.Content = it.Content.clone()
		}
		cp.Items[i] = &c
	}
	return &cp
}

func (p *Page) ItemCount() int { return len(p.Items) }

func (p *Page) countKind(k Kind) int {
	n := 0
	for _, it := range p.Items {
		if it.Kind() == k {
			n++
		}
	}
	return n
}

func (p *Page) ImageCount() int { return p.countKind(KindImage) }

func (p *Page) TextCount() int { return p.countKind(KindText) }

const previewLimit = 50

// PreviewText returns the first non-blank caption, cut to 50 characters.
func (p *Page) PreviewText() string {
	for _, it := range p.Items {
		tc, ok := it.Content.(*TextContent)
		if !ok {
			continue
		}
		text := strings.TrimSpace(tc.Text)
		if text == "" {
			continue
		}
		if r := []rune(text); len(r) > previewLimit {
			return string(r[:previewLimit]) + "..."
		}
		return text
	}
	return "No text added yet"
}

// FirstImagePath returns the path of the first image item that has one.
func (p *Page) FirstImagePath() (string, bool) {
	for _, it := range p.Items {
		if ic, ok := it.Content.(*ImageContent); ok && ic.Path != "" {
			return ic.Path, true
		}
	}
	return "", false
}
