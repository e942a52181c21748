package tui

import "strings"

// RootCrumb is the label of the bottom of every trail.
const RootCrumb = "Main Menu"

// separator joins crumbs when rendered.
const separator = " > "

// Breadcrumb is the navigation stack shown above every screen. The menu
// controller owns one and pushes a label per screen it enters.
// The zero value is an empty trail.
type Breadcrumb struct {
	items []string
}

// NewBreadcrumb returns a trail holding only root.
func NewBreadcrumb(root string) *Breadcrumb {
	return &Breadcrumb{items: []string{root}}
}

// Push appends label to the trail.
func (b *Breadcrumb) Push(label string) {
	b.items = append(b.items, label)
}

// Pop removes the last label and returns it. The root is never removed;
// popping a trail of one returns "".
func (b *Breadcrumb) Pop() string {
	if len(b.items) <= 1 {
		return ""
	}
	last := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return last
}

// Enter pushes label and returns a func that pops it, for use with defer.
func (b *Breadcrumb) Enter(label string) func() {
	b.Push(label)
	depth := len(b.items)
	return func() {
		// Unwind anything pushed after label too.
		if len(b.items) >= depth {
			b.items = b.items[:depth-1]
		}
	}
}

// Current returns the last label, or "" for an empty trail.
func (b *Breadcrumb) Current() string {
	if len(b.items) == 0 {
		return ""
	}
	return b.items[len(b.items)-1]
}

// Depth returns the number of labels.
func (b *Breadcrumb) Depth() int {
	return len(b.items)
}

// Items returns a copy of the labels, root first.
func (b *Breadcrumb) Items() []string {
	return append([]string(nil), b.items...)
}

// String joins the labels with " > ".
func (b *Breadcrumb) String() string {
	return strings.Join(b.items, separator)
}

// Render styles the trail with the last label highlighted.
func (b *Breadcrumb) Render(s Styles) string {
	if b == nil || len(b.items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b.items))
	for i, item := range b.items {
		if i == len(b.items)-1 {
			parts = append(parts, s.Current.Render(item))
			continue
		}
		parts = append(parts, s.Breadcrumb.Render(item))
	}
	return strings.Join(parts, s.Separator.Render(separator))
}
