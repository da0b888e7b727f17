// Package navigator renders a hierarchical meeting summary as a collapsible
// outline plus a content pane, and tracks which section is active as the
// user scrolls or clicks. Tracking is modeled as explicit visibility events
// so it can be unit-tested without any rendering technology.
package navigator

import (
	"fmt"

	"github.com/minute-tui/minute/internal/meeting"
)

// Node is one outline entry. Collapsing a node hides its children and its
// content body but never removes it from the outline; the subtree stays
// intact for re-expansion.
type Node struct {
	ID       string
	Heading  string
	Depth    int
	Expanded bool
	Children []*Node

	KeyPoints   int
	Decisions   int
	ActionItems int
}

// Outline is the navigable view over one structure.
type Outline struct {
	structure *meeting.Structure
	index     *meeting.Index
	refs      *meeting.RefMap
	roots     []*Node
	byID      map[string]*Node
}

// NewOutline builds the outline with every node expanded.
func NewOutline(s *meeting.Structure) (*Outline, error) {
	idx, err := meeting.NewIndex(s)
	if err != nil {
		return nil, fmt.Errorf("build outline: %w", err)
	}

	o := &Outline{
		structure: s,
		index:     idx,
		refs:      meeting.AssignRefs(s),
		byID:      make(map[string]*Node),
	}

	var build func(secs []meeting.Section, depth int) []*Node
	build = func(secs []meeting.Section, depth int) []*Node {
		var nodes []*Node
		for i := range secs {
			sec := &secs[i]
			n := &Node{
				ID:          sec.ID,
				Heading:     sec.Heading,
				Depth:       depth,
				Expanded:    true,
				KeyPoints:   len(sec.Metadata.KeyPoints),
				Decisions:   len(sec.Metadata.Decisions),
				ActionItems: len(sec.Metadata.ActionItems),
			}
			n.Children = build(sec.Subsections, depth+1)
			o.byID[n.ID] = n
			nodes = append(nodes, n)
		}
		return nodes
	}
	o.roots = build(s.Sections, 0)
	return o, nil
}

// Structure returns the underlying summary.
func (o *Outline) Structure() *meeting.Structure { return o.structure }

// Refs returns the deterministic reference-id assignment.
func (o *Outline) Refs() *meeting.RefMap { return o.refs }

// Section resolves a section id through the flat index.
func (o *Outline) Section(id string) *meeting.Section { return o.index.Lookup(id) }

// Node returns the outline node for a section id, or nil.
func (o *Outline) Node(id string) *Node { return o.byID[id] }

// Toggle flips the expansion of one node. Toggling twice restores the
// original state; the subtree is untouched either way.
func (o *Outline) Toggle(id string) {
	if n := o.byID[id]; n != nil {
		n.Expanded = !n.Expanded
	}
}

// ExpandAll expands every node.
func (o *Outline) ExpandAll() { o.setAll(true) }

// CollapseAll collapses every node.
func (o *Outline) CollapseAll() { o.setAll(false) }

func (o *Outline) setAll(expanded bool) {
	for _, n := range o.byID {
		n.Expanded = expanded
	}
}

// Row is one visible outline line.
type Row struct {
	Node        *Node
	HasChildren bool
}

// VisibleRows flattens the outline honoring collapse state: a collapsed
// node is shown, its children are not.
func (o *Outline) VisibleRows() []Row {
	var rows []Row
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			rows = append(rows, Row{Node: n, HasChildren: len(n.Children) > 0})
			if n.Expanded {
				walk(n.Children)
			}
		}
	}
	walk(o.roots)
	return rows
}

// CollapsedSummary is the compact inline body shown in place of a collapsed
// section's content.
func (n *Node) CollapsedSummary() string {
	out := ""
	sep := func() {
		if out != "" {
			out += " · "
		}
	}
	if n.KeyPoints > 0 {
		out += fmt.Sprintf("%d points", n.KeyPoints)
	}
	if n.ActionItems > 0 {
		sep()
		out += fmt.Sprintf("%d actions", n.ActionItems)
	}
	if len(n.Children) > 0 {
		sep()
		out += fmt.Sprintf("%d subtopics", len(n.Children))
	}
	if out == "" {
		out = "collapsed"
	}
	return out
}
