// Package meeting holds the hierarchical summary model produced by the
// backend and the helpers the navigator and resolver work against.
package meeting

import "fmt"

// ActionItem is a task extracted from the discussion.
type ActionItem struct {
	Task     string `json:"task"`
	Owner    string `json:"owner,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
	Priority string `json:"priority,omitempty"` // high, medium, low
}

// SectionMetadata carries the extracted facts of one section.
type SectionMetadata struct {
	Speakers    []string     `json:"speakers"`
	KeyPoints   []string     `json:"keyPoints"`
	Decisions   []string     `json:"decisions"`
	ActionItems []ActionItem `json:"actionItems"`
	Importance  string       `json:"importance,omitempty"`
}

// Section is one node of the summary tree. Level is advisory heading size
// only; parent/child levels are not ordered.
type Section struct {
	ID          string          `json:"id"`
	Heading     string          `json:"heading"`
	Level       int             `json:"level"` // 2, 3 or 4
	Content     string          `json:"content"`
	Subsections []Section       `json:"subsections,omitempty"`
	Metadata    SectionMetadata `json:"metadata"`
}

// Participant identifies one attendee.
type Participant struct {
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// Context is the meeting-level framing section.
type Context struct {
	Purpose      string        `json:"purpose"`
	Participants []Participant `json:"participants"`
	Background   string        `json:"background"`
	Date         string        `json:"date,omitempty"`
	Duration     string        `json:"duration,omitempty"`
}

// Metadata summarizes the whole document.
type Metadata struct {
	MeetingType        string `json:"meetingType"`
	TotalDuration      string `json:"totalDuration"`
	TotalSections      int    `json:"totalSections"`
	TotalActionItems   int    `json:"totalActionItems"`
	TotalDecisions     int    `json:"totalDecisions"`
	GeneratedAt        string `json:"generatedAt"`
	ProcessingStrategy string `json:"processingStrategy"`
}

// Structure is the complete hierarchical meeting summary. Once produced by a
// pipeline run it is never mutated by the client.
type Structure struct {
	Title    string    `json:"title"`
	Context  Context   `json:"context"`
	Sections []Section `json:"sections"`
	Metadata Metadata  `json:"metadata"`
}

// Walk visits every section in document order, parents before children.
func (s *Structure) Walk(fn func(sec *Section, depth int)) {
	var visit func(secs []Section, depth int)
	visit = func(secs []Section, depth int) {
		for i := range secs {
			fn(&secs[i], depth)
			visit(secs[i].Subsections, depth+1)
		}
	}
	visit(s.Sections, 0)
}

// CountSections returns the number of nodes in the tree.
func (s *Structure) CountSections() int {
	n := 0
	s.Walk(func(*Section, int) { n++ })
	return n
}

// CountActionItems totals action items across the tree.
func (s *Structure) CountActionItems() int {
	n := 0
	s.Walk(func(sec *Section, _ int) { n += len(sec.Metadata.ActionItems) })
	return n
}

// CountDecisions totals decisions across the tree.
func (s *Structure) CountDecisions() int {
	n := 0
	s.Walk(func(sec *Section, _ int) { n += len(sec.Metadata.Decisions) })
	return n
}

// Index is a flat id -> node arena over a Structure. Section ids double as
// scroll anchors, so uniqueness across the whole tree is enforced here.
type Index struct {
	nodes map[string]*Section
	order []string // ids in document order
}

// NewIndex builds the arena. It fails on a duplicate or empty id.
func NewIndex(s *Structure) (*Index, error) {
	idx := &Index{nodes: make(map[string]*Section)}
	var dup error
	s.Walk(func(sec *Section, _ int) {
		if dup != nil {
			return
		}
		if sec.ID == "" {
			dup = fmt.Errorf("section %q has an empty id", sec.Heading)
			return
		}
		if _, exists := idx.nodes[sec.ID]; exists {
			dup = fmt.Errorf("duplicate section id %q", sec.ID)
			return
		}
		idx.nodes[sec.ID] = sec
		idx.order = append(idx.order, sec.ID)
	})
	if dup != nil {
		return nil, dup
	}
	return idx, nil
}

// Lookup returns the section with the given id, or nil.
func (idx *Index) Lookup(id string) *Section {
	return idx.nodes[id]
}

// Order returns all section ids in document order.
func (idx *Index) Order() []string {
	return idx.order
}

// Len returns the number of indexed sections.
func (idx *Index) Len() int { return len(idx.order) }
