package meeting

import "strings"

// Reference windowing parameters. Each reference id maps to a 60-word stride
// into the transcript with a 30-word overlap tail, so excerpt r covers words
// [(r-1)*60, (r-1)*60+90). The mapping is a heuristic association, not a
// citation.
const (
	refChunkWords   = 60
	refOverlapWords = 30
)

// NoExcerpt is returned when a reference id points past the transcript.
const NoExcerpt = "Transcript reference not available for this section."

// Excerpt resolves a reference id against a transcript. It is a pure
// function of its inputs: the same (refID, transcript) pair always yields
// the same excerpt. Out-of-range ids yield NoExcerpt, never an error.
func Excerpt(refID int, transcript string) string {
	if refID < 1 || transcript == "" {
		return NoExcerpt
	}
	words := strings.Fields(transcript)
	start := (refID - 1) * refChunkWords
	if start >= len(words) {
		return NoExcerpt
	}
	end := start + refChunkWords + refOverlapWords
	ellipsis := end < len(words)
	if end > len(words) {
		end = len(words)
	}
	text := strings.Join(words[start:end], " ")
	if ellipsis {
		text += "…"
	}
	return text
}

// RefKind tells what a reference id points at.
type RefKind int

const (
	RefSection RefKind = iota
	RefKeyPoint
	RefDecision
	RefActionItem
)

// Ref is one assigned reference id.
type Ref struct {
	ID        int
	SectionID string
	Kind      RefKind
	ItemIndex int // index within the section's key points / decisions / action items
}

// RefMap holds the deterministic id assignment for one structure.
type RefMap struct {
	refs   []Ref
	byItem map[refKey]int
}

type refKey struct {
	sectionID string
	kind      RefKind
	item      int
}

// AssignRefs walks the structure in document order and hands out sequential
// reference ids: for each section the header first, then its key points,
// decisions and action items. The same tree always produces the same
// mapping, which is what makes reference ids meaningful across reloads.
func AssignRefs(s *Structure) *RefMap {
	rm := &RefMap{byItem: make(map[refKey]int)}
	next := 1
	add := func(sectionID string, kind RefKind, item int) {
		rm.refs = append(rm.refs, Ref{ID: next, SectionID: sectionID, Kind: kind, ItemIndex: item})
		rm.byItem[refKey{sectionID, kind, item}] = next
		next++
	}
	s.Walk(func(sec *Section, _ int) {
		add(sec.ID, RefSection, 0)
		for i := range sec.Metadata.KeyPoints {
			add(sec.ID, RefKeyPoint, i)
		}
		for i := range sec.Metadata.Decisions {
			add(sec.ID, RefDecision, i)
		}
		for i := range sec.Metadata.ActionItems {
			add(sec.ID, RefActionItem, i)
		}
	})
	return rm
}

// IDFor returns the reference id of an item, or 0 if the item is unknown.
func (rm *RefMap) IDFor(sectionID string, kind RefKind, item int) int {
	return rm.byItem[refKey{sectionID, kind, item}]
}

// Refs returns all assigned references in id order.
func (rm *RefMap) Refs() []Ref { return rm.refs }

// Len returns the number of assigned reference ids.
func (rm *RefMap) Len() int { return len(rm.refs) }
