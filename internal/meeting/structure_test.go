package meeting

import (
	"reflect"
	"testing"
)

func sampleStructure() *Structure {
	return &Structure{
		Title: "Q3 Planning",
		Context: Context{
			Purpose: "Plan the third quarter",
			Participants: []Participant{
				{Name: "Ana", Role: "PM"},
				{Name: "Bo"},
			},
		},
		Sections: []Section{
			{
				ID:      "budget",
				Heading: "Budget",
				Level:   2,
				Metadata: SectionMetadata{
					KeyPoints: []string{"headcount stays flat"},
					Decisions: []string{"freeze travel spend"},
				},
				Subsections: []Section{
					{
						ID:      "budget-tools",
						Heading: "Tooling spend",
						Level:   3,
						Metadata: SectionMetadata{
							ActionItems: []ActionItem{
								{Task: "audit licenses", Owner: "Bo"},
								{Task: "cancel unused seats"},
							},
						},
					},
				},
			},
			{
				ID:      "roadmap",
				Heading: "Roadmap",
				Level:   2,
				Metadata: SectionMetadata{
					Decisions: []string{"ship v2 in August"},
				},
			},
		},
	}
}

func TestWalkVisitsDocumentOrder(t *testing.T) {
	s := sampleStructure()

	var ids []string
	var depths []int
	s.Walk(func(sec *Section, depth int) {
		ids = append(ids, sec.ID)
		depths = append(depths, depth)
	})

	wantIDs := []string{"budget", "budget-tools", "roadmap"}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("walk order = %v, want %v", ids, wantIDs)
	}
	wantDepths := []int{0, 1, 0}
	if !reflect.DeepEqual(depths, wantDepths) {
		t.Errorf("depths = %v, want %v", depths, wantDepths)
	}
}

func TestCounts(t *testing.T) {
	s := sampleStructure()
	if got := s.CountSections(); got != 3 {
		t.Errorf("CountSections = %d, want 3", got)
	}
	if got := s.CountDecisions(); got != 2 {
		t.Errorf("CountDecisions = %d, want 2", got)
	}
	if got := s.CountActionItems(); got != 2 {
		t.Errorf("CountActionItems = %d, want 2", got)
	}
}

func TestNewIndexLookup(t *testing.T) {
	s := sampleStructure()
	idx, err := NewIndex(s)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	if idx.Len() != 3 {
		t.Fatalf("Len = %d, want 3", idx.Len())
	}
	sec := idx.Lookup("budget-tools")
	if sec == nil || sec.Heading != "Tooling spend" {
		t.Errorf("Lookup(budget-tools) = %+v", sec)
	}
	if idx.Lookup("missing") != nil {
		t.Error("Lookup of unknown id should be nil")
	}
	if !reflect.DeepEqual(idx.Order(), []string{"budget", "budget-tools", "roadmap"}) {
		t.Errorf("Order = %v", idx.Order())
	}
}

func TestNewIndexRejectsDuplicateID(t *testing.T) {
	s := sampleStructure()
	s.Sections[1].ID = "budget"

	if _, err := NewIndex(s); err == nil {
		t.Fatal("duplicate id should be rejected")
	}
}

func TestNewIndexRejectsEmptyID(t *testing.T) {
	s := sampleStructure()
	s.Sections[0].Subsections[0].ID = ""

	if _, err := NewIndex(s); err == nil {
		t.Fatal("empty id should be rejected")
	}
}
