package navigator

// The active-section band: a section becomes active once its anchor crosses
// the top 20% of the viewport and stops being a candidate after the bottom
// 30%. Expressed in percent of the viewport height measured from the top.
const (
	bandTopPct    = 20
	bandBottomPct = 70
)

// Anchor ties a section id to its line offset in the rendered document.
type Anchor struct {
	ID   string
	Line int
}

// ViewportTracker receives active-section changes.
type ViewportTracker interface {
	OnSectionEntered(id string)
}

// Tracker decides which section is active from scroll positions and clicks.
// It is fed synthetic geometry (anchors, viewport height, scroll offsets)
// rather than observing a real viewport, so the policy of exactly one active
// section, most recently entered wins, is directly testable.
type Tracker struct {
	anchors  []Anchor
	height   int
	active   string
	inBand   map[string]bool
	lastOff  int
	listener ViewportTracker
}

// NewTracker creates a tracker with no geometry yet.
func NewTracker(listener ViewportTracker) *Tracker {
	return &Tracker{inBand: make(map[string]bool), listener: listener}
}

// SetAnchors installs the rendered document's section anchors in document
// order. Anchors reset in-band bookkeeping but keep the active section.
func (t *Tracker) SetAnchors(anchors []Anchor) {
	t.anchors = anchors
	t.inBand = make(map[string]bool)
}

// SetViewportHeight installs the visible line count.
func (t *Tracker) SetViewportHeight(h int) { t.height = h }

// Active returns the single currently active section id ("" before any
// event).
func (t *Tracker) Active() string { return t.active }

// Scroll processes a new scroll offset. Sections whose anchors newly sit
// inside the visibility band fire OnSectionEntered; the most recently
// entered becomes active. Scrolling up enters earlier sections last, so the
// earliest in-view section wins there.
func (t *Tracker) Scroll(offset int) {
	if t.height == 0 {
		return
	}
	bandTop := offset + t.height*bandTopPct/100
	bandBottom := offset + t.height*bandBottomPct/100

	now := make(map[string]bool, len(t.inBand))
	var entered []string
	for _, a := range t.anchors {
		if a.Line >= bandTop && a.Line <= bandBottom {
			now[a.ID] = true
			if !t.inBand[a.ID] {
				entered = append(entered, a.ID)
			}
		}
	}

	scrollingUp := offset < t.lastOff
	t.lastOff = offset
	t.inBand = now

	if len(entered) == 0 {
		return
	}
	// Document order means later anchors entered last on a downward scroll;
	// reverse on an upward scroll so the last fired matches arrival order.
	if scrollingUp {
		for i, j := 0, len(entered)-1; i < j; i, j = i+1, j-1 {
			entered[i], entered[j] = entered[j], entered[i]
		}
	}
	for _, id := range entered {
		t.setActive(id)
	}
}

// Select marks a section active immediately; outline clicks never wait for
// the scroll to settle. It returns the scroll offset that brings the
// section's anchor to the top of the band, clamped at zero.
func (t *Tracker) Select(id string) int {
	t.setActive(id)
	for _, a := range t.anchors {
		if a.ID == id {
			target := a.Line - t.height*bandTopPct/100
			if target < 0 {
				target = 0
			}
			t.lastOff = target
			t.inBand = map[string]bool{id: true}
			return target
		}
	}
	return 0
}

func (t *Tracker) setActive(id string) {
	if t.active == id {
		return
	}
	t.active = id
	if t.listener != nil {
		t.listener.OnSectionEntered(id)
	}
}
