// internal/navspy/spy.go
//
// Scroll-spy for the nav bar: sections are watched against a thin band near
// the vertical middle of the window, and the nav link matching the section
// currently in the band is marked active.

package navspy

import "atrium/internal/observe"

// Band margins, as signed fractions of the window height. Together they
// shrink the window to a strip roughly centered vertically.
const (
	BandTopMargin    = -0.40
	BandBottomMargin = -0.50
)

// Spy tracks which section occupies the trigger band and keeps at most one
// nav link active.
type Spy struct {
	obs      *observe.Observer
	links    map[string]struct{}
	active   string
	onChange func(active string)
}

// New creates a spy for the given nav targets (section ids that have a nav
// link). onChange, if non-nil, fires whenever the active link changes;
// active is "" when no link is marked.
func New(targets []string, onChange func(active string)) *Spy {
	s := &Spy{
		links:    make(map[string]struct{}, len(targets)),
		onChange: onChange,
	}
	for _, id := range targets {
		s.links[id] = struct{}{}
	}
	s.obs = observe.New(s.handle, observe.Options{
		TopMargin:    BandTopMargin,
		BottomMargin: BandBottomMargin,
	})
	return s
}

// Watch registers a section's extent. Sections are watched for the lifetime
// of the page; re-watching updates the extent after a relayout.
func (s *Spy) Watch(sectionID string, top, height int) {
	s.obs.Observe(observe.Target{ID: sectionID, Top: top, Height: height})
}

// Pass evaluates the current scroll window.
func (s *Spy) Pass(offset, height int) {
	s.obs.Pass(offset, height)
}

// Active returns the section id whose nav link is currently marked, or ""
// when no link is active.
func (s *Spy) Active() string {
	return s.active
}

func (s *Spy) handle(entries []observe.Entry) {
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		// Clear every link first, then mark the match if one exists. A
		// section without a nav link leaves no link active. When several
		// sections cross in one batch the last one wins.
		next := ""
		if _, ok := s.links[e.Target.ID]; ok {
			next = e.Target.ID
		}
		s.setActive(next)
	}
}

func (s *Spy) setActive(next string) {
	if next == s.active {
		return
	}
	s.active = next
	if s.onChange != nil {
		s.onChange(next)
	}
}
