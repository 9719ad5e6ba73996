package navspy

import "testing"

func TestSectionEnteringBandActivatesItsLink(t *testing.T) {
	var changes []string
	s := New([]string{"about", "skills"}, func(active string) { changes = append(changes, active) })
	s.Watch("about", 0, 20)
	s.Watch("skills", 20, 20)

	// Band for a 10-line window at offset 0 is [4,5): inside "about".
	s.Pass(0, 10)
	if got := s.Active(); got != "about" {
		t.Fatalf("active = %q, want about", got)
	}

	// Scroll so the band [24,25) falls inside "skills".
	s.Pass(20, 10)
	if got := s.Active(); got != "skills" {
		t.Fatalf("active = %q, want skills", got)
	}
	if len(changes) != 2 || changes[0] != "about" || changes[1] != "skills" {
		t.Fatalf("unexpected change sequence: %v", changes)
	}
}

func TestAtMostOneLinkActive(t *testing.T) {
	s := New([]string{"a", "b", "c"}, nil)
	s.Watch("a", 0, 10)
	s.Watch("b", 10, 10)
	s.Watch("c", 20, 10)
	for offset := 0; offset <= 25; offset++ {
		s.Pass(offset, 10)
		// Active is a single id by construction; assert it is a known one.
		switch s.Active() {
		case "", "a", "b", "c":
		default:
			t.Fatalf("unexpected active %q at offset %d", s.Active(), offset)
		}
	}
}

func TestSectionWithoutLinkClearsActive(t *testing.T) {
	s := New([]string{"about"}, nil)
	s.Watch("about", 0, 10)
	s.Watch("interlude", 10, 10) // no nav link for this section

	s.Pass(0, 10)
	if s.Active() != "about" {
		t.Fatalf("active = %q, want about", s.Active())
	}

	// Band moves into the unlinked section: clear-all happens, nothing is
	// re-marked.
	s.Pass(10, 10)
	if s.Active() != "" {
		t.Fatalf("active = %q, want empty (no matching link)", s.Active())
	}
}

func TestRepeatedPassKeepsActiveStable(t *testing.T) {
	var changes []string
	s := New([]string{"about"}, func(active string) { changes = append(changes, active) })
	s.Watch("about", 0, 30)

	s.Pass(0, 10)
	s.Pass(1, 10)
	s.Pass(2, 10)
	if s.Active() != "about" {
		t.Fatalf("active = %q, want about", s.Active())
	}
	if len(changes) != 1 {
		t.Fatalf("change fired %d times for a section that never left the band", len(changes))
	}
}
