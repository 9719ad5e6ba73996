package reveal

import "testing"

func TestRevealFiresOnceAndSticks(t *testing.T) {
	var fired []string
	a := New(func(id string) { fired = append(fired, id) })
	a.Watch("skills/block-0", 20, 5)

	a.Pass(0, 10) // off screen
	if a.Revealed("skills/block-0") {
		t.Fatalf("block revealed while off screen")
	}

	a.Pass(18, 10) // fully visible
	if !a.Revealed("skills/block-0") {
		t.Fatalf("block should reveal once visible")
	}

	// Scroll away and back: the reveal must not re-fire.
	a.Pass(0, 10)
	a.Pass(18, 10)
	if len(fired) != 1 {
		t.Fatalf("onReveal fired %d times, want 1", len(fired))
	}
	if !a.Revealed("skills/block-0") {
		t.Fatalf("reveal state must be permanent")
	}
	if a.Pending() != 0 {
		t.Fatalf("revealed block should be dropped from the watch set")
	}
}

func TestBlockVisibleAtRegistrationRevealsImmediately(t *testing.T) {
	a := New(nil)
	a.Watch("about/block-0", 1, 3)
	a.Pass(0, 10)
	if !a.Revealed("about/block-0") {
		t.Fatalf("block inside the window must reveal on the first pass")
	}
}

func TestBelowThresholdDoesNotReveal(t *testing.T) {
	a := New(nil)
	// 1 of 10 lines visible: ratio 0.1, below the 0.12 threshold.
	a.Watch("experience/block-0", 9, 10)
	a.Pass(0, 10)
	if a.Revealed("experience/block-0") {
		t.Fatalf("ratio below threshold must not reveal")
	}
	// 2 of 10 lines visible: 0.2 crosses 0.12.
	a.Pass(1, 10)
	if !a.Revealed("experience/block-0") {
		t.Fatalf("crossing the threshold must reveal")
	}
}

func TestNeverVisibleBlockStaysRegistered(t *testing.T) {
	a := New(nil)
	a.Watch("footer/block-0", 500, 4)
	for offset := 0; offset < 100; offset += 10 {
		a.Pass(offset, 10)
	}
	if a.Revealed("footer/block-0") {
		t.Fatalf("block never entered the window")
	}
	if a.Pending() != 1 {
		t.Fatalf("unrevealed block must stay watched, pending = %d", a.Pending())
	}
}

func TestRewatchAfterRevealIsIgnored(t *testing.T) {
	a := New(nil)
	a.Watch("skills/block-1", 2, 2)
	a.Pass(0, 10)
	if !a.Revealed("skills/block-1") {
		t.Fatalf("expected reveal")
	}
	// Relayout re-watches every block; revealed ones must not re-enter.
	a.Watch("skills/block-1", 40, 2)
	if a.Pending() != 0 {
		t.Fatalf("revealed block re-entered the watch set")
	}
}
