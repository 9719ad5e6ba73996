// internal/reveal/animator.go
//
// One-shot reveal animation state. Blocks are watched until they first become
// sufficiently visible, then permanently marked revealed and dropped from the
// watch set.

package reveal

import "atrium/internal/observe"

// Threshold is the visible fraction at which a block reveals.
const Threshold = 0.12

// Animator marks watched blocks as revealed the first time at least
// Threshold of the block is visible. The transition is one-way: once
// revealed, a block stays revealed and is no longer observed.
type Animator struct {
	obs      *observe.Observer
	revealed map[string]struct{}
	onReveal func(id string)
}

// New creates an animator. onReveal, if non-nil, is invoked once per block
// as it reveals.
func New(onReveal func(id string)) *Animator {
	a := &Animator{
		revealed: make(map[string]struct{}),
		onReveal: onReveal,
	}
	a.obs = observe.New(a.handle, observe.Options{Threshold: Threshold})
	return a
}

// Watch registers a block extent. Already-revealed blocks are ignored, so a
// relayout can re-watch everything without resurrecting animations.
func (a *Animator) Watch(id string, top, height int) {
	if _, done := a.revealed[id]; done {
		return
	}
	a.obs.Observe(observe.Target{ID: id, Top: top, Height: height})
}

// Pass evaluates the current scroll window. Blocks crossing the threshold
// reveal immediately, including blocks already visible on the first pass.
func (a *Animator) Pass(offset, height int) {
	a.obs.Pass(offset, height)
}

// Revealed reports whether the block has been revealed.
func (a *Animator) Revealed(id string) bool {
	_, ok := a.revealed[id]
	return ok
}

// RevealedCount returns how many blocks have revealed so far.
func (a *Animator) RevealedCount() int {
	return len(a.revealed)
}

// Pending returns how many blocks are still waiting to reveal. Blocks that
// never scroll into view simply stay here; that is fine at page scale.
func (a *Animator) Pending() int {
	return a.obs.Len()
}

func (a *Animator) handle(entries []observe.Entry) {
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		id := e.Target.ID
		if _, done := a.revealed[id]; done {
			continue
		}
		a.revealed[id] = struct{}{}
		a.obs.Unobserve(id)
		if a.onReveal != nil {
			a.onReveal(id)
		}
	}
}
