// internal/observe/observer.go
//
// Visibility observation for the document viewport. Targets are line ranges
// in document coordinates; a pass takes the current scroll window, applies
// the configured margins, and reports targets whose intersection state
// changed since the previous pass.

package observe

import (
	"math"
	"sort"
)

// Target is a watched line range in document coordinates.
type Target struct {
	ID     string
	Top    int
	Height int
}

// Entry reports one target's intersection with the (margin-adjusted) window.
type Entry struct {
	Target       Target
	Ratio        float64
	Intersecting bool
}

// Callback receives the entries produced by a single pass.
type Callback func(entries []Entry)

// Options tunes how intersection is judged.
//
// Threshold is the visible fraction of a target that counts as intersecting.
// A threshold of zero means any visible line counts.
//
// Margins are signed fractions of the window height applied to the window's
// edges before intersection is computed. A negative top margin moves the top
// edge down, a negative bottom margin moves the bottom edge up, shrinking the
// window to a band.
type Options struct {
	Threshold    float64
	TopMargin    float64
	BottomMargin float64
}

type watched struct {
	target       Target
	seen         bool
	intersecting bool
}

// Observer tracks a set of targets and fires a callback on state changes.
// It is driven from a single goroutine (the UI update loop) and is not safe
// for concurrent use.
type Observer struct {
	opts    Options
	cb      Callback
	targets map[string]*watched
}

// New creates an observer delivering entries to cb.
func New(cb Callback, opts Options) *Observer {
	return &Observer{
		opts:    opts,
		cb:      cb,
		targets: make(map[string]*watched),
	}
}

// Observe registers a target. Re-observing an existing ID updates its extent
// but keeps its intersection state, so a relayout does not re-fire targets
// that did not actually cross.
func (o *Observer) Observe(t Target) {
	if o == nil || t.ID == "" {
		return
	}
	if w, ok := o.targets[t.ID]; ok {
		w.target = t
		return
	}
	o.targets[t.ID] = &watched{target: t}
}

// Unobserve removes a target. No further entries are produced for it.
func (o *Observer) Unobserve(id string) {
	if o == nil {
		return
	}
	delete(o.targets, id)
}

// Observing reports whether the given target is still registered.
func (o *Observer) Observing(id string) bool {
	if o == nil {
		return false
	}
	_, ok := o.targets[id]
	return ok
}

// Len returns the number of registered targets.
func (o *Observer) Len() int {
	if o == nil {
		return 0
	}
	return len(o.targets)
}

// Pass evaluates every target against the window [offset, offset+height) and
// fires the callback with entries for targets whose intersection state
// changed. A target's first pass always produces an entry, matching the
// initial delivery of platform visibility observers, so content already in
// view is reported immediately.
//
// The callback may call Unobserve for any target, including ones outside the
// current batch.
func (o *Observer) Pass(offset, height int) {
	if o == nil || height <= 0 {
		return
	}
	bandTop, bandBottom := o.band(offset, height)

	var entries []Entry
	for _, w := range o.targets {
		ratio := intersectionRatio(w.target, bandTop, bandBottom)
		intersecting := o.judge(ratio)
		if w.seen && intersecting == w.intersecting {
			continue
		}
		w.seen = true
		w.intersecting = intersecting
		entries = append(entries, Entry{Target: w.target, Ratio: ratio, Intersecting: intersecting})
	}
	if len(entries) == 0 || o.cb == nil {
		return
	}
	// Deterministic delivery order by document position. No ordering is
	// promised to callers, but stable output keeps behavior reproducible.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Target.Top != entries[j].Target.Top {
			return entries[i].Target.Top < entries[j].Target.Top
		}
		return entries[i].Target.ID < entries[j].Target.ID
	})
	o.cb(entries)
}

// band applies the margins to the raw window edges.
func (o *Observer) band(offset, height int) (int, int) {
	top := offset - int(math.Round(o.opts.TopMargin*float64(height)))
	bottom := offset + height + int(math.Round(o.opts.BottomMargin*float64(height)))
	if bottom < top {
		bottom = top
	}
	return top, bottom
}

func (o *Observer) judge(ratio float64) bool {
	if o.opts.Threshold <= 0 {
		return ratio > 0
	}
	return ratio >= o.opts.Threshold
}

func intersectionRatio(t Target, bandTop, bandBottom int) float64 {
	if t.Height <= 0 {
		return 0
	}
	top := t.Top
	if bandTop > top {
		top = bandTop
	}
	bottom := t.Top + t.Height
	if bandBottom < bottom {
		bottom = bandBottom
	}
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(t.Height)
}
