package playback

import "github.com/enetx/g"

func isDownloaded(d Delegate) bool    { return d.IsDownloaded() }
func isNotDownloaded(d Delegate) bool { return !d.IsDownloaded() }
func isAutoplay(d Delegate) bool      { return d.IsAutoplayEnabled() }
func isNotAutoplay(d Delegate) bool   { return !d.IsAutoplayEnabled() }

// rules holds the transition table. Rules registered on StateRunning apply to
// all of its substates unless the substate handles the event itself.
var rules = g.Map[State, g.Slice[rule]]{
	StateStopped: {
		{event: EventPlay, to: StateDownloading, guard: isNotDownloaded, cond: "!downloaded"},
		{event: EventPlay, to: StatePreparing, guard: isDownloaded, cond: "downloaded"},
	},
	StateRunning: {
		{event: EventStop, to: StateStopped},
		{event: EventError, to: StateStopped},
	},
	StateDownloading: {
		{event: EventDownloaded, to: StatePreparing},
	},
	StatePreparing: {
		{event: EventPrepared, to: StatePlaying, guard: isAutoplay, cond: "autoplay"},
		{event: EventPrepared, to: StatePaused, guard: isNotAutoplay, cond: "!autoplay"},
	},
	StatePlaying: {
		{event: EventPause, to: StatePaused},
	},
	StatePaused: {
		{event: EventStart, to: StatePlaying},
	},
}

// entries holds the entry actions. Playing is entered through two different
// events and runs a different action for each.
var entries = g.Map[State, g.Slice[entry]]{
	StateStopped:     {{name: "OnStopped", action: Delegate.OnStopped}},
	StateDownloading: {{name: "OnStartDownloading", action: Delegate.OnStartDownloading}},
	StatePreparing:   {{name: "OnPrepare", action: Delegate.OnPrepare}},
	StatePlaying: {
		{via: EventPrepared, name: "OnStart", action: Delegate.OnStart},
		{via: EventStart, name: "OnResume", action: Delegate.OnResume},
	},
	StatePaused: {{name: "OnPause", action: Delegate.OnPause}},
}

// decision is the delegate as seen by the guards of a single decision. Each
// predicate is read at most once, so complementary guards always agree.
type decision struct {
	Delegate
	downloaded g.Option[bool]
	autoplay   g.Option[bool]
}

func (d *decision) IsDownloaded() bool {
	if d.downloaded.IsNone() {
		d.downloaded = g.Some(d.Delegate.IsDownloaded())
	}

	return d.downloaded.Some()
}

func (d *decision) IsAutoplayEnabled() bool {
	if d.autoplay.IsNone() {
		d.autoplay = g.Some(d.Delegate.IsAutoplayEnabled())
	}

	return d.autoplay.Some()
}

// match walks from the leaf state up through its ancestors and returns the
// first rule for event whose guard holds. Predicates are read afresh for every
// decision and once within it.
func match(delegate Delegate, state State, event Event) g.Option[rule] {
	d := &decision{Delegate: delegate, downloaded: g.None[bool](), autoplay: g.None[bool]()}

	for s := g.Some(state); s.IsSome(); s = s.Some().Parent() {
		for r := range rules.Get(s.Some()).UnwrapOrDefault().Iter() {
			if r.event != event {
				continue
			}

			if r.guard == nil || r.guard(d) {
				return g.Some(r)
			}
		}
	}

	return g.None[rule]()
}

// entryFor returns the entry action for arriving in state via event.
func entryFor(state State, event Event) g.Option[entry] {
	for e := range entries.Get(state).UnwrapOrDefault().Iter() {
		if e.via == "" || e.via == event {
			return g.Some(e)
		}
	}

	return g.None[entry]()
}
