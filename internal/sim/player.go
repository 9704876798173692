// Package sim provides a simulated media player that drives a playback
// state machine without decoding or downloading anything.
package sim

import (
	"github.com/enetx/g"
	"github.com/enetx/playback"
	"github.com/rs/zerolog"
)

// Media describes the item being played.
type Media struct {
	Source string
	// Local reports whether the media is already available on disk.
	Local bool
}

// Options configures a Player.
type Options struct {
	InitialState playback.State
	// Media is used when EventPlay is posted without a session.
	Media    Media
	Autoplay bool
	// AutoAdvance completes downloads and preparation immediately by posting
	// the follow-up event from the entry action.
	AutoAdvance bool
	// Sync creates a machine that accepts events from several goroutines.
	Sync   bool
	Logger zerolog.Logger
}

// Player is a playback.Delegate that records its actions.
type Player struct {
	machine *playback.Machine
	log     zerolog.Logger
	opts    Options

	media    Media
	autoplay bool
	actions  g.Slice[g.String]
}

// New creates a player and its state machine.
func New(opts Options) *Player {
	p := &Player{
		log:      opts.Logger.With().Str("component", "sim").Logger(),
		opts:     opts,
		autoplay: true,
	}

	if opts.Sync {
		p.machine = playback.NewSync(opts.InitialState, p)
	} else {
		p.machine = playback.New(opts.InitialState, p)
	}

	p.machine.WithLogger(opts.Logger)

	if opts.InitialState != playback.StateStopped {
		// Restored mid-session: assume the configured media is loaded.
		p.media = opts.Media
		p.autoplay = opts.Autoplay
	}

	return p
}

// Machine returns the state machine driven by the player.
func (p *Player) Machine() *playback.Machine { return p.machine }

// Actions returns the delegate actions invoked so far, in order.
func (p *Player) Actions() g.Slice[g.String] { return p.actions.Clone() }

// Play starts a playback session for media.
func (p *Player) Play(media Media, autoplay bool) error {
	p.media = media
	p.autoplay = autoplay

	return p.machine.Post(playback.EventPlay)
}

// Post forwards event to the machine. A play event uses the configured media.
func (p *Player) Post(event playback.Event) error {
	if event == playback.EventPlay && p.machine.State() == playback.StateStopped {
		return p.Play(p.opts.Media, p.opts.Autoplay)
	}

	return p.machine.Post(event)
}

// Stop ends the session.
func (p *Player) Stop() error { return p.machine.Post(playback.EventStop) }

// Pause pauses playback.
func (p *Player) Pause() error { return p.machine.Post(playback.EventPause) }

// Start resumes paused playback.
func (p *Player) Start() error { return p.machine.Post(playback.EventStart) }

// Fail reports a decoder or download failure.
func (p *Player) Fail() error { return p.machine.Post(playback.EventError) }

// IsPlaying reports whether the machine is in StatePlaying.
func (p *Player) IsPlaying() bool { return p.machine.State() == playback.StatePlaying }

// CanPause reports whether a pause event would be applied.
func (p *Player) CanPause() bool { return p.machine.State() == playback.StatePlaying }

// IsDownloaded reports whether the current media is local.
func (p *Player) IsDownloaded() bool { return p.media.Local }

// IsAutoplayEnabled reports whether prepared media starts playing on its own.
func (p *Player) IsAutoplayEnabled() bool { return p.autoplay }

// OnStartDownloading begins fetching remote media.
func (p *Player) OnStartDownloading() {
	p.record("OnStartDownloading")

	if p.opts.AutoAdvance {
		p.media.Local = true
		p.follow(playback.EventDownloaded)
	}
}

// OnPrepare loads the media into the decoder.
func (p *Player) OnPrepare() {
	p.record("OnPrepare")

	if p.opts.AutoAdvance {
		p.follow(playback.EventPrepared)
	}
}

// OnStopped releases the session.
func (p *Player) OnStopped() {
	p.record("OnStopped")

	p.media = Media{}
	p.autoplay = true
}

// OnStart begins playback of freshly prepared media.
func (p *Player) OnStart() { p.record("OnStart") }

// OnPause halts output.
func (p *Player) OnPause() { p.record("OnPause") }

// OnResume continues paused playback.
func (p *Player) OnResume() { p.record("OnResume") }

func (p *Player) record(action g.String) {
	p.actions.Push(action)
	p.log.Info().Str("action", string(action)).Str("source", p.media.Source).Msg("delegate action")
}

// follow posts the event that would normally arrive from the decoder or the
// downloader once their work completes.
func (p *Player) follow(event playback.Event) {
	if err := p.machine.Post(event); err != nil {
		p.log.Error().Err(err).Str("event", string(event)).Msg("follow-up event rejected")
	}
}
