package sequencer

// PlaybackState is the run state of a meditation Player.
type PlaybackState string

const (
	PlaybackPlaying PlaybackState = "playing"
	PlaybackPaused  PlaybackState = "paused"
	PlaybackEnded   PlaybackState = "ended"
)

// Player counts a meditation track down to its natural end. Pausing
// suspends ticks without losing position. Reaching the declared track
// duration transitions to Ended, which is terminal until Reset, and
// Tick reports the transition exactly once so the caller can record
// the finished session.
type Player struct {
	duration int // declared track length in seconds
	elapsed  int
	state    PlaybackState
}

// NewPlayer starts a player for a track of the given length, paused.
func NewPlayer(durationSeconds int) *Player {
	return &Player{duration: durationSeconds, state: PlaybackPaused}
}

// Play starts or resumes playback. No effect once ended.
func (p *Player) Play() {
	if p.state == PlaybackPaused {
		p.state = PlaybackPlaying
	}
}

// Pause suspends playback, keeping the elapsed position. A track that
// is paused and walked away from never produces a session record.
func (p *Player) Pause() {
	if p.state == PlaybackPlaying {
		p.state = PlaybackPaused
	}
}

// Reset returns to the start of the track, paused.
func (p *Player) Reset() {
	p.elapsed = 0
	p.state = PlaybackPaused
}

// Tick consumes one second of playback. It returns true exactly once,
// on the tick that reaches the end of the track.
func (p *Player) Tick() (finished bool) {
	if p.state != PlaybackPlaying {
		return false
	}

	p.elapsed++
	if p.elapsed >= p.duration {
		p.elapsed = p.duration
		p.state = PlaybackEnded
		return true
	}
	return false
}

// Elapsed returns the seconds played so far.
func (p *Player) Elapsed() int {
	return p.elapsed
}

// Duration returns the declared track length in seconds.
func (p *Player) Duration() int {
	return p.duration
}

// State returns the current playback state.
func (p *Player) State() PlaybackState {
	return p.state
}
