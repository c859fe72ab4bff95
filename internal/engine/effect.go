package engine

// Effect is one command in the ordered stream the driver folds over the
// state. Effects are plain data; Reduce dispatches on the concrete type
// and is total over all variants.
type Effect interface {
	isEffect()
}

// Translate shifts the active piece by (DX, DY); rejected (identity)
// when the shifted piece would collide.
type Translate struct {
	DX, DY int
}

// SoftDrop is a player-initiated downward shift that scores a fixed
// bonus on success.
type SoftDrop struct {
	DX, DY int
}

// HardDrop sends the active piece to its ghost position and locks it
// immediately, bypassing the lock-delay timer.
type HardDrop struct{}

// Rotate turns the active piece a quarter turn: Dir = +1 clockwise,
// -1 counter-clockwise. Kick offsets are tried in table order; if none
// fits the rotation is rejected.
type Rotate struct {
	Dir int
}

// Hold stashes the active piece, promoting the next (or previously
// held) piece. A no-op until the stash is re-enabled by a lock.
type Hold struct{}

// Pause sets the pause flag unconditionally. While paused the driver
// must suppress all other gameplay effects.
type Pause struct {
	Flag bool
}

// Restart reinitializes the state after a game over, preserving the
// high score and continuing the same piece stream.
type Restart struct{}

// Tick carries the driver's clock: total elapsed milliseconds. It
// drives lock-delay expiry and gravity.
type Tick struct {
	ElapsedMs int64
}

func (Translate) isEffect() {}
func (SoftDrop) isEffect()  {}
func (HardDrop) isEffect()  {}
func (Rotate) isEffect()    {}
func (Hold) isEffect()      {}
func (Pause) isEffect()     {}
func (Restart) isEffect()   {}
func (Tick) isEffect()      {}
