package engine

import "github.com/velikanov/blockfall/internal/core"

// Reduce applies one effect to a state and returns the successor state.
// It is a total function: unknown or rejected effects return the input
// unchanged, and it never panics for any defined Effect variant.
func Reduce(s State, e Effect) State {
	switch e := e.(type) {
	case Pause:
		s.Paused = e.Flag
		return s
	case Restart:
		return restart(s)
	case Tick:
		return tick(s, e.ElapsedMs)
	}

	// Remaining gameplay effects become permanent no-ops once the game
	// has ended.
	if s.GameOver {
		return s
	}

	switch e := e.(type) {
	case Translate:
		return translate(s, core.Pos{X: e.DX, Y: e.DY})
	case SoftDrop:
		return softDrop(s, core.Pos{X: e.DX, Y: e.DY})
	case HardDrop:
		return hardDrop(s)
	case Rotate:
		return rotate(s, e.Dir)
	case Hold:
		return hold(s)
	}
	return s
}

// translate shifts the active piece, rejecting collisions as identity.
func translate(s State, d core.Pos) State {
	p := s.Active.Piece.Translate(d)
	if IsColliding(s.Field, p) {
		return s
	}
	return placePiece(s, p, true)
}

// softDrop is translate plus a fixed score bonus on success.
func softDrop(s State, d core.Pos) State {
	p := s.Active.Piece.Translate(d)
	if IsColliding(s.Field, p) {
		return s
	}
	s = placePiece(s, p, true)
	s.Metrics.Score += SoftDropPoints
	return s
}

// rotate tries the kick candidates in table order and applies the first
// offset whose rotated piece does not collide. With no fitting offset
// the rotation is rejected: position and rotation state both unchanged.
func rotate(s State, dir int) State {
	cur := s.Active.Piece
	rotated := cur.Rotated(dir)
	for _, k := range kickCandidates(cur.Type, cur.Rotation, rotated.Rotation) {
		cand := rotated.Translate(k)
		if !IsColliding(s.Field, cand) {
			return placePiece(s, cand, true)
		}
	}
	return s
}

// hold stashes the active piece. With an empty slot the next piece is
// promoted and a fresh one drawn; with an occupied slot the pieces
// swap. Either way the stash is disabled until the next lock.
func hold(s State) State {
	if s.Hold.Used {
		return s
	}

	stashed := NewTetromino(s.Active.Piece.Type)
	var incoming Tetromino
	if s.Hold.Occupied {
		incoming = NewTetromino(s.Hold.Piece.Type)
	} else {
		incoming = s.Next
		s.Bag = s.Bag.Next()
		s.Next = NewTetromino(s.Bag.Value())
	}

	s.Hold = HoldSlot{Piece: stashed, Occupied: true, Used: true}
	s.Active.Timer = LockTimer{}
	s.Metrics.HoldCount++
	return placePiece(s, incoming, false)
}

// hardDrop sends the piece to its ghost row, scores the descent, and
// locks immediately.
func hardDrop(s State) State {
	rows := s.Active.Ghost.Pos.Y - s.Active.Piece.Pos.Y
	s.Metrics.Score += HardDropPointsPerRow * rows
	s = placePiece(s, s.Active.Piece.Translate(core.Pos{Y: rows}), false)
	return lockPiece(s)
}

// tick advances the clock: first an expired lock-delay timer locks the
// piece (if it is still resting), then gravity pulls the piece down one
// row whenever a full gravity interval has elapsed.
func tick(s State, elapsed int64) State {
	t := s.Active.Timer
	if !s.GameOver && t.Ready && elapsed-t.StartMs > LockDelayMs &&
		resting(s.Field, s.Active.Piece) {
		s.Metrics.CurrentMs = elapsed
		s = lockPiece(s)
	}

	s.Metrics.CurrentMs = elapsed
	if s.GameOver {
		return s
	}

	interval := gravityIntervalMs(s.Metrics.Level)
	if float64(elapsed)-s.Metrics.PrevGravityMs > interval {
		s.Metrics.PrevGravityMs += interval
		p := s.Active.Piece.Translate(down)
		if !IsColliding(s.Field, p) {
			s = placePiece(s, p, false)
		}
	}
	return s
}

// lockPiece runs the ordered lock transition: merge the piece, clear
// rows, score, level up, and promote the next piece (or end the game if
// it cannot spawn).
func lockPiece(s State) State {
	m := s.Metrics
	m.LockCount++
	s.Hold.Used = false

	s.Field = merge(s.Field, s.Active.Piece)
	s.Active.Timer = LockTimer{}

	grid, cleared := clearFilledRows(s.Field.Grid)
	s.Field.Grid = grid

	if cleared == 0 {
		m.Combo = 0
	} else {
		comboBefore := m.Combo
		m.Combo++
		m.MaxCombo = core.Max(m.MaxCombo, m.Combo)
		m.Score += (clearScores[cleared] + ComboBonus*comboBefore) * m.Level
		m.RowsCleared += cleared
		m.ClearAction = clearNames[cleared]
	}

	m.Level = core.Clamp(StartLevel+m.RowsCleared/LinesPerLevel, 1, LevelMax)
	s.Metrics = m

	return spawnNext(s)
}

// spawnNext promotes the queued piece to active and draws a fresh next
// piece. A promoted piece that immediately collides ends the game.
func spawnNext(s State) State {
	active := s.Next
	s.Bag = s.Bag.Next()
	s.Next = NewTetromino(s.Bag.Value())

	if IsColliding(s.Field, active) {
		m := s.Metrics
		m.HiScore = core.Max(m.HiScore, m.Score)
		m.EndMs = m.CurrentMs
		s.Metrics = m
		s.GameOver = true
		s.Active = ActivePiece{Piece: active, Ghost: active.WithoutColor()}
		return s
	}

	s.Active.Timer = LockTimer{}
	return placePiece(s, active, false)
}

// restart acts only after a game over. It rebuilds the state, keeping
// the high score, promoting the previously queued piece to active
// (continuing the same randomizer stream), and resetting every time
// reference to the current clock so resuming causes no spurious
// gravity.
func restart(s State) State {
	if !s.GameOver {
		return s
	}

	now := s.Metrics.CurrentMs
	active := NewTetromino(s.Next.Type)
	bag := s.Bag.Next()

	ns := State{
		Next:  NewTetromino(bag.Value()),
		Bag:   bag,
		Field: NewPlayField(FieldWidth, FieldHeight),
		Metrics: Metrics{
			HiScore:       core.Max(s.Metrics.HiScore, s.Metrics.Score),
			Level:         StartLevel,
			StartMs:       now,
			CurrentMs:     now,
			PrevGravityMs: float64(now),
		},
	}
	return placePiece(ns, active, false)
}
