package engine

// Bag is one node of the infinite seeded piece sequence: an immutable
// value holding the seed that produced the current permutation and a
// pointer into it. Advancing past the last element reshuffles with the
// hash of the current seed, so any snapshot of a Bag can resume the
// exact same infinite stream.
type Bag struct {
	Seed    uint32
	Pointer int
	Perm    [pieceTypeCount]PieceType
}

// lcg advances the linear-congruential hash driving the shuffle.
func lcg(h uint32) uint32 {
	return h*1664525 + 1013904223
}

// NewBag creates the first node of the piece sequence for a seed.
func NewBag(seed int64) Bag {
	return bagFrom(uint32(seed))
}

func bagFrom(seed uint32) Bag {
	return Bag{Seed: seed, Perm: shufflePieces(seed)}
}

// shufflePieces permutes the seven piece types by random insertion:
// each type in canonical order is inserted at an index drawn from the
// running hash.
func shufflePieces(seed uint32) [pieceTypeCount]PieceType {
	h := lcg(seed)
	out := make([]PieceType, 0, pieceTypeCount)
	for _, t := range allPieceTypes {
		h = lcg(h)
		idx := int(h % uint32(len(out)+1))
		out = append(out, 0)
		copy(out[idx+1:], out[idx:])
		out[idx] = t
	}

	var perm [pieceTypeCount]PieceType
	copy(perm[:], out)
	return perm
}

// Value returns the piece type at the current position.
func (b Bag) Value() PieceType {
	return b.Perm[b.Pointer]
}

// Next returns the following node. When the permutation is exhausted a
// fresh one is generated from the hash of the current seed, so every
// 7-draw window aligned to a reshuffle contains each type exactly once.
func (b Bag) Next() Bag {
	if b.Pointer+1 < int(pieceTypeCount) {
		b.Pointer++
		return b
	}
	return bagFrom(lcg(b.Seed))
}
