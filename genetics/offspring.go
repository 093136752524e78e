package genetics

import (
	"fmt"

	"github.com/pthm-cable/coolbirds/bird"
)

// Side identifies one of the two offspring shown next to the seed bird.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ParseSide converts "left" or "right" to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Pair holds two offspring of the same seed bird and the mates that produced them.
type Pair struct {
	Left, Right         bird.Params
	LeftMate, RightMate bird.Params
}

// Offspring breeds current twice: the left child with a catalog bird and the
// right child with a fully random bird.
func (b Breeder) Offspring(current bird.Params, src Source) (Pair, error) {
	leftMate, err := b.Good(src)
	if err != nil {
		return Pair{}, err
	}
	rightMate := b.Randomize(src)

	return Pair{
		Left:      b.Breed(current, leftMate, src),
		Right:     b.Breed(current, rightMate, src),
		LeftMate:  leftMate,
		RightMate: rightMate,
	}, nil
}

// Choose returns the child on the given side.
func (p Pair) Choose(side Side) bird.Params {
	if side == Left {
		return p.Left
	}
	return p.Right
}

// Mate returns the mate that produced the child on the given side.
func (p Pair) Mate(side Side) bird.Params {
	if side == Left {
		return p.LeftMate
	}
	return p.RightMate
}
