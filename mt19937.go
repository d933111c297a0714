package cryptopals

import "fmt"

// MT19937 is the 32-bit Mersenne Twister pseudo-random generator.
// It is not safe for concurrent use.
type MT19937 struct {
	state [mtN]uint32
	index int
}

// NewMT19937 returns a generator seeded with seed.
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// Seed resets the generator state from seed.
func (mt *MT19937) Seed(seed uint32) {
	mt.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := mt.state[i-1]
		mt.state[i] = mtInitMul*(prev^(prev>>30)) + uint32(i)
	}
	mt.index = mtN
}

func (mt *MT19937) twist() {
	for i := 0; i < mtN; i++ {
		y := mt.state[i]&mtUpperMask | mt.state[(i+1)%mtN]&mtLowerMask
		next := y >> 1
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		mt.state[i] = mt.state[(i+mtM)%mtN] ^ next
	}
	mt.index = 0
}

// Uint32 returns the next output of the generator.
func (mt *MT19937) Uint32() uint32 {
	if mt.index >= mtN {
		mt.twist()
	}
	y := mt.state[mt.index]
	mt.index++
	return temper(y)
}

func temper(y uint32) uint32 {
	y ^= y >> 11
	y ^= (y << 7) & mtTemperB
	y ^= (y << 15) & mtTemperC
	y ^= y >> 18
	return y
}

// Untemper inverts the output transform of MT19937, returning the state
// word that produced output y.
func Untemper(y uint32) uint32 {
	y = undoShiftRight(y, 18)
	y = undoShiftLeftMask(y, 15, mtTemperC)
	y = undoShiftLeftMask(y, 7, mtTemperB)
	y = undoShiftRight(y, 11)
	return y
}

// undoShiftRight inverts y ^= y >> shift. Each pass recovers shift more
// of the top bits.
func undoShiftRight(y uint32, shift uint) uint32 {
	x := y
	for i := uint(0); i < 32; i += shift {
		x = y ^ x>>shift
	}
	return x
}

// undoShiftLeftMask inverts y ^= (y << shift) & mask, recovering shift
// more of the low bits on each pass.
func undoShiftLeftMask(y uint32, shift uint, mask uint32) uint32 {
	x := y
	for i := uint(0); i < 32; i += shift {
		x = y ^ (x<<shift)&mask
	}
	return x
}

// CloneMT19937 rebuilds a generator from MTStateSize consecutive outputs
// taken right after a twist. The clone predicts every later output of the
// original.
func CloneMT19937(outputs []uint32) (*MT19937, error) {
	if len(outputs) < mtN {
		return nil, fmt.Errorf("%w: got %d of %d", ErrNotCloneable, len(outputs), mtN)
	}
	clone := &MT19937{index: mtN}
	for i, out := range outputs[:mtN] {
		clone.state[i] = Untemper(out)
	}
	mtLog.Debugf("Cloned generator from %d outputs", mtN)
	return clone, nil
}
