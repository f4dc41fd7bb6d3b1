//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package attack

import (
	"fmt"
	"math/bits"
	"time"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/css"
	"github.com/ezrec/csscrack/lfsr"
)

// Prefix candidates per progress step
const prefixStride = 1 << 8

// PackB folds four bytes of register B output back into the register state
// that produced them. Register B is 25 bits wide, so only the first bit of
// the fourth byte is still original state.
func PackB(y [4]byte) (state uint32) {
	state = uint32(bits.Reverse8(y[0])) |
		uint32(bits.Reverse8(y[1]))<<8 |
		uint32(bits.Reverse8(y[2]))<<16 |
		uint32(bits.Reverse8(y[3])&1)<<24

	return
}

// TryPrefix tests key bytes k0, k1 against keystream. On success it returns
// the state register B had right after key setup.
//
// keystream must hold at least MinKeystream bytes.
func TryPrefix(keystream []byte, k0, k1 byte) (stateB uint32, ok bool) {
	a := css.PrimedA(k0, k1)

	var y [4]byte
	carry := false
	for n := range y {
		y[n], carry = css.Unadd(keystream[n], a.Byte(), carry)
	}

	stateB = PackB(y)

	b := lfsr.New(stateB, css.WidthB, css.TapsB)
	for n := 0; n < 3; n++ {
		if got := b.Byte(); got != y[n] {
			panic(fmt.Sprintf("attack: register B state %#x emitted %#x for byte %d, expected %#x", stateB, got, n, y[n]))
		}
	}

	// The fourth byte is mostly feedback, and is a real test of the guess
	if b.Byte() != y[3] {
		return
	}

	ok = css.Resume(a, b, carry).Matches(keystream[len(y):])

	return
}

// Algebraic runs the prefix scan. The lowest matching prefix wins.
func Algebraic(keystream []byte, config *Config) (partial Partial, stats Stats, found bool, err error) {
	config = orDefault(config)

	if len(keystream) < MinKeystream {
		err = fmt.Errorf("%w: algebraic attack needs %d bytes, got %d", ErrShortKeystream, MinKeystream, len(keystream))
		return
	}

	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	count := config.prefixes()

	prog := csscrack.NewProgress("algebraic", (count+prefixStride-1)/prefixStride)
	defer prog.Close()

	for i := 0; i < count; i++ {
		k0, k1 := byte(i), byte(i>>8)

		stats.Candidates++

		stateB, ok := TryPrefix(keystream, k0, k1)
		if ok {
			partial = Partial{
				Prefix: [2]byte{k0, k1},
				StateB: stateB,
			}
			found = true
			return
		}

		if (i+1)%prefixStride == 0 {
			prog.Indicate()
		}
	}

	return
}
