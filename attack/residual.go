//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package attack

import (
	"time"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/css"
	"github.com/ezrec/csscrack/lfsr"
)

const (
	remainders      = 1 << 24
	remainderStride = 1 << 16
)

// Residual finds the key bytes 2..4 whose key setup leaves register B in
// stateB, by trying all of them in order.
func Residual(stateB uint32) (remainder [3]byte, stats Stats, found bool) {
	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	prog := csscrack.NewProgress("residual", remainders/remainderStride)
	defer prog.Close()

	b := css.RegisterB(0, 0, 0)

	for i := 0; i < remainders; i++ {
		k2, k3, k4 := byte(i), byte(i>>8), byte(i>>16)

		stats.Candidates++

		b.Reset(css.SeedB(k2, k3, k4))
		css.WarmB(b)

		if b.State() == stateB {
			remainder = [3]byte{k2, k3, k4}
			found = true
			return
		}

		if (i+1)%remainderStride == 0 {
			prog.Indicate()
		}
	}

	return
}

// Rewind finds the same key bytes as Residual by running register B's key
// setup backwards. Register B's feedback taps bit 0, so every step can be
// undone.
func Rewind(stateB uint32) (remainder [3]byte, found bool) {
	if stateB>>css.WidthB != 0 {
		return
	}

	b := lfsr.New(stateB, css.WidthB, css.TapsB)
	b.RewindByte()
	b.RewindByte()

	k2, k3, k4, ok := css.UnseedB(b.State())
	if !ok {
		return
	}

	remainder = [3]byte{k2, k3, k4}
	found = true

	return
}
