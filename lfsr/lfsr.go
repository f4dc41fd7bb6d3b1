//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package lfsr implements right shifting (Fibonacci) linear feedback shift
// registers whose feedback rule is a set of XORed tap positions.
package lfsr

import (
	"fmt"
	"math/bits"
	"strings"
)

// Taps is a mask of the state bits XORed together to form the feedback bit.
type Taps uint32

// TapsOf builds a tap mask from bit positions.
func TapsOf(positions ...uint) (taps Taps) {
	for _, pos := range positions {
		if pos >= 32 {
			panic(fmt.Sprintf("lfsr: tap position %d out of range", pos))
		}
		taps |= 1 << pos
	}

	return
}

// Positions lists the tap positions, lowest first.
func (taps Taps) Positions() (positions []uint) {
	for pos := uint(0); pos < 32; pos++ {
		if taps&(1<<pos) != 0 {
			positions = append(positions, pos)
		}
	}

	return
}

func (taps Taps) String() string {
	terms := []string{}
	for _, pos := range taps.Positions() {
		terms = append(terms, fmt.Sprintf("s%d", pos))
	}

	return strings.Join(terms, "^")
}

// Feedback computes the feedback bit for state.
func (taps Taps) Feedback(state uint32) (bit uint32) {
	bit = uint32(bits.OnesCount32(state&uint32(taps)) & 1)

	return
}

type Register struct {
	state uint32
	width uint
	taps  Taps
}

// New returns a register of the given width. The state is masked to width,
// and every tap must lie inside the register.
func New(state uint32, width uint, taps Taps) (r *Register) {
	if width == 0 || width > 32 {
		panic(fmt.Sprintf("lfsr: width %d out of range", width))
	}

	if uint64(taps)>>width != 0 {
		panic(fmt.Sprintf("lfsr: taps %v outside of %d bit register", taps, width))
	}

	r = &Register{
		state: state & mask(width),
		width: width,
		taps:  taps,
	}

	return
}

func mask(width uint) uint32 {
	return uint32(uint64(1)<<width - 1)
}

func (r *Register) State() uint32 { return r.state }
func (r *Register) Width() uint   { return r.width }
func (r *Register) Taps() Taps    { return r.taps }

// Reset loads a new state, keeping the width and taps.
func (r *Register) Reset(state uint32) {
	r.state = state & mask(r.width)
}

// Bit shifts the register once, returning the bit shifted out of the bottom.
func (r *Register) Bit() (out byte) {
	out = byte(r.state & 1)

	next := r.taps.Feedback(r.state)
	if next > 1 {
		panic(fmt.Sprintf("lfsr: feedback of %v produced %d", r.taps, next))
	}

	r.state >>= 1
	r.state |= next << (r.width - 1)

	return
}

// Byte shifts out eight bits, the first bit out becoming the most
// significant bit of the result.
func (r *Register) Byte() (out byte) {
	for n := 0; n < 8; n++ {
		out <<= 1
		out |= r.Bit()
	}

	return
}

// Rewind undoes one Bit() step. The rule must tap bit 0, otherwise the
// shifted out bit cannot be recovered.
func (r *Register) Rewind() {
	if r.taps&1 == 0 {
		panic(fmt.Sprintf("lfsr: taps %v do not include bit 0, cannot rewind", r.taps))
	}

	top := r.width - 1
	fed := (r.state >> top) & 1
	upper := (r.state << 1) & mask(r.width)

	low := fed ^ (r.taps &^ 1).Feedback(upper)

	r.state = upper | low
}

// RewindByte undoes one Byte() step.
func (r *Register) RewindByte() {
	for n := 0; n < 8; n++ {
		r.Rewind()
	}
}

// Read fills buff with successive Byte() outputs.
func (r *Register) Read(buff []byte) (size int, err error) {
	for n := range buff {
		buff[n] = r.Byte()
	}

	size = len(buff)

	return
}
