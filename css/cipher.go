//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package css is the stream cipher core of the Content Scramble System: two
// LFSRs whose outputs are summed with carry.
//
// Register layout from:
// https://web.archive.org/web/20070508145900/http://www.tinyted.net/eddie/css_basic.html
package css

import (
	"math/bits"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/lfsr"
)

const (
	WidthA = 17
	WidthB = 25

	// Bits forced to one when seeding the registers
	FixedBitA = 8
	FixedBitB = 21
)

var (
	TapsA = lfsr.TapsOf(0, 14)
	TapsB = lfsr.TapsOf(0, 3, 4, 12)
)

// SeedA is the initial state of register A for key bytes 0 and 1.
func SeedA(k0, k1 byte) (state uint32) {
	state = uint32(bits.Reverse8(k0))<<9 |
		1<<FixedBitA |
		uint32(bits.Reverse8(k1))

	return
}

// SeedB is the initial state of register B for key bytes 2, 3 and 4.
//
//	[_|__1_____|__k3__|__k4__]
//	 \ MSB                  \ LSB
func SeedB(k2, k3, k4 byte) (state uint32) {
	r2 := uint32(bits.Reverse8(k2))

	state = (r2&0xe0)<<17 |
		1<<FixedBitB |
		(r2&0x1f)<<16 |
		uint32(bits.Reverse8(k3))<<8 |
		uint32(bits.Reverse8(k4))

	return
}

// UnseedB inverts SeedB. It fails if the fixed bit is clear.
func UnseedB(state uint32) (k2, k3, k4 byte, ok bool) {
	if state>>WidthB != 0 || state&(1<<FixedBitB) == 0 {
		return
	}

	r2 := byte((state>>17)&0xe0) | byte((state>>16)&0x1f)

	k2 = bits.Reverse8(r2)
	k3 = bits.Reverse8(byte(state >> 8))
	k4 = bits.Reverse8(byte(state))
	ok = true

	return
}

func RegisterA(k0, k1 byte) *lfsr.Register {
	return lfsr.New(SeedA(k0, k1), WidthA, TapsA)
}

func RegisterB(k2, k3, k4 byte) *lfsr.Register {
	return lfsr.New(SeedB(k2, k3, k4), WidthB, TapsB)
}

// WarmA runs register A through its part of key setup.
func WarmA(a *lfsr.Register) {
	var warm [1]byte
	a.Read(warm[:])
}

// WarmB runs register B through its part of key setup.
func WarmB(b *lfsr.Register) {
	var warm [2]byte
	b.Read(warm[:])
}

// PrimedA returns register A as it stands after key setup.
func PrimedA(k0, k1 byte) (a *lfsr.Register) {
	a = RegisterA(k0, k1)
	WarmA(a)

	return
}

// PrimedB returns register B as it stands after key setup.
func PrimedB(k2, k3, k4 byte) (b *lfsr.Register) {
	b = RegisterB(k2, k3, k4)
	WarmB(b)

	return
}

// Cipher generates keystream. It cannot be rewound or restarted.
type Cipher struct {
	a, b  *lfsr.Register
	carry bool
}

func New(key csscrack.Key) (c *Cipher) {
	c = &Cipher{
		a: PrimedA(key[0], key[1]),
		b: PrimedB(key[2], key[3], key[4]),
	}

	return
}

// Reset rekeys the cipher in place.
func (c *Cipher) Reset(key csscrack.Key) {
	c.a.Reset(SeedA(key[0], key[1]))
	WarmA(c.a)

	c.b.Reset(SeedB(key[2], key[3], key[4]))
	WarmB(c.b)

	c.carry = false
}

// Resume continues a keystream from registers already past key setup.
// The cipher takes ownership of both registers.
func Resume(a, b *lfsr.Register, carry bool) (c *Cipher) {
	if a.Width() != WidthA || a.Taps() != TapsA {
		panic("css: register A has the wrong shape")
	}
	if b.Width() != WidthB || b.Taps() != TapsB {
		panic("css: register B has the wrong shape")
	}

	c = &Cipher{
		a:     a,
		b:     b,
		carry: carry,
	}

	return
}

// Next produces one keystream byte.
func (c *Cipher) Next() (k byte) {
	x := c.a.Byte()
	y := c.b.Byte()

	k, c.carry = AddCarry(x, y, c.carry)

	return
}

func (c *Cipher) Read(buff []byte) (size int, err error) {
	for n := range buff {
		buff[n] = c.Next()
	}

	size = len(buff)

	return
}

// Matches consumes len(keystream) bytes, reporting whether all of them
// agree with keystream. It stops at the first disagreement.
func (c *Cipher) Matches(keystream []byte) bool {
	for _, k := range keystream {
		if c.Next() != k {
			return false
		}
	}

	return true
}

// Keystream returns the first size bytes of keystream for key.
func Keystream(key csscrack.Key, size int) (keystream []byte) {
	keystream = make([]byte, size)
	New(key).Read(keystream)

	return
}
