//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package lfsr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	tapsA = TapsOf(0, 14)
	tapsB = TapsOf(0, 3, 4, 12)
)

func TestTaps(t *testing.T) {
	if tapsA != 0x4001 {
		t.Fatalf("TapsOf(0, 14): expected %#x, got %#x", 0x4001, uint32(tapsA))
	}

	if diff := cmp.Diff([]uint{0, 3, 4, 12}, tapsB.Positions()); diff != "" {
		t.Fatalf("Positions: (-want +got)\n%s", diff)
	}

	if tapsB.String() != "s0^s3^s4^s12" {
		t.Fatalf("String: expected %q, got %q", "s0^s3^s4^s12", tapsB.String())
	}
}

func TestByte(t *testing.T) {
	table := map[string]struct {
		State uint32
		Width uint
		Taps  Taps
		Out   []byte
		Next  uint32
	}{
		"a-seed":  {0x100, 17, tapsA, []byte{0x00}, 0x00001},
		"a-ones":  {0x1ffff, 17, tapsA, []byte{0xff}, 0x071ff},
		"b-seed":  {0x200000, 25, tapsB, []byte{0x00}, 0x002000},
		"b-twice": {0x200000, 25, tapsB, []byte{0x00, 0x00}, 0x040020},
	}

	for key, item := range table {
		r := New(item.State, item.Width, item.Taps)
		out := make([]byte, len(item.Out))
		r.Read(out)

		if diff := cmp.Diff(item.Out, out); diff != "" {
			t.Errorf("%v: output (-want +got)\n%s", key, diff)
		}

		if r.State() != item.Next {
			t.Errorf("%v: expected state %#x, got %#x", key, item.Next, r.State())
		}
	}
}

func TestByteDeterministic(t *testing.T) {
	for _, state := range []uint32{0, 1, 0x12345, 0x1ffffff, 0x0abcdef} {
		r1 := New(state, 25, tapsB)
		r2 := New(state, 25, tapsB)

		for n := 0; n < 64; n++ {
			b1, b2 := r1.Byte(), r2.Byte()
			if b1 != b2 || r1.State() != r2.State() {
				t.Fatalf("%#x: step %d diverged: %#x/%#x vs %#x/%#x", state, n, b1, r1.State(), b2, r2.State())
			}
		}
	}
}

func TestByteBitOrder(t *testing.T) {
	// With no feedback the register simply drains, least significant bit
	// first into the most significant bit of the output.
	r := New(0x01, 17, TapsOf(16))
	if b := r.Byte(); b != 0x80 {
		t.Fatalf("expected %#x, got %#x", 0x80, b)
	}
}

func TestRewind(t *testing.T) {
	for _, state := range []uint32{0x100, 0x1ffff, 0x0beef, 0x10001} {
		r := New(state, 17, tapsA)
		r.Byte()
		r.Byte()
		r.Bit()

		r.Rewind()
		r.RewindByte()
		r.RewindByte()

		if r.State() != state {
			t.Errorf("%#x: rewound to %#x", state, r.State())
		}
	}

	for _, state := range []uint32{0x200000, 0x1ffffff, 0x33a4fd, 0x0040020} {
		r := New(state, 25, tapsB)
		for n := 0; n < 5; n++ {
			r.Byte()
		}
		for n := 0; n < 5; n++ {
			r.RewindByte()
		}

		if r.State() != state {
			t.Errorf("%#x: rewound to %#x", state, r.State())
		}
	}
}

func TestInvariants(t *testing.T) {
	table := map[string]func(){
		"width-zero":  func() { New(0, 0, tapsA) },
		"width-big":   func() { New(0, 33, tapsA) },
		"taps-wide":   func() { New(0, 8, tapsA) },
		"tap-range":   func() { TapsOf(32) },
		"rewind-tap0": func() { New(1, 17, TapsOf(14)).Rewind() },
	}

	for key, fn := range table {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%v: expected panic", key)
				}
			}()
			fn()
		}()
	}
}
