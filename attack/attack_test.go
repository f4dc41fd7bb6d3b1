//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package attack

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/css"
)

var deadbeef = csscrack.Key{0xde, 0xad, 0xbe, 0x04, 0x00}

func TestPackB(t *testing.T) {
	b := css.PrimedB(0xbe, 0x04, 0x00)
	state := b.State()

	var y [4]byte
	b.Read(y[:])

	if got := PackB(y); got != state {
		t.Fatalf("expected %#x, got %#x", state, got)
	}
}

func TestTryPrefix(t *testing.T) {
	keystream := css.Keystream(deadbeef, 64)

	stateB, ok := TryPrefix(keystream, 0xde, 0xad)
	if !ok {
		t.Fatalf("true prefix rejected")
	}

	if stateB != 0x33a4fd {
		t.Fatalf("expected %#x, got %#x", 0x33a4fd, stateB)
	}

	for _, prefix := range [][2]byte{{0xde, 0xac}, {0x00, 0x00}, {0xad, 0xde}} {
		if _, ok := TryPrefix(keystream, prefix[0], prefix[1]); ok {
			t.Errorf("%x: wrong prefix accepted", prefix)
		}
	}
}

func TestAlgebraic(t *testing.T) {
	keystream := css.Keystream(deadbeef, 64)

	partial, stats, found, err := Algebraic(keystream, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !found {
		t.Fatalf("not found")
	}

	expected := Partial{Prefix: [2]byte{0xde, 0xad}, StateB: 0x33a4fd}
	if diff := cmp.Diff(expected, partial); diff != "" {
		t.Fatalf("partial (-want +got)\n%s", diff)
	}

	if stats.Candidates != 0xadde+1 {
		t.Fatalf("candidates: expected %d, got %d", 0xadde+1, stats.Candidates)
	}
}

func TestAlgebraicShort(t *testing.T) {
	keystream := css.Keystream(deadbeef, MinKeystream-1)

	_, _, found, err := Algebraic(keystream, nil)
	if !errors.Is(err, ErrShortKeystream) {
		t.Fatalf("expected %v, got %v", ErrShortKeystream, err)
	}

	if found {
		t.Fatalf("found with a short keystream")
	}
}

func TestAlgebraicBound(t *testing.T) {
	key := csscrack.Key{0xff, 0xff, 0x01, 0x02, 0x00}
	keystream := css.Keystream(key, 64)

	partial, stats, found, err := Algebraic(keystream, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if !found || partial.Prefix != [2]byte{0xff, 0xff} {
		t.Fatalf("inclusive bound: expected prefix ffff, got %v (found %v)", partial, found)
	}

	if stats.Candidates != 1<<16 {
		t.Fatalf("inclusive bound: expected %d candidates, got %d", 1<<16, stats.Candidates)
	}

	_, stats, found, err = Algebraic(keystream, DefaultConfig().WithLegacyBound(true))
	if err != nil {
		t.Fatal(err)
	}

	if found {
		t.Fatalf("legacy bound: prefix ffff should be out of range")
	}

	if stats.Candidates != 1<<16-1 {
		t.Fatalf("legacy bound: expected %d candidates, got %d", 1<<16-1, stats.Candidates)
	}
}

func TestResidual(t *testing.T) {
	table := map[string][3]byte{
		"zero":     {0x00, 0x00, 0x00},
		"deadbeef": {0xbe, 0x04, 0x00},
		"small":    {0x10, 0x20, 0x00},
		"top":      {0x81, 0xc3, 0x01},
	}

	for key, remainder := range table {
		stateB := css.PrimedB(remainder[0], remainder[1], remainder[2]).State()

		got, stats, found := Residual(stateB)
		if !found {
			t.Errorf("%v: not found", key)
			continue
		}

		if got != remainder {
			t.Errorf("%v: expected %x, got %x", key, remainder, got)
		}

		index := uint64(remainder[0]) | uint64(remainder[1])<<8 | uint64(remainder[2])<<16
		if stats.Candidates != index+1 {
			t.Errorf("%v: expected %d candidates, got %d", key, index+1, stats.Candidates)
		}
	}
}

func TestResidualNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("scans all 2^24 remainders")
	}

	// The all zero state only follows from the all zero state, which
	// lacks the fixed bit.
	if remainder, _, found := Residual(0); found {
		t.Fatalf("unexpected remainder %x", remainder)
	}
}

func TestRewind(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for n := 0; n < 1000; n++ {
		var remainder [3]byte
		rng.Read(remainder[:])

		stateB := css.PrimedB(remainder[0], remainder[1], remainder[2]).State()

		got, found := Rewind(stateB)
		if !found || got != remainder {
			t.Fatalf("%x: got %x (found %v)", remainder, got, found)
		}
	}

	if _, found := Rewind(0); found {
		t.Fatalf("rewound the zero state")
	}

	if _, found := Rewind(1 << css.WidthB); found {
		t.Fatalf("rewound a state wider than register B")
	}
}

// Residual returns the lowest matching remainder, so agreeing with the
// exact inverse shows no lower remainder collides.
func TestResidualUnique(t *testing.T) {
	if testing.Short() {
		t.Skip("scans up to 2^24 remainders per key")
	}

	rng := rand.New(rand.NewSource(2))

	for n := 0; n < 4; n++ {
		var remainder [3]byte
		rng.Read(remainder[:])

		stateB := css.PrimedB(remainder[0], remainder[1], remainder[2]).State()

		scanned, _, found := Residual(stateB)
		if !found {
			t.Fatalf("%x: not found", remainder)
		}

		rewound, _ := Rewind(stateB)
		if scanned != rewound || scanned != remainder {
			t.Fatalf("%x: scanned %x, rewound %x", remainder, scanned, rewound)
		}
	}
}

func TestRecover(t *testing.T) {
	table := map[string]struct {
		Key    csscrack.Key
		Rewind bool
	}{
		"deadbeef":        {deadbeef, false},
		"deadbeef-rewind": {deadbeef, true},
		"zero":            {csscrack.Key{}, false},
		"prefix-ffff":     {csscrack.Key{0xff, 0xff, 0x01, 0x02, 0x00}, false},
		"ones-rewind":     {csscrack.Key{0xff, 0xff, 0xff, 0xff, 0xff}, true},
		"mixed-rewind":    {csscrack.Key{0x12, 0x34, 0x56, 0x78, 0x9a}, true},
	}

	for name, item := range table {
		keystream := css.Keystream(item.Key, 64)

		result, found, err := Recover(keystream, DefaultConfig().WithRewind(item.Rewind))
		if err != nil {
			t.Errorf("%v: %v", name, err)
			continue
		}

		if !found {
			t.Errorf("%v: not found", name)
			continue
		}

		if result.Key != item.Key {
			t.Errorf("%v: expected %v, got %v", name, item.Key, result.Key)
		}

		if result.Algebraic.Candidates == 0 || result.Residual.Candidates == 0 {
			t.Errorf("%v: missing stats %+v", name, result)
		}
	}
}

func TestRecoverRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	count := 32
	if testing.Short() {
		count = 4
	}

	for n := 0; n < count; n++ {
		var key csscrack.Key
		rng.Read(key[:])

		keystream := css.Keystream(key, 64)

		result, found, err := Recover(keystream, DefaultConfig().WithRewind(true))
		if err != nil {
			t.Fatal(err)
		}

		if !found || result.Key != key {
			t.Fatalf("%v: got %v (found %v)", key, result.Key, found)
		}
	}
}

func TestRecoverScan(t *testing.T) {
	if testing.Short() {
		t.Skip("scans up to 2^24 remainders")
	}

	key := csscrack.Key{0x5a, 0xa5, 0x3c, 0xc3, 0x7e}
	keystream := css.Keystream(key, 256)

	result, found, err := Recover(keystream, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !found || result.Key != key {
		t.Fatalf("expected %v, got %v (found %v)", key, result.Key, found)
	}
}

func TestPartialKey(t *testing.T) {
	partial := Partial{Prefix: [2]byte{0xde, 0xad}}

	if key := partial.Key([3]byte{0xbe, 0x04, 0x00}); key != deadbeef {
		t.Fatalf("expected %v, got %v", deadbeef, key)
	}
}
