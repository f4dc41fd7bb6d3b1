//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package attack recovers CSS keys from known keystream.
//
// The primary attack guesses the 16 bits of register A, solves the
// combining addition for the output of register B, and reads register B's
// state straight off that output. The key bytes that seed register B are
// then found by scanning (or rewinding) its key setup. An exhaustive scan of
// all 2^40 keys is kept as a baseline.
package attack

import (
	"errors"
	"fmt"
	"time"

	"github.com/ezrec/csscrack"
)

// Keystream needed by the algebraic stage: four bytes to solve for
// register B, and at least one more to check the guess.
const MinKeystream = 5

var ErrShortKeystream = errors.New("keystream too short")

// Stats describes one scan.
type Stats struct {
	Candidates uint64
	Elapsed    time.Duration
}

func (stats Stats) String() string {
	return fmt.Sprintf("%d candidates in %v", stats.Candidates, stats.Elapsed)
}

// Partial is the outcome of the algebraic stage: the first two key bytes,
// and the state of register B right after key setup.
type Partial struct {
	Prefix [2]byte
	StateB uint32
}

// Key joins the prefix with the three remaining key bytes.
func (partial Partial) Key(remainder [3]byte) (key csscrack.Key) {
	key[0], key[1] = partial.Prefix[0], partial.Prefix[1]
	copy(key[2:], remainder[:])

	return
}

func (partial Partial) String() string {
	return fmt.Sprintf("prefix %02X%02X, register B %#07x", partial.Prefix[0], partial.Prefix[1], partial.StateB)
}

// Result of a full recovery.
type Result struct {
	Key       csscrack.Key
	Partial   Partial
	Algebraic Stats
	Residual  Stats
}

// Recover finds the key that generated keystream. found is false if either
// stage exhausts its candidates.
func Recover(keystream []byte, config *Config) (result *Result, found bool, err error) {
	config = orDefault(config)

	result = &Result{}

	partial, stats, found, err := Algebraic(keystream, config)
	result.Algebraic = stats
	if err != nil || !found {
		return
	}

	result.Partial = partial

	var remainder [3]byte
	if config.Rewind {
		start := time.Now()
		remainder, found = Rewind(partial.StateB)
		result.Residual = Stats{Candidates: 1, Elapsed: time.Since(start)}
	} else {
		remainder, result.Residual, found = Residual(partial.StateB)
	}

	if !found {
		return
	}

	result.Key = partial.Key(remainder)

	return
}
