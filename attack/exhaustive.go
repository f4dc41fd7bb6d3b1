//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package attack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/css"
)

const (
	// Progress steps for a whole exhaustive scan
	exhaustiveSteps = 256

	// Candidates between checks for cancellation
	cancelStride = 1 << 12
)

// Exhaustive tries keys in index order, up to config.Limit, and returns the
// first whose keystream matches. It is the 2^40 baseline, only practical
// with a small limit.
func Exhaustive(ctx context.Context, keystream []byte, config *Config) (key csscrack.Key, stats Stats, found bool, err error) {
	config = orDefault(config)

	err = checkExhaustive(keystream, config)
	if err != nil {
		return
	}

	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	prog := csscrack.NewProgress("exhaustive", exhaustiveSteps)
	defer prog.Close()

	shard := scanShard(ctx, keystream, 0, 1, config.Limit, prog)

	stats.Candidates = shard.candidates
	key, found, err = shard.key, shard.found, shard.err

	return
}

// ExhaustiveParallel splits the exhaustive scan by key index modulo
// config.Workers. Each worker stops at its first match and cancels the
// others; of the matches reported, the lowest index wins.
func ExhaustiveParallel(ctx context.Context, keystream []byte, config *Config) (key csscrack.Key, stats Stats, found bool, err error) {
	config = orDefault(config)

	err = checkExhaustive(keystream, config)
	if err != nil {
		return
	}

	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	prog := csscrack.NewProgress("exhaustive", exhaustiveSteps)
	defer prog.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := config.Workers
	results := make(chan shardResult, workers)

	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()

			shard := scanShard(ctx, keystream, uint64(first), uint64(workers), config.Limit, prog)
			if shard.found {
				cancel()
			}

			results <- shard
		}(n)
	}

	wg.Wait()
	close(results)

	var best uint64
	for shard := range results {
		stats.Candidates += shard.candidates

		if shard.found && (!found || shard.key.Index() < best) {
			key, best, found = shard.key, shard.key.Index(), true
		}

		if shard.err != nil && err == nil {
			err = shard.err
		}
	}

	// Our own cancellation is not an error
	if found {
		err = nil
	}

	return
}

func checkExhaustive(keystream []byte, config *Config) (err error) {
	if len(keystream) == 0 {
		err = fmt.Errorf("%w: exhaustive attack needs at least one byte", ErrShortKeystream)
		return
	}

	err = config.Validate()

	return
}

type shardResult struct {
	key        csscrack.Key
	found      bool
	candidates uint64
	err        error
}

// scanShard tries the key indices first, first+step, ... below limit.
// The stride is shared by all shards, so together they fill prog once.
func scanShard(ctx context.Context, keystream []byte, first, step, limit uint64, prog *csscrack.Progress) (shard shardResult) {
	stride := limit / exhaustiveSteps
	if stride == 0 {
		stride = 1
	}

	c := css.New(csscrack.Key{})

	for index := first; index < limit; index += step {
		if shard.candidates%cancelStride == 0 {
			select {
			case <-ctx.Done():
				shard.err = ctx.Err()
				return
			default:
			}
		}

		key := csscrack.KeyFromIndex(index)

		shard.candidates++

		c.Reset(key)
		if c.Matches(keystream) {
			shard.key = key
			shard.found = true
			return
		}

		if shard.candidates%stride == 0 {
			prog.Indicate()
		}
	}

	return
}
