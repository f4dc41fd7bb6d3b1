//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package attack

import (
	"fmt"
	"runtime"

	"github.com/ezrec/csscrack"
)

// Config tunes the attacks.
type Config struct {
	// LegacyBound stops the prefix scan one short of 0xffff, as the
	// reference tool did.
	LegacyBound bool

	// Rewind recovers the last three key bytes by running register B
	// backwards instead of scanning all 2^24 of them.
	Rewind bool

	// Exhaustive search parameters
	Workers int    // Goroutines for ExhaustiveParallel
	Limit   uint64 // Keys to try, in index order
}

// DefaultConfig scans everything, with one worker per CPU
func DefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Limit:   csscrack.KeySpace,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	if c.Limit == 0 || c.Limit > csscrack.KeySpace {
		return fmt.Errorf("limit must be between 1 and %d, got %d", csscrack.KeySpace, c.Limit)
	}

	return nil
}

// WithLegacyBound sets the legacy prefix bound
func (c *Config) WithLegacyBound(legacy bool) *Config {
	c.LegacyBound = legacy
	return c
}

// WithRewind selects rewinding over scanning for the residual stage
func (c *Config) WithRewind(rewind bool) *Config {
	c.Rewind = rewind
	return c
}

// WithWorkers sets the exhaustive search worker count
func (c *Config) WithWorkers(workers int) *Config {
	c.Workers = workers
	return c
}

// WithLimit sets the number of keys the exhaustive search tries
func (c *Config) WithLimit(limit uint64) *Config {
	c.Limit = limit
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}

// prefixes is the number of register A candidates scanned
func (c *Config) prefixes() (count int) {
	count = 1 << 16
	if c.LegacyBound {
		count--
	}

	return
}

func orDefault(config *Config) *Config {
	if config == nil {
		return DefaultConfig()
	}

	return config
}
