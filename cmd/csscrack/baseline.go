//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack/attack"
)

type BaselineCommand struct {
	*pflag.FlagSet

	Workers    int
	Limit      uint64
	Sequential bool
}

func NewBaselineCommand() (cmd *BaselineCommand) {
	cmd = &BaselineCommand{
		FlagSet: pflag.NewFlagSet("baseline", pflag.ContinueOnError),
	}

	defaults := attack.DefaultConfig()

	cmd.IntVarP(&cmd.Workers, "workers", "w", defaults.Workers, "Worker goroutines")
	cmd.Uint64VarP(&cmd.Limit, "limit", "l", defaults.Limit, "Keys to try, in index order")
	cmd.BoolVarP(&cmd.Sequential, "sequential", "s", false, "Scan in a single goroutine")

	cmd.SetInterspersed(false)

	return
}

func (cmd *BaselineCommand) Run() (err error) {
	format, err := openFormat(cmd.Args())
	if err != nil {
		return
	}

	capture, err := format.Capture()
	if err != nil {
		return
	}

	config := attack.DefaultConfig().
		WithWorkers(cmd.Workers).
		WithLimit(cmd.Limit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scan := attack.ExhaustiveParallel
	if cmd.Sequential {
		scan = attack.Exhaustive
	}

	key, stats, found, err := scan(ctx, capture.Keystream, config)
	fmt.Printf("Exhaustive: %v\n", stats)
	if err != nil {
		return
	}

	if !found {
		fmt.Println("Key: not found")
		return
	}

	fmt.Printf("Key: %v\n", key)
	reportVerify(capture, key)

	return
}
