//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/attack"
)

type CrackCommand struct {
	*pflag.FlagSet

	LegacyBound bool
	Rewind      bool
}

func NewCrackCommand() (cmd *CrackCommand) {
	cmd = &CrackCommand{
		FlagSet: pflag.NewFlagSet("crack", pflag.ContinueOnError),
	}

	cmd.BoolVarP(&cmd.LegacyBound, "legacy-bound", "l", false, "Skip prefix 0xffff, as the reference tool did")
	cmd.BoolVarP(&cmd.Rewind, "rewind", "r", false, "Rewind register B instead of scanning its key bytes")

	cmd.SetInterspersed(false)

	return
}

func (cmd *CrackCommand) Run() (err error) {
	format, err := openFormat(cmd.Args())
	if err != nil {
		return
	}

	capture, err := format.Capture()
	if err != nil {
		return
	}

	config := attack.DefaultConfig().
		WithLegacyBound(cmd.LegacyBound).
		WithRewind(cmd.Rewind)

	result, found, err := attack.Recover(capture.Keystream, config)
	if err != nil {
		return
	}

	fmt.Printf("Algebraic: %v\n", result.Algebraic)
	if result.Partial != (attack.Partial{}) {
		fmt.Printf("Partial: %v\n", result.Partial)
	}
	if result.Residual.Candidates > 0 {
		fmt.Printf("Residual: %v\n", result.Residual)
	}

	if !found {
		fmt.Println("Key: not found")
		return
	}

	fmt.Printf("Key: %v\n", result.Key)
	reportVerify(capture, result.Key)

	return
}

func reportVerify(capture *csscrack.Capture, key csscrack.Key) {
	match, known := capture.Verify(key)
	switch {
	case !known:
		return
	case match:
		fmt.Println("Digest: match")
	default:
		fmt.Println("Digest: MISMATCH (equivalent key?)")
	}
}
