//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack/attack"
)

type InfoCommand struct {
	*pflag.FlagSet

	Bytes int
}

func NewInfoCommand() (info *InfoCommand) {
	flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)

	info = &InfoCommand{
		FlagSet: flagSet,
	}

	info.SetInterspersed(false)
	info.IntVarP(&info.Bytes, "bytes", "b", 16, "Keystream bytes to show")

	return
}

func (info *InfoCommand) Run() (err error) {
	format, err := openFormat(info.Args())
	if err != nil {
		return
	}

	capture, err := format.Capture()
	if err != nil {
		return
	}

	fmt.Printf("Keystream: %d bytes\n", len(capture.Keystream))

	if len(capture.Keystream) < attack.MinKeystream {
		fmt.Printf("Warning: the algebraic attack needs at least %d bytes\n", attack.MinKeystream)
	}

	if capture.Digest != nil {
		fmt.Printf("Key digest: %v\n", capture.Digest)
	}

	show := info.Bytes
	if show > len(capture.Keystream) {
		show = len(capture.Keystream)
	}
	if show > 0 {
		fmt.Print(hex.Dump(capture.Keystream[:show]))
	}

	return
}
