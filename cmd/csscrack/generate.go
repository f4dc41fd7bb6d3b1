//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack"
	"github.com/ezrec/csscrack/css"
)

const (
	defaultKeystreamLength = 1024
)

type GenerateCommand struct {
	*pflag.FlagSet

	Key    string
	Length int
}

func NewGenerateCommand() (cmd *GenerateCommand) {
	cmd = &GenerateCommand{
		FlagSet: pflag.NewFlagSet("generate", pflag.ContinueOnError),
	}

	cmd.StringVarP(&cmd.Key, "key", "k", "", "Key as 10 hex digits (random if not set)")
	cmd.IntVarP(&cmd.Length, "length", "n", defaultKeystreamLength, "Keystream bytes to capture")

	cmd.SetInterspersed(false)

	return
}

func (cmd *GenerateCommand) Run() (err error) {
	if cmd.Length < 1 {
		err = fmt.Errorf("--length must be positive, got %d", cmd.Length)
		return
	}

	format, err := openFormat(cmd.Args())
	if err != nil {
		return
	}

	var key csscrack.Key
	if len(cmd.Key) == 0 {
		key, err = csscrack.RandomKey()
	} else {
		key, err = csscrack.ParseKey(cmd.Key)
	}
	if err != nil {
		return
	}

	capture := csscrack.NewCapture(css.Keystream(key, cmd.Length), &key)

	err = format.SetCapture(capture)
	if err != nil {
		return
	}

	fmt.Printf("Key: %v\n", key)
	fmt.Printf("Keystream: %d bytes to %s\n", cmd.Length, format.Filename)

	return
}
