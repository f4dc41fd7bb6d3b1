//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack"
	_ "github.com/ezrec/csscrack/ksc"
	_ "github.com/ezrec/csscrack/kshex"
)

var param struct {
	quiet bool
}

func init() {
	pflag.BoolVarP(&param.quiet, "quiet", "q", false, "Do not show progress")
}

type Command interface {
	Parse(args []string) (err error)
	Args() (args []string)
	PrintDefaults()

	Run() (err error)
}

type commandInfo struct {
	NewCommand  func() (cmd Command)
	Description string
}

var commandMap = map[string]commandInfo{
	"generate": {func() Command { return NewGenerateCommand() }, "Write the keystream of a key to a capture file"},
	"crack":    {func() Command { return NewCrackCommand() }, "Recover the key of a capture with the algebraic attack"},
	"baseline": {func() Command { return NewBaselineCommand() }, "Recover the key of a capture by trying every key"},
	"info":     {func() Command { return NewInfoCommand() }, "Describe a capture file"},
}

func Usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  csscrack [options] command [command options] file [format options]")
	fmt.Fprintln(os.Stderr)
	pflag.PrintDefaults()

	keys := []string{}
	for key := range commandMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item := commandMap[key]
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "  %s: %s\n", key, item.Description)
		fmt.Fprintln(os.Stderr)
		item.NewCommand().PrintDefaults()
	}

	csscrack.FormatterUsage()
}

// openFormat binds the file named by args[0] to its capture format, which
// parses the rest of args.
func openFormat(args []string) (format *csscrack.Format, err error) {
	if len(args) == 0 {
		err = fmt.Errorf("capture file required")
		return
	}

	format, err = csscrack.NewFormat(args[0], args[1:])
	if err != nil {
		return
	}

	if format.NArg() != 0 {
		err = fmt.Errorf("%s: unexpected arguments %v", args[0], format.Args())
		return
	}

	return
}

func evaluate(args []string) (err error) {
	if len(args) == 0 {
		err = fmt.Errorf("command required")
		return
	}

	item, found := commandMap[args[0]]
	if !found {
		err = fmt.Errorf("%s: unknown command", args[0])
		return
	}

	cmd := item.NewCommand()
	err = cmd.Parse(args[1:])
	if err != nil {
		return
	}

	err = cmd.Run()

	return
}

func main() {
	pflag.Usage = Usage
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if !param.quiet {
		csscrack.SetProgress(NewMeter(os.Stderr))
	}

	err := evaluate(pflag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		pflag.Usage()
		os.Exit(1)
	}
}
