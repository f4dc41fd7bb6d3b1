//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package kshex

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack"
)

const digestTag = "key-digest:"

type Formatter struct {
	*pflag.FlagSet

	Columns  int
	NoDigest bool
}

func NewFormatter(suffix string) (hf *Formatter) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	hf = &Formatter{
		FlagSet: flagSet,
	}

	hf.IntVarP(&hf.Columns, "columns", "c", 16, "Keystream bytes per line")
	hf.BoolVarP(&hf.NoDigest, "no-digest", "d", false, "Do not record the key digest")

	return
}

// Encode saves a capture as hex text
func (hf *Formatter) Encode(writer csscrack.Writer, capture *csscrack.Capture) (err error) {
	columns := hf.Columns
	if columns <= 0 {
		err = fmt.Errorf("--columns must be positive, got %d", columns)
		return
	}

	out := bufio.NewWriter(writer)

	fmt.Fprintf(out, "# CSS keystream, %d bytes\n", len(capture.Keystream))

	if capture.Digest != nil && !hf.NoDigest {
		fmt.Fprintf(out, "%s%v\n", digestTag, capture.Digest)
	}

	for base := 0; base < len(capture.Keystream); base += columns {
		end := base + columns
		if end > len(capture.Keystream) {
			end = len(capture.Keystream)
		}

		words := []string{}
		for _, k := range capture.Keystream[base:end] {
			words = append(words, fmt.Sprintf("%02x", k))
		}
		fmt.Fprintln(out, strings.Join(words, " "))
	}

	err = out.Flush()

	return
}

// Decode loads a hex text capture
func (hf *Formatter) Decode(file csscrack.Reader, filesize int64) (capture *csscrack.Capture, err error) {
	tokens, err := Tokens(file)
	if err != nil {
		return
	}

	capture = &csscrack.Capture{}

	for _, token := range tokens {
		if strings.HasPrefix(token, digestTag) {
			var raw []byte
			raw, err = hex.DecodeString(token[len(digestTag):])
			if err != nil || len(raw) != len(csscrack.KeyDigest{}) {
				err = fmt.Errorf("malformed %q", token)
				return
			}

			var digest csscrack.KeyDigest
			copy(digest[:], raw)
			capture.Digest = &digest
			continue
		}

		var raw []byte
		raw, err = hex.DecodeString(token)
		if err != nil {
			err = fmt.Errorf("keystream token %q: %w", token, err)
			return
		}

		capture.Keystream = append(capture.Keystream, raw...)
	}

	return
}
