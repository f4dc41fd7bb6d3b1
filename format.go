//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package csscrack

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reader is what a capture decoder reads from
type Reader interface {
	io.Reader
	io.ReaderAt
}

// Writer
type Writer interface {
	io.Writer
}

// Capture file format
type Formatter interface {
	Parse(args []string) (err error)
	Parsed() bool
	Args() (args []string)
	NArg() int
	PrintDefaults()

	Decode(reader Reader, size int64) (capture *Capture, err error)
	Encode(writer Writer, capture *Capture) (err error)
}

// Capture file format, by suffix
type NewFormatter func(suffix string) (formatter Formatter)

var formatterMap map[string]NewFormatter

func RegisterFormatter(suffix string, newFormatter NewFormatter) {
	if formatterMap == nil {
		formatterMap = make(map[string]NewFormatter)
	}

	formatterMap[suffix] = newFormatter
}

// FormatterSuffixes lists the registered suffixes, sorted.
func FormatterSuffixes() (list []string) {
	for suffix := range formatterMap {
		list = append(list, suffix)
	}
	sort.Strings(list)

	return
}

func FormatterUsage() {
	for _, suffix := range FormatterSuffixes() {
		newFormatter := formatterMap[suffix]
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Options for '%s':\n", suffix)
		fmt.Fprintln(os.Stderr)
		newFormatter(suffix).PrintDefaults()
	}
}

type Format struct {
	Formatter
	Suffix   string
	Filename string
}

func NewFormat(filename string, args []string) (format *Format, err error) {
	var formatter Formatter
	var suffix string

	// Longest suffix wins, so the choice does not depend on map order
	for _, candidate := range FormatterSuffixes() {
		if strings.HasSuffix(filename, candidate) && len(candidate) > len(suffix) {
			suffix = candidate
		}
	}

	if len(suffix) > 0 {
		formatter = formatterMap[suffix](suffix)
	}

	if formatter == nil {
		err = fmt.Errorf("%s: File extension unknown", filename)
		return
	}

	err = formatter.Parse(args)
	if err != nil {
		return
	}

	format = &Format{
		Formatter: formatter,
		Suffix:    suffix,
		Filename:  filename,
	}
	return
}

// Capture reads the capture file
func (format *Format) Capture() (capture *Capture, err error) {
	reader, err := os.Open(format.Filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	filesize, err := reader.Seek(0, io.SeekEnd)
	if err != nil {
		return
	}

	_, err = reader.Seek(0, io.SeekStart)
	if err != nil {
		return
	}

	capture, err = format.Decode(reader, filesize)
	if err != nil {
		err = fmt.Errorf("%s: %w", format.Filename, err)
		return
	}

	return
}

// SetCapture writes a capture to the file
func (format *Format) SetCapture(capture *Capture) (err error) {
	writer, err := os.Create(format.Filename)
	if err != nil {
		return
	}
	defer func() { writer.Close() }()

	err = format.Encode(writer, capture)
	if err != nil {
		return
	}

	return
}
