//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
)

// Meter draws scan progress as a percentage on one line.
type Meter struct {
	writer io.Writer
	stage  string
	last   int
}

func NewMeter(writer io.Writer) (meter *Meter) {
	meter = &Meter{
		writer: writer,
		last:   -1,
	}

	return
}

func (meter *Meter) Start(stage string) {
	meter.stage = stage
	meter.last = -1
}

func (meter *Meter) Show(percent float32) {
	// Redraw only on whole percent changes
	whole := int(percent)
	if whole == meter.last {
		return
	}
	meter.last = whole

	fmt.Fprintf(meter.writer, "\r%s: %3d%%", meter.stage, whole)
}

func (meter *Meter) Stop() {
	fmt.Fprintln(meter.writer)
	meter.last = -1
}
