//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package kshex handles keystream captures written as hex text
package kshex

import (
	"github.com/ezrec/csscrack"
)

func init() {
	newFormatter := func(suffix string) (format csscrack.Formatter) { return NewFormatter(suffix) }

	csscrack.RegisterFormatter(".hex", newFormatter)
}
