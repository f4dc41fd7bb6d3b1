//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package ksc handles binary keystream capture files
package ksc

import (
	"github.com/ezrec/csscrack"
)

func init() {
	newFormatter := func(suffix string) (format csscrack.Formatter) { return NewFormatter(suffix) }

	csscrack.RegisterFormatter(".ksc", newFormatter)
}
