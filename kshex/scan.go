//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package kshex

import (
	"bufio"
	"io"
)

// ScanTokens splits text into whitespace separated tokens, dropping '#'
// comments through the end of the line.
func ScanTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	isSpace := func(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

	skip := 0
	for skip < len(data) {
		c := data[skip]
		if isSpace(c) {
			skip++
			continue
		}

		if c != '#' {
			break
		}

		// Comment runs to end of line
		end := skip
		for ; end < len(data) && data[end] != '\n'; end++ {
		}

		if end == len(data) && !atEOF {
			// Need the rest of the comment
			advance = skip
			return
		}

		skip = end
	}

	data = data[skip:]
	if len(data) == 0 {
		advance = skip
		return
	}

	for here, c := range data {
		if isSpace(c) || c == '#' {
			advance = skip + here
			token = data[:here]
			return
		}
	}

	if atEOF {
		advance = skip + len(data)
		token = data
		return
	}

	// Request more data
	advance = skip

	return
}

// Tokens collects every token from reader.
func Tokens(reader io.Reader) (out []string, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(ScanTokens)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}

	err = scanner.Err()

	return
}
