//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package csscrack

import (
	"bytes"
)

// Capture is a recorded keystream prefix, as handed to the attacks.
type Capture struct {
	Keystream []byte
	Digest    *KeyDigest // Optional fingerprint of the generating key
}

// NewCapture records a keystream, along with the fingerprint of key if
// it is known.
func NewCapture(keystream []byte, key *Key) (capture *Capture) {
	capture = &Capture{
		Keystream: keystream,
	}

	if key != nil {
		digest := key.Digest()
		capture.Digest = &digest
	}

	return
}

// Verify reports whether key matches the capture's fingerprint. Captures
// without a fingerprint cannot be verified.
func (capture *Capture) Verify(key Key) (match bool, known bool) {
	if capture.Digest == nil {
		return
	}

	known = true
	digest := key.Digest()
	match = bytes.Equal(digest[:], capture.Digest[:])

	return
}
