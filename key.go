//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package csscrack simulates the two-LFSR stream cipher of the DVD Content
// Scramble System and recovers its 40-bit keys from known keystream.
package csscrack

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	KeySize = 5

	// KeySpace is the number of distinct keys.
	KeySpace = uint64(1) << (8 * KeySize)
)

var ErrKeyLength = errors.New("key must be 5 bytes")

// Key is a cipher key. Bytes 0 and 1 seed the 17 bit register, bytes 2..4
// seed the 25 bit register.
type Key [KeySize]byte

// KeyFromIndex returns the key enumerated at index, least significant byte
// first.
func KeyFromIndex(index uint64) (key Key) {
	for n := range key {
		key[n] = byte(index >> (8 * n))
	}

	return
}

// Index is the inverse of KeyFromIndex.
func (key Key) Index() (index uint64) {
	for n := KeySize - 1; n >= 0; n-- {
		index = (index << 8) | uint64(key[n])
	}

	return
}

func (key Key) String() string {
	return strings.ToUpper(hex.EncodeToString(key[:]))
}

// ParseKey decodes ten hex digits, optionally separated by ':' or spaces.
func ParseKey(text string) (key Key, err error) {
	clean := strings.NewReplacer(":", "", " ", "", "0x", "", "0X", "").Replace(text)

	raw, err := hex.DecodeString(clean)
	if err != nil {
		err = fmt.Errorf("key %q: %w", text, err)
		return
	}

	if len(raw) != KeySize {
		err = fmt.Errorf("key %q: %w", text, ErrKeyLength)
		return
	}

	copy(key[:], raw)

	return
}

// RandomKey draws a key from crypto/rand.
func RandomKey() (key Key, err error) {
	_, err = rand.Read(key[:])

	return
}

// KeyDigest is a short fingerprint of a key, stored in captures so a
// recovered key can be checked without keeping the key itself.
type KeyDigest [8]byte

func (key Key) Digest() (digest KeyDigest) {
	sum := sha3.Sum256(key[:])
	copy(digest[:], sum[:])

	return
}

func (digest KeyDigest) String() string {
	return hex.EncodeToString(digest[:])
}
