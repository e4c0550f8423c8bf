//
// helpers.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ote

import (
	"io"

	"github.com/markkurossi/ote/ot"
)

// xorBlocks returns the elementwise XOR of two equal-length Block
// vectors.
func xorBlocks(a, b []ot.Label) []ot.Label {
	out := make([]ot.Label, len(a))
	for i := range a {
		out[i] = a[i]
		out[i].Xor(b[i])
	}
	return out
}

// randomKey reads 32 bytes of auxiliary key material from r, used
// to seed the global PRG stream that is distinct from the
// per-column pad seeds.
func randomKey(r io.Reader) ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
