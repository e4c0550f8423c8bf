//
// prg.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// PRG/hash adapter for the IKNP OT extension: a ChaCha20-keyed
// pseudorandom generator reseeded from 128-bit keys, and a
// fixed-key-AES correlation-robust hash.
//
// The PRG construction mirrors vole.prgChaCha20 (zero nonce, key
// derived deterministically from the seed material). The hash's
// fixed AES key is the Kunlun reference implementation's public
// fix_key constant, reused verbatim so both sides (and a reader
// familiar with the original) agree on H byte-for-byte.

package prg

import (
	"crypto/aes"

	"golang.org/x/crypto/chacha20"

	"github.com/markkurossi/ote/ot"
)

// fixedKey is the public, fixed AES key underlying the
// correlation-robust hash.
var fixedKey = [16]byte{
	0x61, 0x7e, 0x8d, 0xa2, 0xa0, 0x51, 0x1e, 0x96,
	0x5e, 0x41, 0xc2, 0x9b, 0x15, 0x3f, 0xc7, 0x7a,
}

// Seed is a deterministic Block-stream generator. Each call to
// SeedFrom begins a brand new ChaCha20 stream; a Seed never
// continues a prior stream across reseeds.
type Seed struct {
	cipher *chacha20.Cipher
}

// NewSeed creates a seed from fresh key material, used to derive
// the global auxiliary seed (base-OT selection bits, random matrix
// T). It is independent of the per-column Seeds derived with
// SeedFrom.
func NewSeed(keyBytes []byte) Seed {
	var s Seed
	s.reseed(keyBytes)
	return s
}

// SeedFrom reseeds s to a fresh stream keyed by a 128-bit Block.
// Both parties must reseed identically: fresh stream per reseed,
// never a continuation.
func (s *Seed) SeedFrom(key ot.Label) {
	var data ot.LabelData
	key.Bytes(&data)
	s.reseed(data[:])
}

func (s *Seed) reseed(keyBytes []byte) {
	chachaKey := make([]byte, chacha20.KeySize)
	for i := range chachaKey {
		chachaKey[i] = keyBytes[i%len(keyBytes)]
	}
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(chachaKey, nonce)
	if err != nil {
		panic(err)
	}
	s.cipher = c
}

// GenBlocks returns the next n Blocks of the stream.
func (s *Seed) GenBlocks(n int) []ot.Label {
	buf := make([]byte, n*16)
	s.cipher.XORKeyStream(buf, buf)

	result := make([]ot.Label, n)
	for i := range result {
		result[i].SetBytes(buf[i*16 : (i+1)*16])
	}
	return result
}

// GenRandomBits returns n pseudorandom sparse bits: one byte per
// bit, value 0 or 1.
func (s *Seed) GenRandomBits(n int) []byte {
	buf := make([]byte, (n+7)/8)
	s.cipher.XORKeyStream(buf, buf)

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = (buf[i/8] >> uint(i%8)) & 1
	}
	return out
}

// GenRandomBitMatrix returns a uniformly random rows x cols packed
// column-major bit matrix.
func (s *Seed) GenRandomBitMatrix(rows, cols int) []byte {
	buf := make([]byte, cols*(rows/8))
	s.cipher.XORKeyStream(buf, buf)
	return buf
}

// HashBlocksToBlock compresses a Block vector to a single Block
// with a correlation-robust hash. The vector is folded with XOR and
// passed through a fixed-key AES permutation combined with its own
// input, H(x) = AES_fixedkey(x) XOR x; this degenerates correctly
// to the one-block case exercised by the extension (BASE_LEN/128 ==
// 1).
func HashBlocksToBlock(blocks []ot.Label) ot.Label {
	var acc ot.Label
	for _, b := range blocks {
		acc.Xor(b)
	}
	return hashBlock(acc)
}

func hashBlock(x ot.Label) ot.Label {
	var in, out ot.LabelData
	x.Bytes(&in)

	block, err := aes.NewCipher(fixedKey[:])
	if err != nil {
		panic(err)
	}
	block.Encrypt(out[:], in[:])

	var result ot.Label
	result.SetBytes(out[:])
	result.Xor(x)
	return result
}
