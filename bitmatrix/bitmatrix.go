//
// bitmatrix.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Bit-matrix primitives for the IKNP OT extension: conversion
// between Block vectors and packed column-major bit matrices, and a
// transpose of a packed bit matrix.
//
// Derived from the bit-matrix operations of the Kunlun IKNP OTE
// implementation (Block::ToDenseBits, Block::FromSparseBits,
// Block::FromDenseBits, empBitMatrixTranspose).

package bitmatrix

import (
	"fmt"

	"github.com/markkurossi/ote/ot"
)

// blockSize is the number of bytes in one Block.
const blockSize = 16

// errNotMultipleOf8 signals that a dimension is not a multiple of 8,
// the minimum granularity the packed bit-matrix representation
// supports.
var errNotMultipleOf8 = fmt.Errorf("bitmatrix: dimension must be a multiple of 8")

// ToDenseBits packs a Block vector into its column-major dense byte
// form. The input holds rowCount/128 Blocks; the output is
// rowCount/8 bytes, byte r/8 bit r%8 holding bit r of the bit
// sequence formed by concatenating the Blocks in order.
func ToDenseBits(blocks []ot.Label, rowCount int) []byte {
	if rowCount%8 != 0 {
		panic(errNotMultipleOf8)
	}
	out := make([]byte, rowCount/8)
	var buf ot.LabelData
	for i, b := range blocks {
		b.Bytes(&buf)
		copy(out[i*blockSize:], buf[:])
	}
	return out
}

// FromDenseBits reinterprets a packed dense byte array (one bit per
// bit, 8 bits per byte) as a Block vector. bitCount must be a
// multiple of 128; dense must hold bitCount/8 bytes.
func FromDenseBits(dense []byte, bitCount int) []ot.Label {
	if bitCount%128 != 0 {
		panic(fmt.Errorf("bitmatrix: bit count %d not a multiple of 128", bitCount))
	}
	n := bitCount / 128
	result := make([]ot.Label, n)
	for i := range result {
		result[i].SetBytes(dense[i*blockSize : (i+1)*blockSize])
	}
	return result
}

// FromSparseBits packs a sparse-bit byte array (one byte per bit,
// value 0 or 1) into a Block vector. bitCount must be a multiple of
// 128; bits must hold bitCount entries.
func FromSparseBits(bits []byte, bitCount int) []ot.Label {
	if bitCount%128 != 0 {
		panic(fmt.Errorf("bitmatrix: bit count %d not a multiple of 128", bitCount))
	}
	dense := packSparseBits(bits, bitCount)
	return FromDenseBits(dense, bitCount)
}

// packSparseBits packs a sparse-bit byte array into a dense packed
// byte array, bit r living at byte r/8, bit position r%8 (LSB
// first).
func packSparseBits(bits []byte, bitCount int) []byte {
	if bitCount%8 != 0 {
		panic(errNotMultipleOf8)
	}
	dense := make([]byte, bitCount/8)
	for i := 0; i < bitCount; i++ {
		if bits[i] != 0 {
			dense[i/8] |= 1 << uint(i%8)
		}
	}
	return dense
}

// Transpose transposes a rows x cols packed column-major bit matrix
// into a cols x rows packed column-major bit matrix. Both rows and
// cols must be multiples of 8.
//
// Source element (r, c) lives at src[c*(rows/8)+r/8], bit r%8.
// Destination element (c, r) lives at dst[r*(cols/8)+c/8], bit c%8.
func Transpose(src []byte, rows, cols int) []byte {
	if rows%8 != 0 || cols%8 != 0 {
		panic(errNotMultipleOf8)
	}
	rowBytes := rows / 8
	colBytes := cols / 8

	dst := make([]byte, colBytes*rows)

	var tile [8]byte
	for c0 := 0; c0 < cols; c0 += 8 {
		for rb := 0; rb < rowBytes; rb++ {
			for k := 0; k < 8; k++ {
				tile[k] = src[(c0+k)*rowBytes+rb]
			}
			tile = transpose8(tile)
			for j := 0; j < 8; j++ {
				dst[(rb*8+j)*colBytes+c0/8] = tile[j]
			}
		}
	}
	return dst
}

// transpose8 transposes an 8x8 bit matrix packed into 8 bytes: byte
// i, bit j holds element (i, j). The result's byte j, bit i holds
// element (i, j) as well, i.e. it is the transpose.
func transpose8(x [8]byte) [8]byte {
	var y [8]byte
	for i := 0; i < 8; i++ {
		row := x[i]
		if row == 0 {
			continue
		}
		for j := 0; j < 8; j++ {
			if row&(1<<uint(j)) != 0 {
				y[j] |= 1 << uint(i)
			}
		}
	}
	return y
}
