//
// receiver.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Extension receiver: generates a random tall bit matrix T, plays
// the base-OT sender role to distribute two keys per column,
// encrypts T (and T XOR its selection vector) under those keys,
// transposes T, then unmasks the selected one of the sender's two
// final ciphertexts per row.

package ote

import (
	"github.com/markkurossi/ote/bitmatrix"
	"github.com/markkurossi/ote/ot"
	"github.com/markkurossi/ote/prg"
)

// Receiver runs the extension receiver's side of the protocol.
type Receiver struct {
	cfg Config
}

// NewReceiver creates an extension receiver with the given
// configuration.
func NewReceiver(cfg Config) *Receiver {
	return &Receiver{cfg: cfg}
}

// columns runs steps 1-6 of the receiver algorithm: sampling T,
// distributing keys via base OT, the column loop sending C0/C1, and
// the transpose of T. It returns T^T (128 x n, packed column-major,
// so row i is 16 contiguous bytes).
func (r *Receiver) columns(netIO ot.IO, pp PP, sel []bool, n int) (tt []byte, err error) {
	r.cfg.trace("random-matrix", n)

	key, err := randomKey(r.cfg.rand())
	if err != nil {
		return nil, err
	}
	auxSeed := prg.NewSeed(key)

	T := auxSeed.GenRandomBitMatrix(n, baseLen)
	K0 := auxSeed.GenBlocks(baseLen)
	K1 := auxSeed.GenBlocks(baseLen)

	r.cfg.trace("base-ot", baseLen)

	base := pp.Base.New()
	if err := base.InitSender(netIO); err != nil {
		return nil, err
	}

	wires := make([]ot.Wire, baseLen)
	for j := range wires {
		wires[j] = ot.Wire{L0: K0[j], L1: K1[j]}
	}
	if err := base.Send(wires); err != nil {
		return nil, err
	}

	sparse := make([]byte, n)
	for i, bit := range sel {
		if bit {
			sparse[i] = 1
		}
	}
	R := bitmatrix.FromSparseBits(sparse, n)

	r.cfg.trace("columns", baseLen)

	rowBytes := n / 8
	for j := 0; j < baseLen; j++ {
		col := T[j*rowBytes : (j+1)*rowBytes]
		m0 := bitmatrix.FromDenseBits(col, n)
		m1 := xorBlocks(m0, R)

		var seed0, seed1 prg.Seed
		seed0.SeedFrom(K0[j])
		c0 := xorBlocks(m0, seed0.GenBlocks(n/128))

		seed1.SeedFrom(K1[j])
		c1 := xorBlocks(m1, seed1.GenBlocks(n/128))

		if err := ot.SendBlocks(netIO, c0); err != nil {
			return nil, err
		}
		if err := ot.SendBlocks(netIO, c1); err != nil {
			return nil, err
		}
	}

	r.cfg.trace("transpose", n)
	return bitmatrix.Transpose(T, n, baseLen), nil
}

// trow loads row i of the transposed matrix T^T as a single Block.
func trow(tt []byte, i int) ot.Label {
	const rowBytes = baseLen / 8
	return bitmatrix.FromDenseBits(tt[i*rowBytes:(i+1)*rowBytes], baseLen)[0]
}

// Receive runs the standard extension protocol, recovering
// result[i] = m0[i] if sel[i] is false, else m1[i], from the paired
// sender's two messages per row.
func (r *Receiver) Receive(netIO ot.IO, pp PP, sel []bool, n int) ([]ot.Label, error) {
	if err := checkParameters(n, baseLen); err != nil {
		return nil, err
	}
	if len(sel) != n {
		return nil, configErrorf("selection vector must have length %d", n)
	}

	tt, err := r.columns(netIO, pp, sel, n)
	if err != nil {
		return nil, err
	}

	r.cfg.trace("final", n)
	outerC0, err := ot.ReceiveBlocks(netIO, n)
	if err != nil {
		return nil, err
	}
	outerC1, err := ot.ReceiveBlocks(netIO, n)
	if err != nil {
		return nil, err
	}

	result := make([]ot.Label, n)
	for i := 0; i < n; i++ {
		h := prg.HashBlocksToBlock([]ot.Label{trow(tt, i)})

		var c ot.Label
		if sel[i] {
			c = outerC1[i]
		} else {
			c = outerC0[i]
		}
		c.Xor(h)
		result[i] = c
	}

	return result, nil
}

// OnesidedReceive runs the one-sided extension variant, returning
// only the messages at positions where sel[i] is true, in ascending
// index order.
func (r *Receiver) OnesidedReceive(netIO ot.IO, pp PP, sel []bool, n int) ([]ot.Label, error) {
	if err := checkParameters(n, baseLen); err != nil {
		return nil, err
	}
	if len(sel) != n {
		return nil, configErrorf("selection vector must have length %d", n)
	}

	tt, err := r.columns(netIO, pp, sel, n)
	if err != nil {
		return nil, err
	}

	r.cfg.trace("final", n)
	var result []ot.Label
	for i := 0; i < n; i++ {
		c, err := ot.ReceiveBlock(netIO)
		if err != nil {
			return nil, err
		}
		if sel[i] {
			h := prg.HashBlocksToBlock([]ot.Label{trow(tt, i)})
			c.Xor(h)
			result = append(result, c)
		}
	}

	return result, nil
}
