//
// sender.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Extension sender: plays the base-OT receiver role to obtain one
// key per column, decrypts the receiver's column ciphertexts into
// the shared matrix Q, transposes it, and masks its two messages
// per row with a correlation-robust hash of the corresponding Q
// row.

package ote

import (
	"github.com/markkurossi/ote/bitmatrix"
	"github.com/markkurossi/ote/ot"
	"github.com/markkurossi/ote/prg"
)

// Sender runs the extension sender's side of the protocol.
type Sender struct {
	cfg Config
}

// NewSender creates an extension sender with the given
// configuration.
func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// columns runs steps 1-4 of the sender algorithm: base OT, the
// column loop reconstructing Q, and its transpose. It returns the
// transposed matrix Q^T (128 x n, packed column-major, so row i is
// 16 contiguous bytes) and the dense selection Block S.
func (s *Sender) columns(netIO ot.IO, pp PP, n int) (qt []byte, sBlock ot.Label, err error) {
	s.cfg.trace("base-ot", baseLen)

	key, err := randomKey(s.cfg.rand())
	if err != nil {
		return nil, ot.Label{}, err
	}
	auxSeed := prg.NewSeed(key)
	sBits := auxSeed.GenRandomBits(baseLen)

	sBools := make([]bool, baseLen)
	for j, b := range sBits {
		sBools[j] = b != 0
	}

	base := pp.Base.New()
	if err := base.InitReceiver(netIO); err != nil {
		return nil, ot.Label{}, err
	}

	keys := make([]ot.Label, baseLen)
	if err := base.Receive(sBools, keys); err != nil {
		return nil, ot.Label{}, err
	}

	s.cfg.trace("columns", baseLen)

	rowBlocks := n / baseLen
	Q := make([]byte, baseLen*(n/8))

	var colSeed prg.Seed
	for j := 0; j < baseLen; j++ {
		c0, err := ot.ReceiveBlocks(netIO, rowBlocks)
		if err != nil {
			return nil, ot.Label{}, err
		}
		c1, err := ot.ReceiveBlocks(netIO, rowBlocks)
		if err != nil {
			return nil, ot.Label{}, err
		}

		colSeed.SeedFrom(keys[j])
		pad := colSeed.GenBlocks(rowBlocks)

		var p []ot.Label
		if sBits[j] == 0 {
			p = xorBlocks(c0, pad)
		} else {
			p = xorBlocks(c1, pad)
		}

		copy(Q[j*(n/8):(j+1)*(n/8)], bitmatrix.ToDenseBits(p, n))
	}

	s.cfg.trace("transpose", n)
	qt = bitmatrix.Transpose(Q, n, baseLen)

	sBlock = bitmatrix.FromSparseBits(sBits, baseLen)[0]
	return qt, sBlock, nil
}

// qrow loads row i of the transposed matrix Q^T as a single Block.
func qrow(qt []byte, i int) ot.Label {
	const rowBytes = baseLen / 8
	return bitmatrix.FromDenseBits(qt[i*rowBytes:(i+1)*rowBytes], baseLen)[0]
}

// Send runs the standard extension protocol: the sender offers two
// messages per row, m0[i] and m1[i], and the paired receiver
// recovers m0[i] or m1[i] according to its selection bit r_i,
// without the sender learning r.
func (s *Sender) Send(netIO ot.IO, pp PP, m0, m1 []ot.Label, n int) error {
	if err := checkParameters(n, baseLen); err != nil {
		return err
	}
	if len(m0) != n || len(m1) != n {
		return configErrorf("message vectors must have length %d", n)
	}

	qt, S, err := s.columns(netIO, pp, n)
	if err != nil {
		return err
	}

	outerC0 := make([]ot.Label, n)
	outerC1 := make([]ot.Label, n)

	for i := 0; i < n; i++ {
		row := qrow(qt, i)

		h0 := prg.HashBlocksToBlock([]ot.Label{row})
		rowS := row
		rowS.Xor(S)
		h1 := prg.HashBlocksToBlock([]ot.Label{rowS})

		c0 := m0[i]
		c0.Xor(h0)
		c1 := m1[i]
		c1.Xor(h1)

		outerC0[i] = c0
		outerC1[i] = c1
	}

	s.cfg.trace("final", n)
	if err := ot.SendBlocks(netIO, outerC0); err != nil {
		return err
	}
	return ot.SendBlocks(netIO, outerC1)
}

// OnesidedSend runs the one-sided extension variant: the sender
// offers a single message per row, sent row-by-row. A receiver only
// recovers m[i] where its selection bit is 1; all other rows stay
// hidden.
func (s *Sender) OnesidedSend(netIO ot.IO, pp PP, m []ot.Label, n int) error {
	if err := checkParameters(n, baseLen); err != nil {
		return err
	}
	if len(m) != n {
		return configErrorf("message vector must have length %d", n)
	}

	qt, S, err := s.columns(netIO, pp, n)
	if err != nil {
		return err
	}

	s.cfg.trace("final", n)
	for i := 0; i < n; i++ {
		row := qrow(qt, i)
		row.Xor(S)
		h := prg.HashBlocksToBlock([]ot.Label{row})

		c := m[i]
		c.Xor(h)
		if err := ot.SendBlock(netIO, c); err != nil {
			return err
		}
	}
	return nil
}
