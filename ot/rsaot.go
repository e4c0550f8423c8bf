//
// rsaot.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"crypto/rsa"
	"fmt"
	"math/big"
)

var (
	_ OT = &RSAOT{}
)

// RSAOT implements the OT interface with Bellare-Micali blinded-RSA
// 1-out-of-2 transfer, run once per wire. It is a drop-in alternative
// base-OT backend to CO; slower per transfer, but exercises a
// different public-key assumption.
type RSAOT struct {
	keyBits int
	io      IO
	sender  *RSASender
	pub     *RSAReceiver
}

// NewRSAOT creates a new RSAOT with RSA keys of the given bit size.
func NewRSAOT(keyBits int) *RSAOT {
	return &RSAOT{
		keyBits: keyBits,
	}
}

// InitSender implements OT.InitSender.
func (r *RSAOT) InitSender(io IO) error {
	r.io = io
	return nil
}

// InitReceiver implements OT.InitReceiver.
func (r *RSAOT) InitReceiver(io IO) error {
	r.io = io
	return nil
}

// Send sends the wire labels with blinded-RSA OT.
func (r *RSAOT) Send(wires []Wire) error {
	inputs := make(RSAInputs, len(wires))
	for i, w := range wires {
		var b0, b1 LabelData
		inputs[i] = RSAMessagePair{
			Label0: append([]byte(nil), w.L0.Bytes(&b0)...),
			Label1: append([]byte(nil), w.L1.Bytes(&b1)...),
		}
	}
	sender, err := NewRSASender(r.keyBits, inputs)
	if err != nil {
		return err
	}
	r.sender = sender

	pub := sender.PublicKey()
	if err := r.io.SendData(pub.N.Bytes()); err != nil {
		return err
	}
	if err := r.io.SendUint32(pub.E); err != nil {
		return err
	}
	if err := r.io.Flush(); err != nil {
		return err
	}

	for i := range wires {
		xfer, err := sender.NewTransfer(i)
		if err != nil {
			return err
		}
		x0, x1 := xfer.RandomMessages()
		if err := r.io.SendData(x0); err != nil {
			return err
		}
		if err := r.io.SendData(x1); err != nil {
			return err
		}
		if err := r.io.Flush(); err != nil {
			return err
		}

		v, err := r.io.ReceiveData()
		if err != nil {
			return err
		}
		xfer.ReceiveV(v)

		m0p, m1p, err := xfer.Messages()
		if err != nil {
			return err
		}
		if err := r.io.SendData(m0p); err != nil {
			return err
		}
		if err := r.io.SendData(m1p); err != nil {
			return err
		}
		if err := r.io.Flush(); err != nil {
			return err
		}
	}

	return nil
}

// Receive receives the wire labels with blinded-RSA OT based on the
// flag values.
func (r *RSAOT) Receive(flags []bool, result []Label) error {
	nBytes, err := r.io.ReceiveData()
	if err != nil {
		return err
	}
	// Parse N before the next receive can reuse the buffer nBytes
	// points into.
	n := new(big.Int).SetBytes(nBytes)
	e, err := r.io.ReceiveUint32()
	if err != nil {
		return err
	}
	pub := &rsa.PublicKey{N: n, E: e}
	receiver, err := NewRSAReceiver(pub)
	if err != nil {
		return err
	}
	r.pub = receiver

	for i, bit := range flags {
		var b int
		if bit {
			b = 1
		}
		xfer, err := receiver.NewTransfer(b)
		if err != nil {
			return err
		}

		x0, err := r.io.ReceiveData()
		if err != nil {
			return err
		}
		// The next ReceiveData may reuse the buffer x0 points into.
		x0 = append([]byte(nil), x0...)
		x1, err := r.io.ReceiveData()
		if err != nil {
			return err
		}
		if err := xfer.ReceiveRandomMessages(x0, x1); err != nil {
			return err
		}

		if err := r.io.SendData(xfer.V()); err != nil {
			return err
		}
		if err := r.io.Flush(); err != nil {
			return err
		}

		m0p, err := r.io.ReceiveData()
		if err != nil {
			return err
		}
		m0p = append([]byte(nil), m0p...)
		m1p, err := r.io.ReceiveData()
		if err != nil {
			return err
		}
		if err := xfer.ReceiveMessages(m0p, m1p, nil); err != nil {
			return err
		}

		m, _ := xfer.Message()
		if len(m) != len(LabelData{}) {
			return fmt.Errorf("ot: invalid RSA OT message length %d", len(m))
		}
		var data LabelData
		copy(data[:], m)
		result[i].SetData(&data)
	}

	return nil
}
