//
// rsa.go
//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/markkurossi/ote/ot/mpint"
	"github.com/markkurossi/ote/pkcs1"
)

// ErrUnknownInput is returned when a transfer references an input
// that was not registered with the sender.
var ErrUnknownInput = errors.New("ot: unknown input")

// RandomData returns size bytes of uniformly random data.
func RandomData(size int) ([]byte, error) {
	m := make([]byte, size)
	_, err := rand.Read(m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RSAMessagePair holds the two plaintext messages of a single
// blinded-RSA 1-out-of-2 transfer.
type RSAMessagePair struct {
	Label0 []byte
	Label1 []byte
}

// RSAInputs maps transfer indices to their message pairs.
type RSAInputs map[int]RSAMessagePair

func (i RSAInputs) String() string {
	var result string

	for k, v := range i {
		str := fmt.Sprintf("%d={%x,%x}", k, v.Label0, v.Label1)
		if len(result) > 0 {
			result += ", "
		}
		result += str
	}
	return result
}

// RSASender implements the sender side of Bellare-Micali blinded-RSA
// 1-out-of-2 OT.
type RSASender struct {
	key    *rsa.PrivateKey
	inputs RSAInputs
}

// NewRSASender creates a new blinded-RSA OT sender with an RSA key of
// the given bit size and the message pairs it offers.
func NewRSASender(keyBits int, inputs RSAInputs) (*RSASender, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, err
	}

	return &RSASender{
		key:    key,
		inputs: inputs,
	}, nil
}

// MessageSize returns the size, in bytes, of the sender's RSA
// modulus, which bounds the size of each transferred message.
func (s *RSASender) MessageSize() int {
	return s.key.PublicKey.Size()
}

// PublicKey returns the sender's RSA public key.
func (s *RSASender) PublicKey() *rsa.PublicKey {
	return &s.key.PublicKey
}

// NewTransfer starts a new transfer for the input at the given index.
func (s *RSASender) NewTransfer(input int) (*RSASenderXfer, error) {
	w, ok := s.inputs[input]
	if !ok {
		return nil, ErrUnknownInput
	}
	x0, err := RandomData(s.MessageSize())
	if err != nil {
		return nil, err
	}
	x1, err := RandomData(s.MessageSize())
	if err != nil {
		return nil, err
	}

	return &RSASenderXfer{
		sender: s,
		input:  w,
		x0:     x0,
		x1:     x1,
	}, nil
}

// RSASenderXfer implements sender-side transfer state for one
// blinded-RSA OT.
type RSASenderXfer struct {
	sender *RSASender
	input  RSAMessagePair
	x0     []byte
	x1     []byte
	k0     *big.Int
	k1     *big.Int
}

// MessageSize returns the message size of the underlying sender.
func (s *RSASenderXfer) MessageSize() int {
	return s.sender.MessageSize()
}

// RandomMessages returns the sender's two random blinding messages.
func (s *RSASenderXfer) RandomMessages() ([]byte, []byte) {
	return s.x0, s.x1
}

// ReceiveV receives the receiver's blinded value v.
func (s *RSASenderXfer) ReceiveV(data []byte) {
	v := mpint.FromBytes(data)
	x0 := mpint.FromBytes(s.x0)
	x1 := mpint.FromBytes(s.x1)

	s.k0 = mpint.Exp(mpint.Sub(v, x0), s.sender.key.D, s.sender.key.PublicKey.N)
	s.k1 = mpint.Exp(mpint.Sub(v, x1), s.sender.key.D, s.sender.key.PublicKey.N)
}

// Messages returns the two masked, PKCS#1-encoded messages to send to
// the receiver.
func (s *RSASenderXfer) Messages() ([]byte, []byte, error) {
	m0, err := pkcs1.NewEncryptionBlock(pkcs1.BT1, s.MessageSize(),
		s.input.Label0)
	if err != nil {
		return nil, nil, err
	}
	m0p := mpint.Add(mpint.FromBytes(m0), s.k0)

	m1, err := pkcs1.NewEncryptionBlock(pkcs1.BT1, s.MessageSize(),
		s.input.Label1)
	if err != nil {
		return nil, nil, err
	}
	m1p := mpint.Add(mpint.FromBytes(m1), s.k1)

	return m0p.Bytes(), m1p.Bytes(), nil
}

// RSAReceiver implements the receiver side of blinded-RSA OT.
type RSAReceiver struct {
	pub *rsa.PublicKey
}

// NewRSAReceiver creates a new receiver bound to the sender's public
// key.
func NewRSAReceiver(pub *rsa.PublicKey) (*RSAReceiver, error) {
	return &RSAReceiver{
		pub: pub,
	}, nil
}

// MessageSize returns the message size implied by the sender's RSA
// modulus.
func (r *RSAReceiver) MessageSize() int {
	return r.pub.Size()
}

// NewTransfer starts a new transfer for the given selection bit.
func (r *RSAReceiver) NewTransfer(bit int) (*RSAReceiverXfer, error) {
	return &RSAReceiverXfer{
		receiver: r,
		bit:      bit,
	}, nil
}

// RSAReceiverXfer implements receiver-side transfer state for one
// blinded-RSA OT.
type RSAReceiverXfer struct {
	receiver *RSAReceiver
	bit      int
	k        *big.Int
	v        *big.Int
	mb       []byte
}

// ReceiveRandomMessages receives the sender's two random blinding
// messages and computes the blinded value v for the chosen bit.
func (r *RSAReceiverXfer) ReceiveRandomMessages(x0, x1 []byte) error {
	k, err := rand.Int(rand.Reader, r.receiver.pub.N)
	if err != nil {
		return err
	}
	r.k = k

	var xb *big.Int
	if r.bit == 0 {
		xb = mpint.FromBytes(x0)
	} else {
		xb = mpint.FromBytes(x1)
	}

	e := big.NewInt(int64(r.receiver.pub.E))
	r.v = mpint.Mod(
		mpint.Add(xb, mpint.Exp(r.k, e, r.receiver.pub.N)), r.receiver.pub.N)

	return nil
}

// V returns the receiver's blinded value to send to the sender.
func (r *RSAReceiverXfer) V() []byte {
	return r.v.Bytes()
}

// ReceiveMessages receives the sender's two masked messages and
// unmasks the one selected by the receiver's bit.
func (r *RSAReceiverXfer) ReceiveMessages(m0p, m1p []byte, err error) error {
	if err != nil {
		return err
	}
	var mbp *big.Int
	if r.bit == 0 {
		mbp = mpint.FromBytes(m0p)
	} else {
		mbp = mpint.FromBytes(m1p)
	}
	mbBytes := make([]byte, r.receiver.MessageSize())
	mbIntBytes := mpint.Sub(mbp, r.k).Bytes()
	ofs := len(mbBytes) - len(mbIntBytes)
	copy(mbBytes[ofs:], mbIntBytes)

	mb, err := pkcs1.ParseEncryptionBlock(mbBytes)
	if err != nil {
		return err
	}
	r.mb = mb

	return nil
}

// Message returns the recovered message and the selection bit it was
// chosen with.
func (r *RSAReceiverXfer) Message() (m []byte, bit int) {
	return r.mb, r.bit
}
