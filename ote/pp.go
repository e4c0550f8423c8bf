//
// pp.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Public parameters and configuration for the IKNP OT extension.
// PP is read-only after Setup and safe to share between the sender
// and receiver's independent processes; it is not a channel, only a
// value.

package ote

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/markkurossi/ote/ot"
)

// BaseOTKind selects which base OT adapter a PP binds to.
type BaseOTKind byte

// Base OT adapter kinds known to this core.
const (
	// BaseOTCO selects Chou-Orlandi EC-based base OT.
	BaseOTCO BaseOTKind = iota
	// BaseOTRSA selects Bellare-Micali blinded-RSA base OT.
	BaseOTRSA
)

// BasePP is the base OT adapter's persisted configuration: which
// backend to instantiate, and (for RSA) its key size.
type BasePP struct {
	Kind    BaseOTKind
	RSABits int
}

// New instantiates the base OT adapter this BasePP describes.
func (p BasePP) New() ot.OT {
	if p.Kind == BaseOTRSA {
		return ot.NewRSAOT(p.RSABits)
	}
	return ot.NewCO()
}

func (p BasePP) encode(w io.Writer) error {
	if _, err := w.Write([]byte{byte(p.Kind)}); err != nil {
		return err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(p.RSABits))
	_, err := w.Write(buf[:])
	return err
}

func decodeBasePP(r io.Reader) (BasePP, error) {
	var kind [1]byte
	if _, err := io.ReadFull(r, kind[:]); err != nil {
		return BasePP{}, err
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return BasePP{}, err
	}
	return BasePP{
		Kind:    BaseOTKind(kind[0]),
		RSABits: int(binary.BigEndian.Uint32(buf[:])),
	}, nil
}

// PP holds the public parameters shared by both parties: the
// malicious-security flag (present but never branched on by this
// passive-secure core) and the base OT adapter's configuration.
type PP struct {
	Malicious bool
	Base      BasePP
}

// Config carries the extension's ambient configuration. A zero
// Config is valid: randomness defaults to crypto/rand.Reader, the
// malicious flag defaults to false, and Trace defaults to a no-op.
// Config is never mutated after construction.
type Config struct {
	// Rand is the source of randomness for base-OT selection bits
	// and the receiver's random matrix T. Defaults to
	// crypto/rand.Reader when nil.
	Rand io.Reader

	// Malicious is carried into PP by Setup but is never consulted
	// by Send/Receive; reserved for a future hardened variant.
	Malicious bool

	// Trace, when non-nil, is called at each phase boundary with a
	// step name and the size of that phase (e.g. "columns", 128).
	// It exists purely for observability and is never consulted for
	// control flow.
	Trace func(step string, n int)
}

func (c Config) rand() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}

func (c Config) trace(step string, n int) {
	if c.Trace != nil {
		c.Trace(step, n)
	}
}

// Setup creates a fresh PP for the default Chou-Orlandi base OT
// adapter, carrying cfg's malicious flag.
func Setup(cfg Config) PP {
	return PP{
		Malicious: cfg.Malicious,
		Base:      BasePP{Kind: BaseOTCO},
	}
}

// SetupRSA creates a fresh PP selecting the blinded-RSA base OT
// adapter with the given key size.
func SetupRSA(cfg Config, keyBits int) PP {
	return PP{
		Malicious: cfg.Malicious,
		Base:      BasePP{Kind: BaseOTRSA, RSABits: keyBits},
	}
}

// SavePP writes pp to w: the base-OT PP first, then a single
// malicious byte, matching the Kunlun reference layout.
func SavePP(w io.Writer, pp PP) error {
	if err := pp.Base.encode(w); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	var malicious byte
	if pp.Malicious {
		malicious = 1
	}
	if _, err := w.Write([]byte{malicious}); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// FetchPP reads a PP from r in the format written by SavePP.
func FetchPP(r io.Reader) (PP, error) {
	base, err := decodeBasePP(r)
	if err != nil {
		return PP{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	var malicious [1]byte
	if _, err := io.ReadFull(r, malicious[:]); err != nil {
		return PP{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return PP{
		Malicious: malicious[0] != 0,
		Base:      base,
	}, nil
}
