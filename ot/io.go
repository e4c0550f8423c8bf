//
// io.go
//
// Copyright (c) 2023 Markku Rossi
//
// All rights reserved.

package ot

import (
	"fmt"
	"math/big"
)

// IO defines an I/O interface to communicate between peers.
type IO interface {
	// SendData sends binary data.
	SendData(val []byte) error

	// SendUint32 sends an uint32 value.
	SendUint32(val int) error

	// Flush flushed any pending data in the connection.
	Flush() error

	// ReceiveData receives binary data.
	ReceiveData() ([]byte, error)

	// ReceiveUint32 receives an uint32 value.
	ReceiveUint32() (int, error)
}

// SendString sends a string value.
func SendString(io IO, str string) error {
	return io.SendData([]byte(str))
}

// ReceiveString receives a string value.
func ReceiveString(io IO) (string, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReceiveBigInt receives a bit.Int from the connection.
func ReceiveBigInt(io IO) (*big.Int, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return nil, err
	}
	return big.NewInt(0).SetBytes(data), nil
}

// SendBlock sends a single 128-bit Label as one wire message.
func SendBlock(io IO, b Label) error {
	var data LabelData
	if err := io.SendData(b.Bytes(&data)); err != nil {
		return err
	}
	return io.Flush()
}

// ReceiveBlock receives a single 128-bit Label sent with SendBlock.
func ReceiveBlock(io IO) (Label, error) {
	var label Label
	data, err := io.ReceiveData()
	if err != nil {
		return label, err
	}
	if len(data) != len(LabelData{}) {
		return label, fmt.Errorf("ot: invalid block length %d", len(data))
	}
	label.SetBytes(data)
	return label, nil
}

// SendBlocks sends a vector of Labels as one wire message.
func SendBlocks(io IO, blocks []Label) error {
	buf := make([]byte, len(blocks)*len(LabelData{}))
	var data LabelData
	for i, b := range blocks {
		b.Bytes(&data)
		copy(buf[i*len(data):], data[:])
	}
	if err := io.SendData(buf); err != nil {
		return err
	}
	return io.Flush()
}

// ReceiveBlocks receives n Labels sent with SendBlocks.
func ReceiveBlocks(io IO, n int) ([]Label, error) {
	buf, err := io.ReceiveData()
	if err != nil {
		return nil, err
	}
	size := len(LabelData{})
	if len(buf) != n*size {
		return nil, fmt.Errorf("ot: invalid block vector length %d, expected %d",
			len(buf), n*size)
	}
	result := make([]Label, n)
	for i := range result {
		result[i].SetBytes(buf[i*size : (i+1)*size])
	}
	return result, nil
}
