//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

// Network implements peer-to-peer network.
type Network struct {
	ID       int
	m        sync.Mutex
	Peers    map[int]*Peer
	addr     string
	listener net.Listener
}

// NewNetwork creats a new peer-to-peer network.
func NewNetwork(addr string, id int) (*Network, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	nw := &Network{
		ID:       id,
		Peers:    make(map[int]*Peer),
		addr:     addr,
		listener: listener,
	}
	go nw.acceptLoop()
	return nw, nil
}

// Close closes the network.
func (nw *Network) Close() error {
	return nw.listener.Close()
}

// AddPeer adds a peer to the network.
func (nw *Network) AddPeer(addr string, id int) error {
	// Try to connect to peer.
	for {
		// Check if we have already accepted peer `id`.
		nw.m.Lock()
		_, ok := nw.Peers[id]
		nw.m.Unlock()
		if ok {
			return nil
		}

		log.Printf("NW %d: Connecting to peer %d...\n", nw.ID, id)
		nc, err := net.Dial("tcp", addr)
		if err != nil {
			delay := 5 * time.Second
			log.Printf("NW %d: Connect to %s failed, retrying in %s\n",
				nw.ID, addr, delay)
			<-time.After(delay)
			continue
		}
		log.Printf("NW %d: Connected to %s\n", nw.ID, addr)
		conn := NewConn(nc)

		if err := conn.SendUint32(nw.ID); err != nil {
			conn.Close()
			return err
		}
		if err := conn.Flush(); err != nil {
			conn.Close()
			return err
		}
		if err := nw.newPeer(true, conn, id); err != nil {
			fmt.Printf("Failed to add peer: %s\n", err)
		}
	}
}

// Ping sends a ping message to all peers.
func (nw *Network) Ping() {
	for _, peer := range nw.Peers {
		peer.Ping()
	}
}

// Stats returns the I/O stats from the network.
func (nw *Network) Stats() IOStats {
	var result IOStats
	for _, peer := range nw.Peers {
		result = result.Add(peer.conn.Stats)
	}
	return result
}

func (nw *Network) acceptLoop() {
	for {
		nc, err := nw.listener.Accept()
		if err != nil {
			log.Printf("NW %d: accept failed: %s\n", nw.ID, err)
			return
		}
		conn := NewConn(nc)

		// Read peer ID.
		id, err := conn.ReceiveUint32()
		if err != nil {
			log.Printf("NW %d: I/O error: %s\n", nw.ID, err)
			conn.Close()
			continue
		}

		err = nw.newPeer(false, conn, id)
		if err != nil {
			log.Printf("inbound connection error: %s\n", err)
		}
	}
}

func (nw *Network) newPeer(client bool, conn *Conn, id int) error {
	nw.m.Lock()
	peer, ok := nw.Peers[id]
	if ok {
		nw.m.Unlock()
		log.Printf("NW %d: peer %d already connected\n", nw.ID, id)
		return conn.Close()
	}
	peer = &Peer{
		id:     id,
		conn:   conn,
		client: client,
	}
	nw.Peers[id] = peer
	nw.m.Unlock()

	return nil
}

// Peer implements a peer in the peer-to-peer network. A Peer's Conn
// implements ot.IO, so it can be handed directly to ote.Sender.Send
// or ote.Receiver.Receive as the NetIO collaborator for a two-party
// OT extension session; which side dials and which side accepts has
// no bearing on which OTE role a peer plays.
type Peer struct {
	id     int
	conn   *Conn
	client bool
}

// Conn returns the peer's underlying connection, implementing
// ot.IO.
func (peer *Peer) Conn() *Conn {
	return peer.conn
}

// Close closes the peer connection.
func (peer *Peer) Close() error {
	return peer.conn.Close()
}

// Ping sends a ping message to the peer.
func (peer *Peer) Ping() error {
	if err := peer.conn.SendUint32(0xffffffff); err != nil {
		return err
	}
	return peer.conn.Flush()
}
