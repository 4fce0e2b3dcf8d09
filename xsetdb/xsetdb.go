// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package xsetdb is the embeddable, TCP-accessible server around the
// finite sorted set data type (internal/xset). A single keyspace holds
// every key; there is no clustering, persistence, or ACL layer (spec.md
// Non-goals), so the server here is a trimmed-down version of the
// reference's EchoVault/SugarDB type: functional-options construction,
// a RESP command dispatcher, and a TCP accept loop.
package xsetdb

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kelvinmwinuka/xsetdb/internal"
	"github.com/kelvinmwinuka/xsetdb/internal/clock"
	"github.com/kelvinmwinuka/xsetdb/internal/config"
	"github.com/kelvinmwinuka/xsetdb/internal/modules/xset"
	"github.com/kelvinmwinuka/xsetdb/internal/pubsub"
)

// XSetDB is a single-database, in-memory key-value server whose only
// value type is the finite sorted set.
type XSetDB struct {
	clock clock.Clock

	config config.Config

	connId atomic.Uint64

	connInfo struct {
		mut     *sync.RWMutex
		clients map[*net.Conn]internal.ConnectionInfo
	}

	storeLock *sync.RWMutex
	store     map[string]internal.KeyData

	commandsRWMut sync.RWMutex
	commands      []internal.Command

	pubSub *pubsub.PubSub

	context context.Context

	listener atomic.Value
	quit     chan struct{}
}

// WithContext supplies a custom base context. If omitted, XSetDB creates
// its own via context.Background().
func WithContext(ctx context.Context) func(server *XSetDB) {
	return func(server *XSetDB) {
		server.context = ctx
	}
}

// WithConfig supplies a custom configuration. If omitted, XSetDB uses
// config.DefaultConfig().
func WithConfig(cfg config.Config) func(server *XSetDB) {
	return func(server *XSetDB) {
		server.config = cfg
	}
}

// New creates an XSetDB instance. Accepts WithContext and WithConfig.
func New(options ...func(server *XSetDB)) (*XSetDB, error) {
	server := &XSetDB{
		clock:   clock.NewClock(),
		context: context.Background(),
		config:  config.DefaultConfig(),
		connInfo: struct {
			mut     *sync.RWMutex
			clients map[*net.Conn]internal.ConnectionInfo
		}{
			mut:     &sync.RWMutex{},
			clients: make(map[*net.Conn]internal.ConnectionInfo),
		},
		storeLock: &sync.RWMutex{},
		store:     make(map[string]internal.KeyData),
		commands:  xset.Commands(),
		pubSub:    pubsub.NewPubSub(),
		quit:      make(chan struct{}),
	}

	for _, option := range options {
		option(server)
	}

	server.context = context.WithValue(
		server.context,
		internal.ContextServerID("ServerID"),
		server.config.ServerID,
	)

	if server.config.TLS && len(server.config.CertKeyPairs) <= 0 {
		return nil, fmt.Errorf("must provide certificate and key file paths for TLS mode")
	}

	return server, nil
}

func (server *XSetDB) startTCP() {
	conf := server.config

	listenConfig := net.ListenConfig{
		KeepAlive: 200 * time.Millisecond,
	}

	listener, err := listenConfig.Listen(
		server.context,
		"tcp",
		fmt.Sprintf("%s:%d", conf.BindAddr, conf.Port),
	)
	if err != nil {
		log.Printf("listener error: %v", err)
		return
	}

	if !conf.TLS {
		log.Printf("Starting TCP server at Address %s, Port %d...\n", conf.BindAddr, conf.Port)
	}

	if conf.TLS || conf.MTLS {
		if conf.MTLS {
			log.Printf("Starting mTLS server at Address %s, Port %d...\n", conf.BindAddr, conf.Port)
		} else {
			log.Printf("Starting TLS server at Address %s, Port %d...\n", conf.BindAddr, conf.Port)
		}

		var certificates []tls.Certificate
		for _, certKeyPair := range conf.CertKeyPairs {
			c, err := tls.LoadX509KeyPair(certKeyPair[0], certKeyPair[1])
			if err != nil {
				log.Printf("load cert key pair: %v\n", err)
				return
			}
			certificates = append(certificates, c)
		}

		clientAuth := tls.NoClientCert
		clientCerts := x509.NewCertPool()

		if conf.MTLS {
			clientAuth = tls.RequireAndVerifyClientCert
			for _, c := range conf.ClientCAs {
				ca, err := os.Open(c)
				if err != nil {
					log.Printf("client cert open: %v\n", err)
					return
				}
				certBytes, err := io.ReadAll(ca)
				if err != nil {
					log.Printf("client cert read: %v\n", err)
				}
				if ok := clientCerts.AppendCertsFromPEM(certBytes); !ok {
					log.Printf("client cert append: %v\n", err)
				}
			}
		}

		listener = tls.NewListener(listener, &tls.Config{
			Certificates: certificates,
			ClientAuth:   clientAuth,
			ClientCAs:    clientCerts,
		})
	}

	server.listener.Store(listener)

	for {
		select {
		case <-server.quit:
			return
		default:
			conn, err := listener.Accept()
			if err != nil {
				log.Printf("listener error: %v\n", err)
				return
			}
			go server.handleConnection(conn)
		}
	}
}

func (server *XSetDB) handleConnection(conn net.Conn) {
	w, r := io.Writer(conn), io.Reader(conn)

	cid := server.connId.Add(1)
	ctx := context.WithValue(server.context, internal.ContextConnID("ConnectionID"),
		fmt.Sprintf("%s-%d", server.context.Value(internal.ContextServerID("ServerID")), cid))

	server.connInfo.mut.Lock()
	server.connInfo.clients[&conn] = internal.ConnectionInfo{Id: cid, Name: "", Protocol: 2}
	server.connInfo.mut.Unlock()

	defer func() {
		log.Printf("closing connection %d...", cid)
		server.connInfo.mut.Lock()
		delete(server.connInfo.clients, &conn)
		server.connInfo.mut.Unlock()
		if err := conn.Close(); err != nil {
			log.Println(err)
		}
	}()

	for {
		message, err := internal.ReadMessage(r)

		if err != nil && errors.Is(err, io.EOF) {
			log.Println(err)
			break
		}
		if err != nil {
			log.Println(err)
			break
		}

		res, err := server.handleCommand(ctx, message, &conn)
		if err != nil && errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if _, werr := w.Write([]byte(fmt.Sprintf("-Error %s\r\n", err.Error()))); werr != nil {
				log.Println(werr)
			}
			continue
		}

		if len(res) == 0 {
			continue
		}

		chunkSize := 1024
		if len(res) <= chunkSize {
			_, _ = w.Write(res)
			continue
		}

		startIndex := 0
		for {
			if len(res)-1-startIndex < chunkSize {
				_, err = w.Write(res[startIndex:])
				if err != nil {
					log.Println(err)
				}
				break
			}
			n, _ := w.Write(res[startIndex : startIndex+chunkSize])
			if n < chunkSize {
				break
			}
			startIndex += chunkSize
		}
	}
}

// Start begins accepting TCP connections. Safe to call once per instance.
func (server *XSetDB) Start() {
	server.startTCP()
}

// ShutDown closes the TCP listener and stops accepting new connections.
func (server *XSetDB) ShutDown() {
	if server.listener.Load() != nil {
		go func() { server.quit <- struct{}{} }()
		log.Println("closing tcp listener...")
		if err := server.listener.Load().(net.Listener).Close(); err != nil {
			log.Printf("listener close: %v\n", err)
		}
	}
}
