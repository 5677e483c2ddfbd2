// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package sshd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"

	"github.com/shipboard-dev/shipboard/lib/ui"
)

// Server hosts a terminal application over SSH. Populate the exported
// fields, then call Start.
type Server struct {
	// ListenAddr is the TCP address to listen on (e.g. ":2222").
	// Use ":0" for a random available port.
	ListenAddr string

	// HostKey identifies the server to clients. Required; see
	// [LoadOrCreateHostKey].
	HostKey ssh.Signer

	// NewApp constructs the hosted application for one channel.
	// If nil, the built-in status application is served.
	NewApp func() ui.App

	// Logger receives structured log output. If nil, slog.Default()
	// is used. Per-connection events are logged at Debug level;
	// errors and lifecycle events at Info/Error.
	Logger *slog.Logger

	listener    net.Listener
	sshConfig   *ssh.ServerConfig
	cancel      context.CancelFunc
	done        chan struct{}
	connections sync.WaitGroup
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) newApp() ui.App {
	if s.NewApp != nil {
		return s.NewApp()
	}
	return ui.NewStatusApp("shipboard", ui.DefaultTheme)
}

// Start binds the listener and begins accepting connections in a
// background goroutine. It returns once the listener is bound, or an
// error if configuration is incomplete or binding fails. The server
// runs until Stop is called or the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.ListenAddr == "" {
		return fmt.Errorf("sshd: ListenAddr is required")
	}
	if s.HostKey == nil {
		return fmt.Errorf("sshd: HostKey is required")
	}

	// Placeholder trust policy: every authentication attempt
	// succeeds, whatever the method. Real deployments front this
	// with network-level access control.
	s.sshConfig = &ssh.ServerConfig{
		NoClientAuth: true,
		PasswordCallback: func(ssh.ConnMetadata, []byte) (*ssh.Permissions, error) {
			return nil, nil
		},
		PublicKeyCallback: func(ssh.ConnMetadata, ssh.PublicKey) (*ssh.Permissions, error) {
			return nil, nil
		},
	}
	s.sshConfig.AddHostKey(s.HostKey)

	listener, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return fmt.Errorf("sshd: failed to listen on %s: %w", s.ListenAddr, err)
	}
	s.listener = listener

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.acceptLoop(ctx)
	}()

	s.logger().Info("sshd started", "listen_addr", listener.Addr().String())
	return nil
}

// Addr returns the listener's address, useful when binding to port 0.
// Returns nil if the server has not been started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts down the server, closing the listener and waiting for
// all in-flight connections to drain.
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		s.listener.Close()
	}
	if s.done != nil {
		<-s.done
	}
}

// Wait blocks until the server has stopped.
func (s *Server) Wait() {
	if s.done != nil {
		<-s.done
	}
}

// acceptLoop accepts connections and hands each to a session handler.
// It waits for all in-flight connection goroutines to finish before
// returning, so that closing the done channel signals full quiescence.
func (s *Server) acceptLoop(ctx context.Context) {
	for {
		connection, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				s.connections.Wait()
				return
			default:
				s.logger().Error("accept failed", "error", err)
				continue
			}
		}

		s.connections.Add(1)
		go func() {
			defer s.connections.Done()
			s.handleConnection(ctx, connection)
		}()
	}
}

func (s *Server) handleConnection(ctx context.Context, netConnection net.Conn) {
	defer netConnection.Close()

	logger := s.logger().With("connection_id", uuid.NewString())
	logger.Debug("connection accepted",
		"remote_addr", netConnection.RemoteAddr(),
	)

	serverConn, channels, requests, err := ssh.NewServerConn(netConnection, s.sshConfig)
	if err != nil {
		logger.Debug("handshake failed", "error", err)
		return
	}
	defer serverConn.Close()

	logger.Debug("handshake complete",
		"client_version", string(serverConn.ClientVersion()),
		"user", serverConn.User(),
	)

	// Tear the connection down when the server stops; the handler's
	// channel loop then drains and returns.
	handshakeDone := make(chan struct{})
	defer close(handshakeDone)
	go func() {
		select {
		case <-ctx.Done():
			serverConn.Close()
		case <-handshakeDone:
		}
	}()

	// Global requests (keepalives and the like) are not used here.
	go ssh.DiscardRequests(requests)

	handler := newSessionHandler(serverConn, s.newApp, logger)
	handler.run(ctx, channels)

	logger.Debug("connection closed")
}
