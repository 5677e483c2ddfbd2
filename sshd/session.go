// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package sshd

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"

	"github.com/shipboard-dev/shipboard/lib/ui"
)

// ptyRequestPayload is the pty-req payload per RFC 4254 section 6.2.
type ptyRequestPayload struct {
	Term     string
	Columns  uint32
	Rows     uint32
	WidthPx  uint32
	HeightPx uint32
	Modes    string
}

// windowChangePayload is the window-change payload per RFC 4254
// section 6.7.
type windowChangePayload struct {
	Columns  uint32
	Rows     uint32
	WidthPx  uint32
	HeightPx uint32
}

// sessionHandler is the per-connection protocol state machine. It
// owns zero or one channelBridge and translates SSH callbacks into
// bridge operations, mapping their outcomes to protocol
// acknowledgments.
type sessionHandler struct {
	conn   *ssh.ServerConn
	logger *slog.Logger
	newApp func() ui.App

	// bridge is nil until the first session-channel open. It is
	// written only by run's channel loop; once set it is never
	// replaced — a second session open is connection-fatal, and a
	// closed channel does not reset the connection to "no channel
	// yet".
	bridge *channelBridge
}

func newSessionHandler(conn *ssh.ServerConn, newApp func() ui.App, logger *slog.Logger) *sessionHandler {
	return &sessionHandler{
		conn:   conn,
		logger: logger,
		newApp: newApp,
	}
}

// run consumes channel-open requests until the connection closes.
// Only "session" channels are meaningful; other types are rejected
// without harming the connection.
func (h *sessionHandler) run(ctx context.Context, channels <-chan ssh.NewChannel) {
	defer func() {
		if h.bridge != nil {
			h.bridge.close()
		}
	}()

	for newChannel := range channels {
		if newChannel.ChannelType() != "session" {
			h.logger.Debug("rejecting channel",
				"channel_type", newChannel.ChannelType(),
			)
			newChannel.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}

		if h.bridge != nil {
			// The single-channel invariant is foundational:
			// a peer that violates it loses the whole
			// connection, not just the request.
			h.logger.Warn("second session channel requested, closing connection")
			newChannel.Reject(ssh.Prohibited, "only one session channel per connection")
			h.conn.Close()
			return
		}

		channel, requests, err := newChannel.Accept()
		if err != nil {
			h.logger.Error("channel accept failed", "error", err)
			continue
		}

		channelID := uuid.NewString()
		channelLogger := h.logger.With("channel_id", channelID)
		h.bridge = newChannelBridge(channelID, h.newApp(), channelLogger)
		channelLogger.Info("session channel opened")

		go h.serveRequests(ctx, channel, requests, channelLogger)
		go h.forwardStdin(channel, channelLogger)
	}
}

// serveRequests handles the channel's out-of-band requests. pty-req
// and window-change delegate to the bridge; their outcome becomes the
// success/failure acknowledgment. The request stream closes when the
// channel does, and that is the bridge's teardown signal: closing the
// queue here is what lets the render loop observe end-of-stream.
func (h *sessionHandler) serveRequests(ctx context.Context, channel ssh.Channel, requests <-chan *ssh.Request, logger *slog.Logger) {
	defer h.bridge.close()

	for request := range requests {
		switch request.Type {
		case "pty-req":
			var payload ptyRequestPayload
			if err := ssh.Unmarshal(request.Payload, &payload); err != nil {
				replyOutcome(logger, request, err)
				continue
			}
			err := h.bridge.createPTY(ctx, channel, int(payload.Columns), int(payload.Rows))
			if err == nil {
				logger.Info("PTY established",
					"term", payload.Term,
					"cols", payload.Columns,
					"rows", payload.Rows,
				)
			}
			replyOutcome(logger, request, err)

		case "window-change":
			var payload windowChangePayload
			if err := ssh.Unmarshal(request.Payload, &payload); err != nil {
				replyOutcome(logger, request, err)
				continue
			}
			replyOutcome(logger, request, h.bridge.resize(int(payload.Columns), int(payload.Rows)))

		case "shell":
			// The hosted application is the shell. Interactive
			// clients send this after pty-req and need the
			// success reply before they enter their IO loop.
			replyOutcome(logger, request, nil)

		default:
			logger.Debug("rejecting channel request", "request_type", request.Type)
			if request.WantReply {
				request.Reply(false, nil)
			}
		}
	}
}

// forwardStdin pumps channel data into the bridge. A read EOF is the
// peer half-closing its send direction (SSH_MSG_CHANNEL_EOF); the
// channel's output and request stream remain live, so the pump simply
// stops. Bridge teardown belongs to serveRequests, whose stream ends
// only when the channel itself closes.
func (h *sessionHandler) forwardStdin(channel ssh.Channel, logger *slog.Logger) {
	buffer := make([]byte, 4096)
	for {
		n, err := channel.Read(buffer)
		if n > 0 {
			if stdinErr := h.bridge.stdin(buffer[:n]); stdinErr != nil {
				// Pre-PTY input is a protocol misuse; it
				// is rejected and reported, never
				// silently buffered.
				logger.Warn("channel data rejected", "error", stdinErr)
			}
		}
		if err != nil {
			logger.Debug("channel read ended", "error", err)
			return
		}
	}
}
