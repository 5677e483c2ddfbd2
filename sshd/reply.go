// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package sshd

import (
	"log/slog"

	"golang.org/x/crypto/ssh"
)

// replyOutcome translates an action result into the protocol
// acknowledgment for a channel request: nil maps to a success reply,
// any error maps to a failure reply. The error itself is logged and
// recovered here — a failed request leaves the connection alive.
func replyOutcome(logger *slog.Logger, request *ssh.Request, err error) {
	if err != nil {
		logger.Warn("channel request failed",
			"request_type", request.Type,
			"error", err,
		)
	}
	if !request.WantReply {
		return
	}
	if replyErr := request.Reply(err == nil, nil); replyErr != nil {
		logger.Debug("request reply failed",
			"request_type", request.Type,
			"error", replyErr,
		)
	}
}
