// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// shipboard-attach connects the local terminal to a shipboard-server.
//
// It is a thin interactive SSH client: it puts the local terminal in
// raw mode, negotiates a PTY at the real window size, forwards
// keystrokes up and rendered frames down, and translates SIGWINCH
// into window-change requests so the hosted application tracks
// resizes.
//
// Usage:
//
//	shipboard-attach [--addr 127.0.0.1:2222] [--user operator]
//
// Press Ctrl-] to detach.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/ssh"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/shipboard-dev/shipboard/lib/version"
)

// detachByte is Ctrl-]: the only keystroke not forwarded to the
// server.
const detachByte = 0x1d

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var addr string
	var user string

	flagSet := pflag.NewFlagSet("shipboard-attach", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", "127.0.0.1:2222", "server address (host:port)")
	flagSet.StringVar(&user, "user", "operator", "SSH user name (any name is accepted)")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("shipboard-attach")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	stdinFD := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFD) {
		return fmt.Errorf("stdin is not a terminal")
	}

	// The server's trust policy is accept-all in both directions, so
	// host key verification is skipped to match. The transport is
	// still encrypted.
	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password("")},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return err
	}
	session.Stdout = os.Stdout
	session.Stderr = os.Stderr

	cols, rows, err := term.GetSize(stdinFD)
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}

	rawState, err := term.MakeRaw(stdinFD)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(stdinFD, rawState)

	termEnv := os.Getenv("TERM")
	if termEnv == "" {
		termEnv = "xterm-256color"
	}
	if err := session.RequestPty(termEnv, rows, cols, ssh.TerminalModes{}); err != nil {
		return fmt.Errorf("requesting PTY: %w", err)
	}
	if err := session.Shell(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	// Window changes: SIGWINCH fires on local resize; re-read the
	// size and forward it. The channel is buffered so a resize
	// burst cannot block the signal handler.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			newCols, newRows, sizeErr := term.GetSize(stdinFD)
			if sizeErr != nil {
				continue
			}
			session.WindowChange(newRows, newCols)
		}
	}()

	// Keystrokes: forwarded verbatim except the detach byte.
	detached := make(chan struct{})
	go func() {
		defer close(detached)
		buffer := make([]byte, 1024)
		for {
			n, readErr := os.Stdin.Read(buffer)
			if n > 0 {
				chunk := buffer[:n]
				if i := bytes.IndexByte(chunk, detachByte); i >= 0 {
					stdin.Write(chunk[:i])
					return
				}
				if _, writeErr := stdin.Write(chunk); writeErr != nil {
					return
				}
			}
			if readErr != nil {
				return
			}
		}
	}()

	waitErr := make(chan error, 1)
	go func() { waitErr <- session.Wait() }()

	select {
	case <-detached:
		return nil
	case err := <-waitErr:
		// The server does not report exit status for the hosted
		// application; a missing status on a clean channel close
		// is the normal end of a session.
		var missing *ssh.ExitMissingError
		if err == nil || errors.As(err, &missing) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Print(`shipboard-attach - Attach the local terminal to a shipboard-server

USAGE
    shipboard-attach [flags]

FLAGS
`)
	fmt.Print(flagSet.FlagUsages())
	fmt.Print(`
Press Ctrl-] to detach.
`)
}
