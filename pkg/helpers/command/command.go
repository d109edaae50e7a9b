// umu-wrapper
// Copyright (c) 2026 The umu-wrapper Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of umu-wrapper.
//
// umu-wrapper is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// umu-wrapper is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with umu-wrapper.  If not, see <http://www.gnu.org/licenses/>.

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Cmd describes a process to run.
type Cmd struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Name   string
	Args   []string
	// Env is appended to the parent environment. Later entries win.
	Env []string
}

type Executor interface {
	// Run executes a command and waits for it to complete. It returns the
	// exit code of the process. A non-zero exit code is not an error; an
	// error is only returned if the process could not be run at all.
	Run(ctx context.Context, cmd Cmd) (int, error)

	// LookPath searches for an executable in PATH.
	LookPath(file string) (string, error)
}

// DefaultWaitDelay is how long Run waits for a process to exit after
// forwarding SIGTERM before it is killed.
const DefaultWaitDelay = 10 * time.Second

type RealExecutor struct {
	// WaitDelay overrides DefaultWaitDelay when non-zero.
	WaitDelay time.Duration
}

// Run starts the command and waits for it. When ctx is cancelled the process
// gets SIGTERM so it can shut down cleanly, and is killed if it is still
// running after the wait delay. A process that dies from a signal reports
// 128 plus the signal number, like a shell does.
//
//nolint:gocritic // Cmd is passed by value so callers can reuse it
func (e *RealExecutor) Run(ctx context.Context, c Cmd) (int, error) {
	//nolint:gosec // command and arguments come from the user's own config
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Cancel = func() error {
		log.Debug().Str("cmd", c.Name).Msg("context cancelled, sending SIGTERM")
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = e.waitDelay()

	err := cmd.Run()
	if cmd.ProcessState == nil {
		return 1, fmt.Errorf("failed to run %s: %w", c.Name, err)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			log.Debug().Err(err).Str("cmd", c.Name).Msg("process exited after cancel")
		}
	}

	return exitCode(cmd.ProcessState), nil
}

func (e *RealExecutor) waitDelay() time.Duration {
	if e == nil || e.WaitDelay <= 0 {
		return DefaultWaitDelay
	}
	return e.WaitDelay
}

func exitCode(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}

func (*RealExecutor) LookPath(file string) (string, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return "", fmt.Errorf("failed to find %s: %w", file, err)
	}
	return path, nil
}
