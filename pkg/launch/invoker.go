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

package launch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/korewaChino/umu-wrapper/pkg/config"
	"github.com/korewaChino/umu-wrapper/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// Invoker runs the external launcher for a Descriptor.
type Invoker struct {
	Exec     command.Executor
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Launcher string
}

// NewInvoker returns an Invoker running launcher with the process's own
// stdio. An empty launcher means umu-run.
func NewInvoker(launcher string, exec command.Executor) *Invoker {
	if launcher == "" {
		launcher = config.LauncherExe
	}
	if exec == nil {
		exec = &command.RealExecutor{}
	}
	return &Invoker{
		Exec:     exec,
		Launcher: launcher,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Command returns the command line used to launch d.
func (i *Invoker) Command(d Descriptor) command.Cmd {
	return command.Cmd{
		Name:   i.Launcher,
		Args:   append([]string{d.Exe()}, d.Args()...),
		Env:    Environ(d),
		Stdin:  i.Stdin,
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	}
}

// Invoke runs the launcher for d and waits for it to exit. The launcher's
// exit code is returned unchanged; an error means it could not be run.
func (i *Invoker) Invoke(ctx context.Context, d Descriptor) (int, error) {
	path, err := i.Exec.LookPath(i.Launcher)
	if err != nil {
		return 1, fmt.Errorf("launcher not available: %w", err)
	}

	cmd := i.Command(d)
	cmd.Name = path

	log.Info().
		Str("profile", d.Profile()).
		Str("id", d.ID()).
		Str("prefix", d.Prefix()).
		Str("proton", d.Proton()).
		Msgf("starting %s %s", i.Launcher, d.Exe())
	log.Debug().Strs("args", cmd.Args).Strs("env", cmd.Env).Msg("launcher command")

	code, err := i.Exec.Run(ctx, cmd)
	if err != nil {
		return code, fmt.Errorf("failed to run launcher: %w", err)
	}

	if code != 0 {
		log.Warn().Msgf("%s exited with status %d", i.Launcher, code)
	} else {
		log.Info().Msgf("%s exited", i.Launcher)
	}

	return code, nil
}
