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

package cli

import (
	"fmt"

	"github.com/korewaChino/umu-wrapper/pkg/launch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [exe [args...]]",
		Short: "Launch a profile with umu-run",
		Long: `Resolve the profile given with -p and launch it with umu-run. When an
executable is given it replaces the profile's exe, and any further arguments
replace the profile's args. The exit status of umu-run is passed through.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := app.requireProfile()
			if err != nil {
				return err
			}

			r, _, s, err := app.newResolver(cmd)
			if err != nil {
				return err
			}

			log.Info().Msgf("resolving profile: %s", name)
			d, err := r.Resolve(name)
			if err != nil {
				return fmt.Errorf("failed to resolve profile: %w", err)
			}

			if len(args) > 0 {
				log.Debug().Msgf("overriding exe with %s", args[0])
				d = d.WithCommand(args[0], args[1:])
			}

			inv := launch.NewInvoker(s.Launcher, app.Exec)
			inv.Stdin = app.Stdin
			inv.Stdout = app.Stdout
			inv.Stderr = app.Stderr

			code, err := inv.Invoke(cmd.Context(), d)
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	// Everything after the executable belongs to the game.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
