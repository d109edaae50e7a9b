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

// Package cli implements the umu-wrapper command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/korewaChino/umu-wrapper/pkg/config"
	"github.com/korewaChino/umu-wrapper/pkg/helpers"
	"github.com/korewaChino/umu-wrapper/pkg/helpers/command"
	"github.com/korewaChino/umu-wrapper/pkg/resolver"
	"github.com/korewaChino/umu-wrapper/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrProfileRequired is returned by commands which need -p/--profile.
var ErrProfileRequired = errors.New("profile is required, set it with -p/--profile")

// ExitError carries a non-zero exit status which should be passed on to
// the shell without printing an error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// App holds the collaborators used by the commands. The zero value is not
// usable, use NewApp.
type App struct {
	Fs     afero.Fs
	Exec   command.Executor
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Environ replaces the process environment when reading settings.
	Environ map[string]string
	// SetupLogging is called once settings are known.
	SetupLogging func(config.Settings) error

	flags flagValues
}

type flagValues struct {
	configPath string
	configDir  string
	profile    string
	prefixRoot string
	launcher   string
	strict     bool
	debug      bool
}

// NewApp returns an App wired to the real filesystem, process and stdio.
func NewApp() *App {
	return &App{
		Fs:           afero.NewOsFs(),
		Exec:         &command.RealExecutor{},
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		SetupLogging: defaultLogging,
	}
}

func defaultLogging(s config.Settings) error {
	err := helpers.InitLogging(s.LogDir, []io.Writer{helpers.ConsoleWriter(os.Stderr)})
	if err != nil {
		return err
	}
	helpers.SetDebugLogging(s.Debug)
	return nil
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Launch games through umu-run using layered profiles",
		Long: `umu-wrapper reads game profiles from a TOML config file and launches
them with umu-run, filling in the Wine prefix, Proton path and store from
shared templates and global settings.`,
		Version: config.AppVersion,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown profiles, launcher failures)
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.settings(cmd)
			if err != nil {
				return err
			}
			if app.SetupLogging != nil {
				if err := app.SetupLogging(s); err != nil {
					return fmt.Errorf("failed to initialize logging: %w", err)
				}
			}
			return nil
		},
	}

	root.SetVersionTemplate(`{{printf "umu-wrapper version %s\n" .Version}}`)
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&app.flags.configPath, "config", "c", "",
		"config file (default $XDG_CONFIG_HOME/umu-wrapper.toml, env UMUWRAPPER_CONFIG_PATH)")
	pf.StringVar(&app.flags.configDir, "config-dir", "",
		"drop-in config directory (default $XDG_CONFIG_HOME/umu-wrapper.d)")
	pf.StringVarP(&app.flags.profile, "profile", "p", "", "profile to use")
	pf.StringVar(&app.flags.prefixRoot, "prefix-root", "",
		"directory for derived Wine prefixes (default ~/Games/umu)")
	pf.StringVar(&app.flags.launcher, "launcher", "", "launcher executable (default umu-run)")
	pf.BoolVar(&app.flags.strict, "strict", false, "fail when config sources redefine a template or profile")
	pf.BoolVar(&app.flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newRunCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newEnvCmd(app),
		newCheckCmd(app),
		newVersionCmd(app),
	)

	return root
}

// settings reads Settings from the environment and applies any flags that
// were set on the command line.
func (app *App) settings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.ParseSettings(app.Environ)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("config") {
		s.ConfigPath = app.flags.configPath
	}
	if flags.Changed("config-dir") {
		s.ConfigDir = app.flags.configDir
	}
	if flags.Changed("prefix-root") {
		s.PrefixRoot = app.flags.prefixRoot
	}
	if flags.Changed("launcher") {
		s.Launcher = app.flags.launcher
	}
	if flags.Changed("strict") {
		s.Strict = app.flags.strict
	}
	if flags.Changed("debug") {
		s.Debug = app.flags.debug
	}

	return s, nil
}

func (app *App) loadStore(s config.Settings) (*store.Store, error) {
	sources, err := config.NewLoader(app.Fs).LoadAll(s.ConfigPath, s.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	policy := store.PolicyOverride
	if s.Strict {
		policy = store.PolicyStrict
	}

	st, err := store.Load(sources, store.WithPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return st, nil
}

// newResolver loads the store and returns a resolver for it.
func (app *App) newResolver(cmd *cobra.Command) (*resolver.Resolver, *store.Store, config.Settings, error) {
	s, err := app.settings(cmd)
	if err != nil {
		return nil, nil, config.Settings{}, err
	}

	st, err := app.loadStore(s)
	if err != nil {
		return nil, nil, config.Settings{}, err
	}

	opts := resolver.DefaultOptions()
	if s.PrefixRoot != "" {
		opts.PrefixRoot = s.PrefixRoot
	}
	r := resolver.New(st, opts)

	return r, st, s, nil
}

func (app *App) requireProfile() (string, error) {
	if app.flags.profile == "" {
		return "", ErrProfileRequired
	}
	return app.flags.profile, nil
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context, cmd *cobra.Command, app *App) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	log.Debug().Err(err).Msg("command failed")
	_, _ = fmt.Fprintf(app.Stderr, "Error: %v\n", err)
	return 1
}
