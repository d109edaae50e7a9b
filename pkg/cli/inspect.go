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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/korewaChino/umu-wrapper/pkg/launch"
	"github.com/korewaChino/umu-wrapper/pkg/store"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatTOML = "toml"
)

func newListCmd(app *App) *cobra.Command {
	var templates bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, st, _, err := app.newResolver(cmd)
			if err != nil {
				return err
			}

			var t *table.Table
			if templates {
				t, err = listTemplates(st)
			} else {
				t, err = listProfiles(st)
			}
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().BoolVarP(&templates, "templates", "t", false, "list templates instead of profiles")

	return cmd
}

// plainTable returns a borderless table whose columns are separated by
// padding only, so the output stays easy to grep and cut.
func plainTable(cols int) *table.Table {
	cell := lipgloss.NewStyle().PaddingRight(2)
	last := lipgloss.NewStyle()
	return table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == cols-1 {
				return last
			}
			return cell
		})
}

func writeTable(w io.Writer, t *table.Table) error {
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func listProfiles(st *store.Store) (*table.Table, error) {
	t := plainTable(4).Headers("NAME", "TEMPLATE", "ID", "SOURCE")
	for _, name := range st.ProfileNames() {
		p, err := st.Profile(name)
		if err != nil {
			return nil, err
		}
		origin, _ := st.ProfileOrigin(name)
		t.Row(name, orDash(p.Template), p.ID, origin)
	}
	return t, nil
}

func listTemplates(st *store.Store) (*table.Table, error) {
	t := plainTable(4).Headers("NAME", "PREFIX", "PROTON", "STORE")
	for _, name := range st.TemplateNames() {
		tmpl, err := st.Template(name)
		if err != nil {
			return nil, err
		}
		t.Row(name, orDash(tmpl.Prefix), orDash(tmpl.Proton), orDash(tmpl.Store))
	}
	return t, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newShowCmd(app *App) *cobra.Command {
	var format string
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved launch settings of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatText, formatJSON, formatTOML:
			default:
				return fmt.Errorf("unknown format %q, expected text, json or toml", format)
			}

			r, _, _, err := app.newResolver(cmd)
			if err != nil {
				return err
			}

			var descriptors []launch.Descriptor
			if all {
				descriptors, err = r.ResolveAll(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to resolve profiles: %w", err)
				}
			} else {
				name, err := app.requireProfile()
				if err != nil {
					return err
				}
				d, err := r.Resolve(name)
				if err != nil {
					return fmt.Errorf("failed to resolve profile: %w", err)
				}
				descriptors = []launch.Descriptor{d}
			}

			return writeDescriptors(cmd.OutOrStdout(), format, descriptors)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or toml")
	cmd.Flags().BoolVar(&all, "all", false, "show every profile")

	return cmd
}

func writeDescriptors(w io.Writer, format string, descriptors []launch.Descriptor) error {
	params := make([]launch.Params, len(descriptors))
	for i, d := range descriptors {
		params[i] = d.Params()
	}

	switch format {
	case formatJSON:
		var v any = params
		if len(params) == 1 {
			v = params[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatTOML:
		data, err := toml.Marshal(struct {
			Profile []launch.Params `toml:"profile"`
		}{Profile: params})
		if err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		for i, p := range params {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			if err := writeText(w, p); err != nil {
				return err
			}
		}
		return nil
	}
}

//nolint:gocritic // params is a display copy
func writeText(w io.Writer, p launch.Params) error {
	t := plainTable(2).
		Row("profile:", p.Profile).
		Row("id:", p.ID).
		Row("exe:", p.Exe).
		Row("args:", strings.Join(p.Args, " ")).
		Row("prefix:", p.Prefix).
		Row("proton:", orDash(p.Proton)).
		Row("store:", orDash(p.Store))
	if p.ProtonVerb != "" {
		t.Row("proton_verb:", p.ProtonVerb)
	}
	if p.NoProton {
		t.Row("no_proton:", "true")
	}
	return writeTable(w, t)
}

func newEnvCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the environment umu-run would be started with",
		Long: `Print the environment of a profile as shell export statements, for
example to run umu-run by hand:

  eval "$(umu-wrapper -p game env)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := app.requireProfile()
			if err != nil {
				return err
			}

			r, _, _, err := app.newResolver(cmd)
			if err != nil {
				return err
			}

			d, err := r.Resolve(name)
			if err != nil {
				return fmt.Errorf("failed to resolve profile: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, kv := range launch.Environ(d) {
				k, v, _ := strings.Cut(kv, "=")
				_, _ = fmt.Fprintf(out, "export %s=%s\n", k, shellQuote(v))
			}
			return nil
		},
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Resolve every profile and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, st, _, err := app.newResolver(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var errs []error
			for _, name := range st.ProfileNames() {
				if _, err := r.Resolve(name); err != nil {
					errs = append(errs, err)
					_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
					continue
				}
				_, _ = fmt.Fprintf(out, "ok   %s\n", name)
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d of %d profiles failed: %w",
					len(errs), len(st.ProfileNames()), errors.Join(errs...))
			}
			return nil
		},
	}
}

func newVersionCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of umu-wrapper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "umu-wrapper version %s\n", cmd.Root().Version)
			return err
		},
	}
}
