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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrNoSources is returned when neither the main config file nor the
// drop-in directory provide anything to load.
var ErrNoSources = errors.New("no configuration sources found")

type format int

const (
	formatUnknown format = iota
	formatTOML
	formatYAML
)

func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatUnknown
	}
}

// Loader reads configuration sources from a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader returns a Loader backed by fsys, or by the OS filesystem when
// fsys is nil.
func NewLoader(fsys afero.Fs) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Loader{fs: fsys}
}

// Parse parses data as TOML or YAML depending on the extension of origin.
// Origins without a known extension are parsed as TOML.
func Parse(origin string, data []byte) (Source, error) {
	raw := make(map[string]any)

	switch formatOf(origin) {
	case formatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Source{}, &ParseError{Path: origin, Err: err}
		}
	case formatTOML, formatUnknown:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Source{}, &ParseError{Path: origin, Err: err}
		}
	}

	return Decode(origin, raw)
}

// LoadFile reads and parses a single configuration file.
func (l *Loader) LoadFile(path string) (Source, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read config file: %w", err)
	}

	src, err := Parse(path, data)
	if err != nil {
		return Source{}, err
	}

	log.Debug().
		Str("source", path).
		Int("templates", len(src.Templates)).
		Int("profiles", len(src.Profiles)).
		Msg("loaded config source")

	return src, nil
}

// LoadDir loads every TOML and YAML file below dir, in lexical path order.
// A missing directory is not an error. Files which fail to parse are logged
// and skipped so one broken drop-in does not hide the others.
func (l *Loader) LoadDir(dir string) ([]Source, error) {
	exists, err := afero.DirExists(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config directory: %w", err)
	}
	if !exists {
		log.Debug().Msgf("config directory %s does not exist, skipping", dir)
		return nil, nil
	}

	var files []string

	err = afero.Walk(l.fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if formatOf(path) == formatUnknown {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk config directory: %w", err)
	}

	slices.Sort(files)
	log.Debug().Msgf("found %d drop-in config files", len(files))

	sources := make([]Source, 0, len(files))
	for _, path := range files {
		src, err := l.LoadFile(path)
		if err != nil {
			log.Error().Err(err).Msgf("error loading drop-in config: %s", path)
			continue
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// LoadAll returns the main config file followed by the drop-in directory
// sources, which is the order they should be merged in. A missing main file
// is tolerated as long as the drop-in directory provides something.
func (l *Loader) LoadAll(mainPath, dropInDir string) ([]Source, error) {
	var sources []Source

	mainExists, err := afero.Exists(l.fs, mainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if mainExists {
		src, err := l.LoadFile(mainPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	} else {
		log.Warn().Msgf("config file %s does not exist", mainPath)
	}

	if dropInDir != "" {
		extra, err := l.LoadDir(dropInDir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, extra...)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, mainPath)
	}

	log.Info().Msgf("loaded %d config sources", len(sources))

	return sources, nil
}
