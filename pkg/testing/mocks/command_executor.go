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

package mocks

import (
	"context"

	"github.com/korewaChino/umu-wrapper/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor.
// It allows testing code that launches processes without actually running them.
type MockCommandExecutor struct {
	mock.Mock
}

// Run mocks the execution of a command.
//
// Example:
//
//	mockCmd := &MockCommandExecutor{}
//	mockCmd.On("Run", mock.Anything, mock.AnythingOfType("command.Cmd")).Return(0, nil)
//
//nolint:gocritic // matches command.Executor
func (m *MockCommandExecutor) Run(ctx context.Context, cmd command.Cmd) (int, error) {
	called := m.Called(ctx, cmd)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Int(0), called.Error(1)
}

// LookPath mocks a PATH search.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	called := m.Called(file)
	if fn, ok := called.Get(0).(func(string) string); ok {
		//nolint:wrapcheck // Mock returns are already wrapped by caller
		return fn(file), called.Error(1)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.String(0), called.Error(1)
}
