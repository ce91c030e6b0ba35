// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jettox/diagnostics/pkg/command"
	jerrors "github.com/jettox/diagnostics/pkg/errors"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &buf
	cmd.ErrWriter = &buf
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return buf.String(), err
}

func TestCatalogCmd_Table(t *testing.T) {
	out, err := runRoot(t, "catalog", "--platform", "windows", "--domain", "storage")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "DOMAIN"))
	assert.Contains(t, out, command.NameDiskDrive)
	assert.Contains(t, out, "wmic diskdrive get /format:list")
	assert.NotContains(t, out, command.NameSystemInfo)
}

func TestCatalogCmd_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	_, err := runRoot(t, "catalog", "--platform", "unix", "--format", "json", "--output", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"domain": "system"`)
	assert.Contains(t, string(b), `"name": "`+command.NameSmartScan+`"`)
}

func TestCatalogCmd_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown platform", []string{"catalog", "--platform", "plan9"}},
		{"unknown domain", []string{"catalog", "--domain", "network"}},
		{"unknown format", []string{"catalog", "--format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			assert.True(t, jerrors.HasCode(err, jerrors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestCollectCmd_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"collect", "--root", t.TempDir(), "--format", "xml"}},
		{"unknown skip domain", []string{"collect", "--root", t.TempDir(), "--skip", "network"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			assert.True(t, jerrors.HasCode(err, jerrors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestSelectCatalog(t *testing.T) {
	for _, p := range []string{"", platformHost, platformWindows, platformUnix} {
		c, err := selectCatalog(p)
		require.NoError(t, err, p)
		assert.NotEmpty(t, c.Specs(), p)
	}
	_, err := selectCatalog("beos")
	assert.Error(t, err)
}

func TestFilterSpecs(t *testing.T) {
	specs := command.Windows().Specs()
	assert.Len(t, filterSpecs(specs, nil), len(specs))

	only := filterSpecs(specs, []string{command.DomainPeripherals})
	require.NotEmpty(t, only)
	for _, s := range only {
		assert.Equal(t, command.DomainPeripherals, s.Domain)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitError, exitCode(errors.New("boom")))
	assert.Equal(t, exitCanceled, exitCode(jerrors.Wrap(jerrors.ErrCodeCanceled, "run interrupted", context.Canceled)))
}
