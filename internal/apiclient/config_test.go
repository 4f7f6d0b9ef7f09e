// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package apiclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "custana.yaml")
	require.NoError(t, os.WriteFile(name, []byte(contents), 0o644))
	return name
}

func TestLoad_ok(t *testing.T) {
	name := writeConfig(t, `
base_url: https://api.example.com/customers
token: demo-key
timeout: 45s
user_agent: custana-test/0.1
`)
	cfg, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/customers", cfg.BaseURL)
	assert.Equal(t, "demo-key", cfg.Token)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "custana-test/0.1", cfg.UserAgent)
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing token", "base_url: https://api.example.com/customers\n"},
		{"bad url", "base_url: ':'\ntoken: x\n"},
		{"bad timeout", "base_url: https://api.example.com\ntoken: x\ntimeout: fast\n"},
		{"unknown field", "base_url: https://api.example.com\ntoken: x\nretries: 3\n"},
		{"not yaml", "{{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoad_noFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.com/customers", Token: "x"}
	assert.NoError(t, cfg.Validate())

	cfg.Token = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestFailure_Error(t *testing.T) {
	f := &Failure{Kind: KindAPI, Message: "not found", StatusCode: 404}
	assert.Equal(t, "api_error (HTTP 404): not found", f.Error())

	f = &Failure{Kind: KindTimeout, Message: "context deadline exceeded"}
	assert.Equal(t, "timeout: context deadline exceeded", f.Error())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "network_error", KindNetwork.String())
	assert.Equal(t, "timeout", KindTimeout.String())
	assert.Equal(t, "api_error", KindAPI.String())
	assert.Equal(t, "invalid_response_format", KindInvalidResponse.String())
	assert.Equal(t, "configuration_error", KindConfig.String())
}
