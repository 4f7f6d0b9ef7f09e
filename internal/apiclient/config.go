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

// In this file: client configuration, YAML loading and validation.

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	// DefBaseURL is the default customer API collection endpoint.
	DefBaseURL = "https://api.example.com/customers"
	// DefTimeout is the default per-request timeout.
	DefTimeout = 30 * time.Second
	// DefUserAgent is the User-Agent header value sent with each request.
	DefUserAgent = "custana/1.0"
)

// ErrConfigInvalid is returned when the configuration fails validation.
var ErrConfigInvalid = errors.New("config validation failed")

// Config holds the connection and authentication parameters for the
// customer API.  It is constructed once at process start and is read-only
// afterwards.
type Config struct {
	// BaseURL is the collection endpoint that customer IDs are appended to,
	// i.e. requests are issued against BaseURL/{id}[/{sub_path}].
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// Token is the static bearer token presented in the Authorization
	// header.
	Token string `yaml:"token" validate:"required"`
	// Timeout is the per-request timeout.  Zero means DefTimeout.
	Timeout time.Duration `yaml:"-" validate:"gte=0"`
	// UserAgent overrides DefUserAgent when set.
	UserAgent string `yaml:"user_agent"`

	// TimeoutRaw is the YAML representation of Timeout ("30s", "1m").
	TimeoutRaw string `yaml:"timeout"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration, returning an error wrapping
// ErrConfigInvalid if any constraint is violated.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return fmt.Errorf("%w: %s", ErrConfigInvalid, vErr)
		}
		return err
	}
	return nil
}

// Load reads, parses and validates the YAML configuration file.
func Load(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if cfg.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.TimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid timeout: %w", filename, err)
		}
		cfg.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// apply fills in the zero values with defaults.
func (c *Config) apply() {
	if c.Timeout == 0 {
		c.Timeout = DefTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefUserAgent
	}
}
