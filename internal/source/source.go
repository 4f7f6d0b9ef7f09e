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

// Package source provides customer record readers.  Two sources are
// available: the embedded demo dataset, and the live customer API.
package source

import (
	"context"
	"errors"

	"github.com/rusq/custana/internal/analytics"
)

// ErrNotFound is returned when the requested customer does not exist in the
// source.
var ErrNotFound = errors.New("customer not found")

// Sourcer is an interface for retrieving customer records.  If the customer
// is not present, Customer should return ErrNotFound.
//
//go:generate mockgen -destination=mock_source/mock_source.go . Sourcer
type Sourcer interface {
	// Name should return a human-readable name of the source, i.e. "demo
	// dataset" or the API endpoint.
	Name() string
	// Customer should return the customer with the given ID.
	Customer(ctx context.Context, id string) (*analytics.Customer, error)
	// CustomerIDs should return the IDs of all known customers, sorted.  It
	// is used to hint the caller when a lookup fails.  Sources that cannot
	// enumerate customers should return an empty slice.
	CustomerIDs(ctx context.Context) ([]string, error)
}
