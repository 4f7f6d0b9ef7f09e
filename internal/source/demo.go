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

package source

// In this file: the embedded demo customer dataset.

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rusq/custana/internal/analytics"
)

//go:embed assets/customers.json
var demoData []byte

// Demo serves the embedded demonstration dataset.  It allows the server to
// run without a live customer API.
type Demo struct {
	customers map[string]analytics.Customer
	ids       []string
}

var _ Sourcer = (*Demo)(nil)

// OpenDemo loads the embedded dataset.
func OpenDemo() (*Demo, error) {
	var cc map[string]analytics.Customer
	if err := json.Unmarshal(demoData, &cc); err != nil {
		return nil, fmt.Errorf("demo dataset: %w", err)
	}
	ids := make([]string, 0, len(cc))
	for id := range cc {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return &Demo{customers: cc, ids: ids}, nil
}

func (d *Demo) Name() string {
	return "demo dataset"
}

func (d *Demo) Customer(_ context.Context, id string) (*analytics.Customer, error) {
	c, ok := d.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &c, nil
}

func (d *Demo) CustomerIDs(_ context.Context) ([]string, error) {
	return slices.Clone(d.ids), nil
}
