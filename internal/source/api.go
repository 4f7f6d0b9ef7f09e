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

// In this file: the customer API backed source.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rusq/custana/internal/analytics"
	"github.com/rusq/custana/internal/apiclient"
)

// Fetcher is the subset of the fetch gateway that the API source uses.
type Fetcher interface {
	Fetch(ctx context.Context, req apiclient.Request) apiclient.Result
	BaseURL() string
}

// API reads customer records from the live customer API through the fetch
// gateway.
type API struct {
	cl Fetcher
}

var _ Sourcer = (*API)(nil)

// OpenAPI creates a customer source backed by the given gateway.
func OpenAPI(cl Fetcher) *API {
	return &API{cl: cl}
}

func (a *API) Name() string {
	return a.cl.BaseURL()
}

func (a *API) Customer(ctx context.Context, id string) (*analytics.Customer, error) {
	res := a.cl.Fetch(ctx, apiclient.Request{ID: id})
	if !res.Ok() {
		if res.Failure.Kind == apiclient.KindAPI && res.Failure.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, res.Failure
	}
	// round-trip the generic payload into the typed record.
	data, err := json.Marshal(res.Payload)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", id, err)
	}
	var c analytics.Customer
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("customer %s: %w", id, err)
	}
	if c.ID == "" {
		c.ID = id
	}
	return &c, nil
}

// CustomerIDs returns an empty list: the API source cannot enumerate
// customers, the upstream contract only serves individual records.
func (a *API) CustomerIDs(context.Context) ([]string, error) {
	return nil, nil
}
