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

package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/custana/internal/apiclient"
	"github.com/rusq/custana/internal/source"
	"github.com/rusq/custana/internal/source/mock_source"
)

// newTestFetcher starts a stub customer API and returns a gateway pointed at
// it.
func newTestFetcher(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cl, err := apiclient.New(apiclient.Config{BaseURL: srv.URL + "/customers", Token: "test-key"})
	require.NoError(t, err)
	return cl
}

func TestHandleFetchCustomer(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1001","name":"Alice Johnson"}`))
	}
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		args       map[string]any
		noFetcher  bool
		wantIsErr  bool
		wantText   string
		wantStatus string
	}{
		{
			name:       "success",
			handler:    okHandler,
			args:       map[string]any{"customer_id": "1001"},
			wantText:   "Alice Johnson",
			wantStatus: "success",
		},
		{
			name: "sub path forwarded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/customers/1001/predictions", r.URL.Path)
				w.Write([]byte(`{"churn_probability":0.22}`))
			},
			args:       map[string]any{"customer_id": "1001", "sub_path": "predictions"},
			wantText:   "churn_probability",
			wantStatus: "success",
		},
		{
			name: "api error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
			args:       map[string]any{"customer_id": "9999"},
			wantText:   "api_error",
			wantStatus: "error",
		},
		{
			name: "invalid response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`this is not json`))
			},
			args:       map[string]any{"customer_id": "1001"},
			wantText:   "invalid_response_format",
			wantStatus: "error",
		},
		{
			name:      "missing customer_id",
			handler:   okHandler,
			args:      map[string]any{},
			wantIsErr: true,
			wantText:  "customer_id is required",
		},
		{
			name:      "no gateway configured",
			handler:   okHandler,
			args:      map[string]any{"customer_id": "1001"},
			noFetcher: true,
			wantIsErr: true,
			wantText:  "not configured",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			var opts []Option
			if !tt.noFetcher {
				opts = append(opts, WithFetcher(newTestFetcher(t, tt.handler)))
			}
			srv, _ := newTestServer(t, ctrl, opts...)

			r, err := srv.handleFetchCustomer(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsErr, isErrorResult(r))

			text := firstText(t, r)
			assert.Contains(t, text, tt.wantText)
			if tt.wantStatus != "" {
				var env fetchEnvelope
				require.NoError(t, json.Unmarshal([]byte(text), &env))
				assert.Equal(t, tt.wantStatus, env.Status)
				assert.NotEmpty(t, env.FetchedAt)
			}
		})
	}
}

func TestHandleCalculateScore(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantIsErr bool
		wantText  string
	}{
		{
			name: "gold customer",
			args: map[string]any{
				"total_spent":              float64(2450.75),
				"total_purchases":          float64(15),
				"days_since_last_purchase": float64(17),
				"customer_tier":            "gold",
			},
			wantText: `"grade"`,
		},
		{
			name: "tier defaults to bronze",
			args: map[string]any{
				"total_spent":              float64(100),
				"total_purchases":          float64(1),
				"days_since_last_purchase": float64(200),
			},
			wantText: `"total_score"`,
		},
		{
			name: "missing total_spent",
			args: map[string]any{
				"total_purchases":          float64(15),
				"days_since_last_purchase": float64(17),
			},
			wantIsErr: true,
			wantText:  "total_spent is required",
		},
		{
			name: "missing total_purchases",
			args: map[string]any{
				"total_spent":              float64(100),
				"days_since_last_purchase": float64(17),
			},
			wantIsErr: true,
			wantText:  "total_purchases is required",
		},
		{
			name: "negative argument",
			args: map[string]any{
				"total_spent":              float64(-1),
				"total_purchases":          float64(15),
				"days_since_last_purchase": float64(17),
			},
			wantIsErr: true,
			wantText:  "must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, _ := newTestServer(t, ctrl)

			r, err := srv.handleCalculateScore(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsErr, isErrorResult(r))
			assert.Contains(t, firstText(t, r), tt.wantText)
		})
	}
}

func TestHandleCalculateScore_values(t *testing.T) {
	// platinum whale maxes out every component.
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	r, err := srv.handleCalculateScore(t.Context(), toolReq(map[string]any{
		"total_spent":              float64(10000),
		"total_purchases":          float64(60),
		"days_since_last_purchase": float64(3),
		"customer_tier":            "platinum",
	}))
	require.NoError(t, err)
	require.False(t, isErrorResult(r))

	var got struct {
		TotalScore float64 `json:"total_score"`
		Grade      string  `json:"grade"`
	}
	require.NoError(t, json.Unmarshal([]byte(firstText(t, r)), &got))
	assert.InDelta(t, 100.0, got.TotalScore, 0.001)
	assert.Equal(t, "A+", got.Grade)
}

func TestHandleGenerateInsights(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		setup     func(m *mock_source.MockSourcer)
		wantIsErr bool
		wantText  string
	}{
		{
			name: "known customer",
			args: map[string]any{"customer_id": "1001"},
			setup: func(m *mock_source.MockSourcer) {
				m.EXPECT().Customer(gomock.Any(), "1001").Return(&testAlice, nil)
			},
			wantText: `"behavioral_insights"`,
		},
		{
			name: "not found with hint",
			args: map[string]any{"customer_id": "9999"},
			setup: func(m *mock_source.MockSourcer) {
				m.EXPECT().Customer(gomock.Any(), "9999").Return(nil, source.ErrNotFound)
				m.EXPECT().CustomerIDs(gomock.Any()).Return([]string{"1001", "1002", "1003"}, nil)
			},
			wantIsErr: true,
			wantText:  "available customers: 1001, 1002, 1003",
		},
		{
			name: "not found, source cannot enumerate",
			args: map[string]any{"customer_id": "9999"},
			setup: func(m *mock_source.MockSourcer) {
				m.EXPECT().Customer(gomock.Any(), "9999").Return(nil, source.ErrNotFound)
				m.EXPECT().CustomerIDs(gomock.Any()).Return(nil, nil)
			},
			wantIsErr: true,
			wantText:  "customer 9999 not found",
		},
		{
			name: "source error",
			args: map[string]any{"customer_id": "1001"},
			setup: func(m *mock_source.MockSourcer) {
				m.EXPECT().Customer(gomock.Any(), "1001").Return(nil, assert.AnError)
			},
			wantIsErr: true,
			wantText:  assert.AnError.Error(),
		},
		{
			name:      "missing customer_id",
			args:      map[string]any{},
			setup:     func(m *mock_source.MockSourcer) {},
			wantIsErr: true,
			wantText:  "customer_id is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, m := newTestServer(t, ctrl)
			tt.setup(m)

			r, err := srv.handleGenerateInsights(t.Context(), toolReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsErr, isErrorResult(r))
			assert.Contains(t, firstText(t, r), tt.wantText)
		})
	}
}

func TestHandleGenerateInsights_metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, m := newTestServer(t, ctrl)
	m.EXPECT().Customer(gomock.Any(), "1001").Return(&testAlice, nil)

	r, err := srv.handleGenerateInsights(t.Context(), toolReq(map[string]any{"customer_id": "1001"}))
	require.NoError(t, err)
	require.False(t, isErrorResult(r))

	var got struct {
		KeyMetrics struct {
			AverageOrderValue float64 `json:"average_order_value"`
			LifetimeDays      int     `json:"customer_lifetime_days"`
		} `json:"key_metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(firstText(t, r)), &got))
	assert.InDelta(t, 163.38, got.KeyMetrics.AverageOrderValue, 0.001)
	assert.Equal(t, 688, got.KeyMetrics.LifetimeDays)
}

func TestTools_definitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	var names []string
	for _, tool := range srv.tools() {
		names = append(names, tool.Tool.Name)
		assert.NotEmpty(t, tool.Tool.Description)
		assert.NotNil(t, tool.Handler)
	}
	assert.Equal(t, []string{
		"fetch_customer_from_api",
		"calculate_customer_score",
		"generate_customer_insights",
	}, names)
}
