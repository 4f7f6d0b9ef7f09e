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

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/custana/internal/analytics"
	"github.com/rusq/custana/internal/apiclient"
	"github.com/rusq/custana/internal/source"
)

// errNoAPI is returned by fetch_customer_from_api when no gateway is
// configured (demo mode without API credentials).
var errNoAPI = errors.New("customer API is not configured; set CUSTOMER_API_URL and CUSTOMER_API_TOKEN and restart")

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolFetchCustomer(),
		s.toolCalculateScore(),
		s.toolGenerateInsights(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called
// after New but before serving starts.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// ─── fetch_customer_from_api ──────────────────────────────────────────────────

// fetchEnvelope is the JSON envelope that fetch_customer_from_api returns.
// Exactly one of Data or Error is populated.
type fetchEnvelope struct {
	Status     string `json:"status"` // "success" or "error"
	StatusCode int    `json:"status_code,omitempty"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	TookMs     int64  `json:"response_time_ms"`
	FetchedAt  string `json:"fetched_at"`
}

func (s *Server) toolFetchCustomer() mcpsrv.ServerTool {
	tool := mcplib.NewTool("fetch_customer_from_api",
		mcplib.WithDescription(`Fetch a customer record from the external customer API.

Performs a single authenticated GET against the configured endpoint and
returns the normalised result: on success the raw JSON record under "data",
otherwise a structured error with its category (network_error, timeout,
api_error, invalid_response_format).  No retries are performed.`),
		mcplib.WithString("customer_id",
			mcplib.Description("Customer identifier, e.g. \"1001\"."),
			mcplib.Required(),
		),
		mcplib.WithString("sub_path",
			mcplib.Description("Optional sub-resource to fetch, e.g. \"predictions\"."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleFetchCustomer}
}

func (s *Server) handleFetchCustomer(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "customer_id")
	if !ok || id == "" {
		return resultErr(errors.New("fetch_customer_from_api: customer_id is required")), nil
	}
	if s.fetcher == nil {
		return resultErr(errNoAPI), nil
	}
	subPath, _ := stringArg(req, "sub_path")

	s.logger.InfoContext(ctx, "mcp: fetch_customer_from_api", "customer_id", id, "sub_path", subPath)

	res := s.fetcher.Fetch(ctx, apiclient.Request{ID: id, SubPath: subPath})

	env := fetchEnvelope{
		StatusCode: res.StatusCode,
		TookMs:     res.Elapsed.Milliseconds(),
		FetchedAt:  res.FetchedAt.Format(time.RFC3339),
	}
	if res.Ok() {
		env.Status = "success"
		env.Data = res.Payload
	} else {
		env.Status = "error"
		env.Error = res.Failure.Message
		env.ErrorKind = res.Failure.Kind.String()
	}
	return resultJSON(env)
}

// ─── calculate_customer_score ─────────────────────────────────────────────────

func (s *Server) toolCalculateScore() mcpsrv.ServerTool {
	tool := mcplib.NewTool("calculate_customer_score",
		mcplib.WithDescription(`Calculate a comprehensive customer score based on multiple factors.

The score considers total spending (up to 40 points), purchase frequency (up
to 30), recency of the last purchase (up to 20) and customer tier (up to 10
bonus points), and maps the total to a letter grade with recommendations.`),
		mcplib.WithNumber("total_spent",
			mcplib.Description("Total amount the customer has spent, in dollars."),
			mcplib.Required(),
		),
		mcplib.WithNumber("total_purchases",
			mcplib.Description("Total number of purchases."),
			mcplib.Required(),
		),
		mcplib.WithNumber("days_since_last_purchase",
			mcplib.Description("Days elapsed since the most recent purchase."),
			mcplib.Required(),
		),
		mcplib.WithString("customer_tier",
			mcplib.Description("Customer tier: bronze, silver, gold or platinum.  Defaults to bronze."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithIdempotentHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCalculateScore}
}

func (s *Server) handleCalculateScore(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	spent, ok := floatArg(req, "total_spent")
	if !ok {
		return resultErr(errors.New("calculate_customer_score: total_spent is required")), nil
	}
	purchases, ok := floatArg(req, "total_purchases")
	if !ok {
		return resultErr(errors.New("calculate_customer_score: total_purchases is required")), nil
	}
	days, ok := floatArg(req, "days_since_last_purchase")
	if !ok {
		return resultErr(errors.New("calculate_customer_score: days_since_last_purchase is required")), nil
	}
	if spent < 0 || purchases < 0 || days < 0 {
		return resultErr(errors.New("calculate_customer_score: arguments must not be negative")), nil
	}
	tier, _ := stringArg(req, "customer_tier")
	if tier == "" {
		tier = analytics.TierBronze
	}

	s.logger.InfoContext(ctx, "mcp: calculate_customer_score", "tier", tier)

	score := analytics.CalculateScore(spent, int(purchases), int(days), tier)
	return resultJSON(score)
}

// ─── generate_customer_insights ───────────────────────────────────────────────

func (s *Server) toolGenerateInsights() mcpsrv.ServerTool {
	tool := mcplib.NewTool("generate_customer_insights",
		mcplib.WithDescription(`Generate comprehensive insights for a customer.

Combines the customer record with derived metrics (lifetime, average order
value, purchase frequency) and produces behavioural insights, opportunities,
risk factors and recommendations.`),
		mcplib.WithString("customer_id",
			mcplib.Description("Customer identifier, e.g. \"1001\"."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGenerateInsights}
}

func (s *Server) handleGenerateInsights(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "customer_id")
	if !ok || id == "" {
		return resultErr(errors.New("generate_customer_insights: customer_id is required")), nil
	}

	s.logger.InfoContext(ctx, "mcp: generate_customer_insights", "customer_id", id)

	c, err := s.src.Customer(ctx, id)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return resultErr(s.notFoundErr(ctx, id)), nil
		}
		return resultErr(fmt.Errorf("generate_customer_insights: %w", err)), nil
	}

	return resultJSON(analytics.Analyze(*c, s.now()))
}

// notFoundErr builds a not-found error, hinting at the known customer IDs
// when the source can enumerate them.
func (s *Server) notFoundErr(ctx context.Context, id string) error {
	ids, err := s.src.CustomerIDs(ctx)
	if err != nil || len(ids) == 0 {
		return fmt.Errorf("customer %s not found", id)
	}
	return fmt.Errorf("customer %s not found; available customers: %s", id, strings.Join(ids, ", "))
}
