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

// In this file: MCP resource template definitions and handlers.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/custana/internal/analytics"
	"github.com/rusq/custana/internal/source"
)

// serverResource couples a resource template with its handler.
type serverResource struct {
	template mcplib.ResourceTemplate
	handler  mcpsrv.ResourceTemplateHandlerFunc
}

// resources returns all resource templates that this server exposes.
func (s *Server) resources() []serverResource {
	return []serverResource{
		{
			template: mcplib.NewResourceTemplate(
				"customer://{customer_id}",
				"Customer profile",
				mcplib.WithTemplateDescription("Comprehensive customer data by ID: profile, purchase history summary, tier and risk score, with computed recency and order value metrics."),
				mcplib.WithTemplateMIMEType("application/json"),
			),
			handler: s.handleCustomerResource,
		},
		{
			template: mcplib.NewResourceTemplate(
				"customer://{customer_id}/predictions",
				"Customer predictions",
				mcplib.WithTemplateDescription("Predictive analytics for a customer: churn probability, lifetime value estimate, next purchase prediction and recommended products."),
				mcplib.WithTemplateMIMEType("application/json"),
			),
			handler: s.handlePredictionsResource,
		},
		{
			template: mcplib.NewResourceTemplate(
				"analytics://segment/{segment_name}",
				"Customer segment analysis",
				mcplib.WithTemplateDescription("Segment analysis and characteristics.  Available segments: high_value, at_risk, new_customers, loyal."),
				mcplib.WithTemplateMIMEType("application/json"),
			),
			handler: s.handleSegmentResource,
		},
	}
}

// customerProfile is the customer record extended with computed fields, as
// served by the customer:// resource.
type customerProfile struct {
	analytics.Customer
	DaysSinceLastPurchase int     `json:"days_since_last_purchase"`
	AverageOrderValue     float64 `json:"average_order_value"`
}

func (s *Server) handleCustomerResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	id, rest, err := parseCustomerURI(req.Params.URI)
	if err != nil || rest != "" {
		return nil, fmt.Errorf("invalid customer URI %q", req.Params.URI)
	}

	s.logger.InfoContext(ctx, "mcp: read customer", "customer_id", id)

	c, err := s.src.Customer(ctx, id)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return s.notFoundContents(ctx, req.Params.URI, id)
		}
		return nil, err
	}

	return resourceJSON(req.Params.URI, customerProfile{
		Customer:              *c,
		DaysSinceLastPurchase: c.DaysSinceLastPurchase(s.now()),
		AverageOrderValue:     c.AverageOrderValue(),
	})
}

func (s *Server) handlePredictionsResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	id, rest, err := parseCustomerURI(req.Params.URI)
	if err != nil || rest != "predictions" {
		return nil, fmt.Errorf("invalid predictions URI %q", req.Params.URI)
	}

	s.logger.InfoContext(ctx, "mcp: read predictions", "customer_id", id)

	c, err := s.src.Customer(ctx, id)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return s.notFoundContents(ctx, req.Params.URI, id)
		}
		return nil, err
	}

	return resourceJSON(req.Params.URI, analytics.Predict(*c, s.now()))
}

func (s *Server) handleSegmentResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	name, ok := strings.CutPrefix(req.Params.URI, "analytics://segment/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid segment URI %q", req.Params.URI)
	}

	s.logger.InfoContext(ctx, "mcp: read segment", "segment", name)

	seg, found := analytics.LookupSegment(name)
	if !found {
		return resourceJSON(req.Params.URI, map[string]any{
			"error":              fmt.Sprintf("Segment %q not found", name),
			"available_segments": analytics.SegmentNames(),
		})
	}
	return resourceJSON(req.Params.URI, seg)
}

// notFoundContents renders a customer-not-found resource body, listing the
// known customer IDs when the source can enumerate them.
func (s *Server) notFoundContents(ctx context.Context, uri, id string) ([]mcplib.ResourceContents, error) {
	body := map[string]any{
		"error": fmt.Sprintf("Customer %s not found", id),
	}
	if ids, err := s.src.CustomerIDs(ctx); err == nil && len(ids) > 0 {
		body["available_customers"] = ids
	}
	return resourceJSON(uri, body)
}

// parseCustomerURI splits a customer://{id}[/{rest}] URI into the ID and
// the remaining path.
func parseCustomerURI(uri string) (id string, rest string, err error) {
	trimmed, ok := strings.CutPrefix(uri, "customer://")
	if !ok || trimmed == "" {
		return "", "", fmt.Errorf("not a customer URI: %q", uri)
	}
	id, rest, _ = strings.Cut(trimmed, "/")
	if id == "" {
		return "", "", fmt.Errorf("empty customer ID in %q", uri)
	}
	return id, rest, nil
}

// resourceJSON marshals v with indentation and wraps it into a single text
// resource.
func resourceJSON(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
