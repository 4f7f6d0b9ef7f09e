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

// Package mcp implements the customer analytics MCP server.  Protocol
// framing and routing are provided by the mcp-go library; this package
// registers the resources, tools and prompts and binds them to the customer
// source and the fetch gateway.
package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/custana/internal/apiclient"
	"github.com/rusq/custana/internal/source"
)

const (
	defServerName = "custana-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// Fetcher is the subset of the fetch gateway used by the
// fetch_customer_from_api tool.
type Fetcher interface {
	Fetch(ctx context.Context, req apiclient.Request) apiclient.Result
	BaseURL() string
}

// Server wraps an MCP server, its customer source and the fetch gateway.
type Server struct {
	mcp     *mcpsrv.MCPServer
	src     source.Sourcer
	fetcher Fetcher
	name    string
	logger  *slog.Logger
	now     func() time.Time
}

// Option is a functional option for New.
type Option func(*Server)

// WithLogger sets the logger.  Nil falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithName overrides the advertised server name.
func WithName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.name = name
		}
	}
}

// WithFetcher sets the fetch gateway used by the fetch_customer_from_api
// tool.  Without it the tool reports that the API is not configured.
func WithFetcher(f Fetcher) Option {
	return func(s *Server) {
		s.fetcher = f
	}
}

// New creates a new MCP server backed by the given customer source.  The
// server is populated with all resources, tools and prompts, but does not
// start listening until one of the Serve* methods is called.
func New(src source.Sourcer, opt ...Option) *Server {
	s := &Server{
		src:    src,
		name:   defServerName,
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opt {
		o(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		s.name,
		serverVersion,
		mcpsrv.WithInstructions(instructions(src)),
		mcpsrv.WithResourceCapabilities(false, true),
		mcpsrv.WithPromptCapabilities(true),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithRecovery(),
	)

	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}
	for _, r := range s.resources() {
		mcpServer.AddResourceTemplate(r.template, r.handler)
	}
	for _, p := range s.prompts() {
		mcpServer.AddPrompt(p.prompt, p.handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the dataset to
// the connecting agent.
func instructions(src source.Sourcer) string {
	name := "(no source)"
	if src != nil {
		name = src.Name()
	}
	return fmt.Sprintf(`You are connected to a customer analytics MCP server backed by %q.

Resources:
- customer://{customer_id} - customer profile with purchase history summary
- customer://{customer_id}/predictions - churn, lifetime value and product predictions
- analytics://segment/{segment_name} - segment analysis (high_value, at_risk, new_customers, loyal)

Tools allow you to fetch raw customer records from the external API, compute
a composite customer score from its inputs, and generate combined
behavioural insights.  All data is read-only.  Dates in customer records use
the YYYY-MM-DD format.
`, name)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as
// "127.0.0.1:8483".  The MCP endpoint is mounted at /mcp, and a liveness
// probe at /healthcheck.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/healthcheck", http.HandlerFunc(healthcheck))
	mux.Handle("/mcp", mcpsrv.NewStreamableHTTPServer(s.mcp))

	httpSrv := &http.Server{Addr: addr, Handler: middleware.Logger(mux)}

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := httpSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// resultErr is a helper that wraps an error in a CallToolResult with
// IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a
// CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// floatArg extracts a named numeric argument from a tool call request.  The
// MCP protocol serialises numbers as float64, so integers arrive that way
// too.
func floatArg(req mcplib.CallToolRequest, name string) (float64, bool) {
	args := req.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
