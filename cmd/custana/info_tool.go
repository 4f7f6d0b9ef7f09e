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

package main

import (
	"bytes"
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/custana/internal/mcp"
	"github.com/rusq/custana/internal/source"
)

// toolServerInfo returns an MCP tool reporting the server build and data
// source configuration.  It lives at the CLI layer because the build version
// and the transport wiring are known only here.
func toolServerInfo(src source.Sourcer, fetcher mcp.Fetcher) mcpsrv.ServerTool {
	tool := mcplib.NewTool("server_info",
		mcplib.WithDescription(`Report the server build version, the active customer source and the
customer API endpoint, if one is configured.  Useful for diagnosing which
dataset the other tools and resources operate on.`),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithIdempotentHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: handleServerInfo(src, fetcher)}
}

func handleServerInfo(src source.Sourcer, fetcher mcp.Fetcher) mcpsrv.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "custana %s\n", build)
		fmt.Fprintf(&buf, "Source: %s\n", src.Name())
		if fetcher != nil {
			fmt.Fprintf(&buf, "Customer API: %s\n", fetcher.BaseURL())
		} else {
			fmt.Fprintln(&buf, "Customer API: not configured")
		}
		return mcplib.NewToolResultText(buf.String()), nil
	}
}
