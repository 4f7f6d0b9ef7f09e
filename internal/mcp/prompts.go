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

// In this file: MCP prompt definitions and handlers.

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// serverPrompt couples a prompt with its handler.
type serverPrompt struct {
	prompt  mcplib.Prompt
	handler mcpsrv.PromptHandlerFunc
}

// prompts returns all prompts that this server exposes.
func (s *Server) prompts() []serverPrompt {
	return []serverPrompt{
		s.promptAnalyzeBehavior(),
		s.promptRetentionStrategy(),
		s.promptHealthCheck(),
	}
}

// promptArg extracts a named prompt argument, returning an error mentioning
// the prompt name if it is missing.
func promptArg(req mcplib.GetPromptRequest, prompt, name string) (string, error) {
	v, ok := req.Params.Arguments[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%s: %s is required", prompt, name)
	}
	return v, nil
}

func userMessage(text string) mcplib.PromptMessage {
	return mcplib.NewPromptMessage(mcplib.RoleUser, mcplib.NewTextContent(text))
}

func assistantMessage(text string) mcplib.PromptMessage {
	return mcplib.NewPromptMessage(mcplib.RoleAssistant, mcplib.NewTextContent(text))
}

// ─── analyze_customer_behavior ────────────────────────────────────────────────

func (s *Server) promptAnalyzeBehavior() serverPrompt {
	prompt := mcplib.NewPrompt("analyze_customer_behavior",
		mcplib.WithPromptDescription("Analyze customer behavior patterns and provide strategic recommendations."),
		mcplib.WithArgument("customer_id",
			mcplib.ArgumentDescription("Customer identifier to analyze."),
			mcplib.RequiredArgument(),
		),
	)
	return serverPrompt{prompt: prompt, handler: s.handleAnalyzeBehavior}
}

func (s *Server) handleAnalyzeBehavior(_ context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	id, err := promptArg(req, "analyze_customer_behavior", "customer_id")
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf(`Please analyze the behavior patterns for customer ID %s.

Focus on:
1. Purchase history and trends
2. Category preferences and cross-sell opportunities
3. Customer lifecycle stage and tier progression
4. Risk factors and retention strategies
5. Personalization opportunities

Use the customer data and predictions resources to gather comprehensive information, then provide actionable insights and recommendations for improving customer engagement and lifetime value.`, id)

	return mcplib.NewGetPromptResult(
		"Customer behavior analysis",
		[]mcplib.PromptMessage{userMessage(text)},
	), nil
}

// ─── create_retention_strategy ────────────────────────────────────────────────

func (s *Server) promptRetentionStrategy() serverPrompt {
	prompt := mcplib.NewPrompt("create_retention_strategy",
		mcplib.WithPromptDescription("Create a customer retention strategy for a specific segment."),
		mcplib.WithArgument("customer_segment",
			mcplib.ArgumentDescription("Segment name: high_value, at_risk, new_customers or loyal."),
			mcplib.RequiredArgument(),
		),
	)
	return serverPrompt{prompt: prompt, handler: s.handleRetentionStrategy}
}

func (s *Server) handleRetentionStrategy(_ context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	segment, err := promptArg(req, "create_retention_strategy", "customer_segment")
	if err != nil {
		return nil, err
	}
	return mcplib.NewGetPromptResult(
		"Segment retention strategy",
		[]mcplib.PromptMessage{
			userMessage(fmt.Sprintf("I need to create a retention strategy for the '%s' customer segment.", segment)),
			userMessage("Please analyze the segment characteristics and develop a comprehensive retention plan."),
			assistantMessage("I'll help you create a targeted retention strategy. Let me analyze the segment data first."),
			userMessage("Include specific tactics, timing, channels, and success metrics in your recommendations."),
		},
	), nil
}

// ─── customer_health_check ────────────────────────────────────────────────────

func (s *Server) promptHealthCheck() serverPrompt {
	prompt := mcplib.NewPrompt("customer_health_check",
		mcplib.WithPromptDescription("Perform a comprehensive customer health assessment."),
		mcplib.WithArgument("customer_id",
			mcplib.ArgumentDescription("Customer identifier to assess."),
			mcplib.RequiredArgument(),
		),
	)
	return serverPrompt{prompt: prompt, handler: s.handleHealthCheck}
}

func (s *Server) handleHealthCheck(_ context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	id, err := promptArg(req, "customer_health_check", "customer_id")
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf(`Perform a complete health check for customer %s.

Evaluate:
- Customer engagement levels
- Purchase behavior trends
- Risk indicators and warning signs
- Satisfaction and loyalty metrics
- Competitive threats
- Growth opportunities

Provide a health score (1-10) and specific action items to maintain or improve customer relationship health.`, id)

	return mcplib.NewGetPromptResult(
		"Customer health check",
		[]mcplib.PromptMessage{userMessage(text)},
	), nil
}
