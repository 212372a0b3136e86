// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Kinetrace MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.ResultStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Kinetrace Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: analyze_recording ---
	s.AddTool(mcp.NewTool("analyze_recording",
		mcp.WithDescription("Analyze a decoded frame-signal recording of a fitness test: repetitions, movement quality, integrity checks and benchmark."),
		mcp.WithString("frames_path", mcp.Description("Path to the JSON frame-signal file produced by the capture tool."), mcp.Required()),
		mcp.WithString("test", mcp.Description("Fitness test kind."), mcp.Enum("pushup", "situp", "squat", "vertical_jump", "broad_jump", "plank"), mcp.Required()),
		mcp.WithNumber("age", mcp.Description("Athlete age in years for benchmarking.")),
		mcp.WithString("gender", mcp.Description("Athlete gender for benchmarking."), mcp.Enum("male", "female")),
	), h.handleAnalyzeRecording)

	// --- 2. Tool: get_norms ---
	s.AddTool(mcp.NewTool("get_norms",
		mcp.WithDescription("Look up the benchmark norm thresholds for a fitness test and demographic."),
		mcp.WithString("test", mcp.Description("Fitness test kind."), mcp.Enum("pushup", "situp", "squat", "vertical_jump", "broad_jump", "plank"), mcp.Required()),
		mcp.WithNumber("age", mcp.Description("Athlete age in years."), mcp.Required()),
		mcp.WithString("gender", mcp.Description("Athlete gender."), mcp.Enum("male", "female"), mcp.Required()),
	), h.handleGetNorms)

	// --- 3. Tool: list_history ---
	s.AddTool(mcp.NewTool("list_history",
		mcp.WithDescription("List recently stored assessment results, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return.")),
	), h.handleListHistory)

	return s
}

// StartMCPServer starts the Kinetrace MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.ResultStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
