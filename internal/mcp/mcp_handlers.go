package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kinetrace/kinetrace/core"
	"github.com/kinetrace/kinetrace/internal"
	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.ResultStore
}

func (h *toolHandler) handleAnalyzeRecording(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	kind := schema.TestKind(request.GetString("test", ""))
	if _, ok := schema.ValidTestKinds[kind]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid test kind: %q", kind)), nil
	}
	cfg.TestKind = kind

	if age := request.GetInt("age", 0); age > 0 {
		cfg.Profile.Age = age
	}
	if gender := request.GetString("gender", ""); gender != "" {
		if _, ok := schema.ValidGenders[gender]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid gender: %q", gender)), nil
		}
		cfg.Profile.Gender = gender
	}

	framesPath := request.GetString("frames_path", "")
	if framesPath == "" {
		return mcp.NewToolResultError("frames_path is required"), nil
	}

	frameFile, err := internal.LoadFrameFile(framesPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load frames: %v", err)), nil
	}
	if detector := internal.NewReportPresenceDetector(frameFile.Presence); detector != nil {
		cfg.Detector = detector
	}

	frames, err := core.CollectFrames(ctx, internal.NewFileFrameSource(frameFile.Frames), cfg.FrameBudget)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect frames: %v", err)), nil
	}

	result, err := core.Analyze(ctx, frames, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetNorms(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := schema.TestKind(request.GetString("test", ""))
	if _, ok := schema.ValidTestKinds[kind]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid test kind: %q", kind)), nil
	}

	age := request.GetInt("age", 0)
	if age <= 0 {
		return mcp.NewToolResultError("age must be at least 1"), nil
	}

	gender := request.GetString("gender", "")
	if _, ok := schema.ValidGenders[gender]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid gender: %q", gender)), nil
	}

	group := contract.AgeGroupFor(age)
	tiers, ok := h.baseCfg.Norms[kind][group][gender]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no norms for %s %s %s", kind, group, gender)), nil
	}

	payload := map[string]any{
		"test":     kind,
		"ageGroup": group,
		"gender":   gender,
		"tiers":    tiers,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", contract.DefaultHistoryLimit)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be at least 1"), nil
	}
	if limit > contract.MaxHistoryLimit {
		limit = contract.MaxHistoryLimit
	}

	records, err := h.store.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list history: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
