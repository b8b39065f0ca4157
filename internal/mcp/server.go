// Package mcp provides a Model Context Protocol server for Coldtrail.
//
// It exposes the extraction pipeline as MCP tools (summarize_cases,
// cross_check_cases) and the neighborhood centroid table as a resource.
// Served over stdio for MCP clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ppiankov/coldtrail/internal/geo"
	"github.com/ppiankov/coldtrail/internal/model"
	"github.com/ppiankov/coldtrail/internal/pipeline"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Config  *model.Config
	Name    string // server name advertised to MCP clients
	Version string // version string for MCP server info
}

// NewServer creates a configured MCP server with all Coldtrail tools and
// resources. Each tool call builds its own pipeline so per-call overrides
// (year, threshold) never leak between calls.
func NewServer(cfg ServerConfig) *server.MCPServer {
	name := cfg.Name
	if name == "" {
		name = "Coldtrail"
	}
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		name,
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerSummarizeTool(s, cfg.Config)
	registerCrossCheckTool(s, cfg.Config)
	registerNeighborhoodsResource(s)

	return s
}

// --- Tools ---

func registerSummarizeTool(s *server.MCPServer, cfg *model.Config) {
	tool := mcp.NewTool("summarize_cases",
		mcp.WithDescription("Scan one law-enforcement bulletin or cold-case archive page, extract structured case records for the target year, and return the canonical record list with statistics. Records are extracted free text; every field may be an unknown sentinel."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Source page URL to scan"),
		),
		mcp.WithNumber("year",
			mcp.Description(fmt.Sprintf("Target year for extraction (default: %d)", cfg.Extract.TargetYear)),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return (default: all, max: 100). Statistics always cover the full list."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := req.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		callCfg := *cfg
		if y, err := req.RequireFloat("year"); err == nil && y >= 1900 && y <= 2100 {
			callCfg.Extract.TargetYear = int(y)
		}

		limit := 0
		if l, err := req.RequireFloat("limit"); err == nil && l > 0 {
			limit = int(l)
			if limit > 100 {
				limit = 100
			}
		}

		p := pipeline.NewPipeline(&callCfg)
		report, err := p.ScanURL(ctx, url)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scan error: %v", err)), nil
		}

		if limit > 0 && len(report.Records) > limit {
			report.Records = report.Records[:limit]
		}

		data, _ := json.MarshalIndent(report, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerCrossCheckTool(s *server.MCPServer, cfg *model.Config) {
	tool := mcp.NewTool("cross_check_cases",
		mcp.WithDescription("Scan a police bulletin page and a cold-case archive page, then cross-reference their records. Returns ranked match candidates with scores, confidence tiers, and per-rule reasons. Candidates are textual correspondence for human review, never identifications."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("bulletin_url",
			mcp.Required(),
			mcp.Description("Police bulletin page URL (primary source)"),
		),
		mcp.WithString("archive_url",
			mcp.Required(),
			mcp.Description("Cold-case archive page URL (secondary source)"),
		),
		mcp.WithNumber("threshold",
			mcp.Description(fmt.Sprintf("Match score threshold in (0, 1]; pairs at or below are discarded (default: %.2f)", cfg.Match.Threshold)),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bulletinURL, err := req.RequireString("bulletin_url")
		if err != nil {
			return mcp.NewToolResultError("bulletin_url is required"), nil
		}
		archiveURL, err := req.RequireString("archive_url")
		if err != nil {
			return mcp.NewToolResultError("archive_url is required"), nil
		}

		callCfg := *cfg
		if th, err := req.RequireFloat("threshold"); err == nil && th > 0 && th <= 1 {
			callCfg.Match.Threshold = th
		}

		p := pipeline.NewPipeline(&callCfg)
		report, err := p.CrossCheck(ctx, bulletinURL, archiveURL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cross-check error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(report, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerNeighborhoodsResource(s *server.MCPServer) {
	resource := mcp.NewResource(
		"coldtrail://neighborhoods",
		"Boston Neighborhood Centroids",
		mcp.WithResourceDescription("Neighborhood centroid coordinates used for geocoding fallback and hotspot statistics."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(geo.NeighborhoodCenters(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal centroids: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
