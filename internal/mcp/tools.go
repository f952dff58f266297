// Package mcp exposes function extraction as MCP tools over stdio, so agent
// clients can pull function context without running the HTTP service.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"codectx/internal/extractor"
	"codectx/internal/fetch"
)

// NewServer builds an MCP server with the extraction tools registered.
func NewServer(e *extractor.Extractor, f *fetch.Fetcher, version string) *server.MCPServer {
	s := server.NewMCPServer("codectx", version)
	AddExtractFunctionTool(s, e, f)
	AddCompressFunctionTool(s, e, f)
	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client hangs up.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// AddExtractFunctionTool registers the extract_function tool.
// This function is composable - it can be combined with other tool registrations.
func AddExtractFunctionTool(s *server.MCPServer, e *extractor.Extractor, f *fetch.Fetcher) {
	tool := mcp.NewTool(
		"extract_function",
		mcp.WithDescription("Extract the full source text of the function containing a given line. Accepts a local path or URL plus a 1-based line number; returns the dedented function text and its span."),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("File path or URL of the source file (file://, http(s), GitHub blob URLs supported)")),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line number inside the function of interest")),
	)

	s.AddTool(tool, createExtractHandler(e, f, false))
}

// AddCompressFunctionTool registers the compress_function tool.
func AddCompressFunctionTool(s *server.MCPServer, e *extractor.Extractor, f *fetch.Fetcher) {
	tool := mcp.NewTool(
		"compress_function",
		mcp.WithDescription("Extract a semantically compacted rendering of the function containing a given line: control flow and lines touching the identifiers of interest survive, the rest collapses into placeholder markers."),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("File path or URL of the source file")),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line number inside the function of interest")),
		mcp.WithArray("identifiers",
			mcp.Description("Identifier names whose lines must survive compaction. Empty means every locally bound name.")),
	)

	s.AddTool(tool, createExtractHandler(e, f, true))
}

// createExtractHandler creates the shared handler for both tools; compress
// selects compaction over verbatim extraction.
func createExtractHandler(e *extractor.Extractor, f *fetch.Fetcher, compress bool) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		location, ok := argsMap["location"].(string)
		if !ok || location == "" {
			return mcp.NewToolResultError("location parameter is required"), nil
		}

		lineArg, ok := argsMap["line"].(float64)
		if !ok || lineArg < 1 {
			return mcp.NewToolResultError("line parameter is required and must be positive"), nil
		}
		line := int(lineArg)

		var identifiers []string
		if raw, ok := argsMap["identifiers"].([]interface{}); ok {
			identifiers = make([]string, 0, len(raw))
			for _, v := range raw {
				if s, ok := v.(string); ok {
					identifiers = append(identifiers, s)
				}
			}
		}

		src, err := f.Load(ctx, location)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var payload any
		if compress {
			payload, err = e.CompressFunction(src.Text, src.LanguageHint, line, &extractor.CompressOptions{
				Identifiers:            identifiers,
				PreserveInlineComments: true,
			})
		} else {
			payload, err = e.ExtractFunction(src.Text, src.LanguageHint, line)
		}
		if err != nil {
			// extraction misses are tool-level errors the client can act on
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
