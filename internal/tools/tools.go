// Package tools binds the service operations to the engine's transports:
// MCP tool definitions with JSON-schema parameters, and JSON-RPC methods for
// embedding hosts. Both expose the same operation table.
package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docbench/engine/internal/errinfo"
	"docbench/engine/internal/rpc"
	"docbench/engine/internal/service"
)

type operation struct {
	tool mcp.Tool
	call func(context.Context, json.RawMessage) (any, *errinfo.ErrorInfo)
}

func stringItems() mcp.PropertyOption {
	return mcp.Items(map[string]any{"type": "string"})
}

func operations(svc *service.Service) []operation {
	return []operation{
		{
			tool: mcp.NewTool("document_create",
				mcp.WithDescription("Create a blank Word document. Adds a Title paragraph when a title is given."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Target file path; .docx is appended when no extension is given")),
				mcp.WithString("title", mcp.Description("Document title for core properties and the opening Title paragraph")),
			),
			call: svc.DocumentCreate,
		},
		{
			tool: mcp.NewTool("search_and_replace",
				mcp.WithDescription("Replace every occurrence of a text across the document, including table cells. Matches spanning run boundaries are handled; table-of-contents paragraphs are skipped. Zero replacements is a success."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("find", mcp.Required(), mcp.Description("Text to find (case-sensitive)")),
				mcp.WithString("replace", mcp.Required(), mcp.Description("Replacement text")),
			),
			call: svc.SearchAndReplace,
		},
		{
			tool: mcp.NewTool("replace_paragraph",
				mcp.WithDescription("Replace one paragraph's text in place by body paragraph index. Paragraph count and numbering survive. Optional inline markup: ***bold italic***, **bold**, *italic*."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based body paragraph index")),
				mcp.WithString("text", mcp.Required(), mcp.Description("Replacement text")),
				mcp.WithBoolean("preserve_style", mcp.Description("Keep the paragraph's style (default true)")),
				mcp.WithBoolean("parse_markup", mcp.Description("Interpret inline emphasis markup (default false)")),
			),
			call: svc.ReplaceParagraph,
		},
		{
			tool: mcp.NewTool("replace_paragraph_range",
				mcp.WithDescription("Atomically replace body paragraphs [start, end] with new paragraphs. The range is validated before any mutation."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("First paragraph index (inclusive)")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Last paragraph index (inclusive)")),
				mcp.WithArray("paragraphs", mcp.Required(), mcp.Description("Replacement paragraph texts"), stringItems()),
				mcp.WithString("style", mcp.Description("Style display name for the new paragraphs; must be defined in the document")),
				mcp.WithBoolean("preserve_style", mcp.Description("Carry the first replaced paragraph's style (default false)")),
			),
			call: svc.ReplaceParagraphRange,
		},
		{
			tool: mcp.NewTool("delete_paragraph_range",
				mcp.WithDescription("Delete body paragraphs [start, end]. The range is validated before any mutation."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("First paragraph index (inclusive)")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Last paragraph index (inclusive)")),
			),
			call: svc.DeleteParagraphRange,
		},
		{
			tool: mcp.NewTool("replace_section",
				mcp.WithDescription("Replace the content under a heading, up to the next heading of the same or shallower level. The heading itself is preserved. Header matching is case-insensitive and restricted to heading-styled paragraphs."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("header", mcp.Required(), mcp.Description("Heading text to locate")),
				mcp.WithArray("paragraphs", mcp.Required(), mcp.Description("New section content"), stringItems()),
				mcp.WithString("style", mcp.Description("Style display name for the new paragraphs; must be defined in the document")),
			),
			call: svc.ReplaceSection,
		},
		{
			tool: mcp.NewTool("delete_section",
				mcp.WithDescription("Delete the content under a heading, keeping the heading paragraph."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("header", mcp.Required(), mcp.Description("Heading text to locate")),
			),
			call: svc.DeleteSection,
		},
		{
			tool: mcp.NewTool("replace_between_anchors",
				mcp.WithDescription("Replace everything strictly between two anchor paragraphs, tables included. Both anchors are preserved. Anchor matching is exact-then-substring on normalized text, case-sensitive."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("start_anchor", mcp.Required(), mcp.Description("Text of the opening anchor paragraph")),
				mcp.WithString("end_anchor", mcp.Required(), mcp.Description("Text of the closing anchor paragraph, after the start anchor")),
				mcp.WithArray("paragraphs", mcp.Required(), mcp.Description("New interior content"), stringItems()),
				mcp.WithString("style", mcp.Description("Style display name for the new paragraphs; must be defined in the document")),
			),
			call: svc.ReplaceBetweenAnchors,
		},
		{
			tool: mcp.NewTool("insert_paragraph",
				mcp.WithDescription("Insert a paragraph before/after an anchor paragraph (by text or index), or append at the end."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("text", mcp.Required(), mcp.Description("Paragraph text")),
				mcp.WithString("anchor_text", mcp.Description("Insert relative to the first paragraph containing this text")),
				mcp.WithNumber("anchor_index", mcp.Description("Insert relative to this body paragraph index")),
				mcp.WithString("position", mcp.Description("'before' or 'after' the anchor (default after)")),
				mcp.WithString("style", mcp.Description("Style display name; must be defined in the document")),
				mcp.WithNumber("copy_format_from", mcp.Description("Copy character formatting from this paragraph's first run")),
			),
			call: svc.InsertParagraph,
		},
		{
			tool: mcp.NewTool("insert_heading",
				mcp.WithDescription("Insert a heading paragraph at the given level (1-9)."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("text", mcp.Required(), mcp.Description("Heading text")),
				mcp.WithNumber("level", mcp.Description("Heading level, default 1")),
				mcp.WithString("anchor_text", mcp.Description("Insert relative to the first paragraph containing this text")),
				mcp.WithNumber("anchor_index", mcp.Description("Insert relative to this body paragraph index")),
				mcp.WithString("position", mcp.Description("'before' or 'after' the anchor (default after)")),
			),
			call: svc.InsertHeading,
		},
		{
			tool: mcp.NewTool("insert_list",
				mcp.WithDescription("Insert a bulleted or numbered list, one paragraph per item."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithArray("items", mcp.Required(), mcp.Description("List item texts"), stringItems()),
				mcp.WithString("list_type", mcp.Description("'bullet' (default) or 'number'")),
				mcp.WithString("anchor_text", mcp.Description("Insert relative to the first paragraph containing this text")),
				mcp.WithNumber("anchor_index", mcp.Description("Insert relative to this body paragraph index")),
				mcp.WithString("position", mcp.Description("'before' or 'after' the anchor (default after)")),
			),
			call: svc.InsertList,
		},
		{
			tool: mcp.NewTool("get_document_info",
				mcp.WithDescription("Core properties, word/paragraph/table counts, and optionally the heading outline."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithBoolean("include_outline", mcp.Description("Include heading outline with indices and levels")),
			),
			call: svc.GetDocumentInfo,
		},
		{
			tool: mcp.NewTool("get_document_text",
				mcp.WithDescription("All document text: body paragraphs, then table-cell paragraphs, newline-joined."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
			),
			call: svc.GetDocumentText,
		},
		{
			tool: mcp.NewTool("get_document_structure",
				mcp.WithDescription("Paragraph previews with styles and table dimensions with cell previews."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
			),
			call: svc.GetDocumentStructure,
		},
		{
			tool: mcp.NewTool("get_document_xml",
				mcp.WithDescription("Raw word/document.xml for structure debugging."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
			),
			call: svc.GetDocumentXML,
		},
		{
			tool: mcp.NewTool("get_paragraph",
				mcp.WithDescription("Text, style and heading flag of one body paragraph."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based body paragraph index")),
			),
			call: svc.GetParagraph,
		},
		{
			tool: mcp.NewTool("get_paragraph_range",
				mcp.WithDescription("Body paragraphs [start, end] inclusive."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithNumber("start", mcp.Required(), mcp.Description("First paragraph index (inclusive)")),
				mcp.WithNumber("end", mcp.Required(), mcp.Description("Last paragraph index (inclusive)")),
			),
			call: svc.GetParagraphRange,
		},
		{
			tool: mcp.NewTool("get_section",
				mcp.WithDescription("Section content under a heading, with boundary indices."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("header", mcp.Required(), mcp.Description("Heading text to locate")),
				mcp.WithBoolean("include_heading", mcp.Description("Include the heading paragraph itself (default true)")),
			),
			call: svc.GetSection,
		},
		{
			tool: mcp.NewTool("find_text",
				mcp.WithDescription("Find occurrences of a text with paragraph index or table location, character offset and surrounding context."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
				mcp.WithString("query", mcp.Required(), mcp.Description("Text to find")),
				mcp.WithBoolean("match_case", mcp.Description("Case-sensitive matching (default true)")),
				mcp.WithBoolean("whole_word", mcp.Description("Match whole words only (default false)")),
				mcp.WithBoolean("include_paragraph_text", mcp.Description("Include the full paragraph text per occurrence")),
			),
			call: svc.FindText,
		},
		{
			tool: mcp.NewTool("get_styles",
				mcp.WithDescription("Style ID, display name and type for every style the document defines."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
			),
			call: svc.GetStyles,
		},
	}
}

// RegisterMCP adds every operation as an MCP tool.
func RegisterMCP(srv *server.MCPServer, svc *service.Service) {
	for _, op := range operations(svc) {
		srv.AddTool(op.tool, mcpHandler(op.call))
	}
}

func mcpHandler(call func(context.Context, json.RawMessage) (any, *errinfo.ErrorInfo)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, errInfo := call(ctx, params)
		if errInfo != nil {
			data, _ := json.Marshal(errInfo)
			return mcp.NewToolResultError(string(data)), nil
		}
		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// RegisterRPC adds every operation as a JSON-RPC method of the same name.
func RegisterRPC(srv *rpc.Server, svc *service.Service) {
	for _, op := range operations(svc) {
		call := op.call
		srv.Register(op.tool.Name, func(ctx context.Context, params json.RawMessage) (any, *rpc.Error) {
			result, errInfo := call(ctx, params)
			if errInfo != nil {
				return nil, &rpc.Error{Message: errInfo.ErrorCode, Data: errInfo}
			}
			return result, nil
		})
	}
}
