// Package mcp exposes the knowledge base to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/knowledge"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/pkg/log"
)

const (
	ToolSearchKnowledge = "search_knowledge"
	ToolListDocuments   = "list_documents"
	ToolAskAssistant    = "ask_assistant"

	defaultSearchLimit = assistant.MaxContextDocuments
	searchPreviewChars = 300
)

type Server struct {
	mcp      *server.MCPServer
	docs     *knowledge.Store
	pipeline *assistant.Pipeline
}

// NewServer registers the knowledge tools. ask_assistant is only offered when
// pipeline is non-nil.
func NewServer(docs *knowledge.Store, pipeline *assistant.Pipeline) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(core.BotName, core.Version, server.WithToolCapabilities(false)),
		docs:     docs,
		pipeline: pipeline,
	}

	s.mcp.AddTool(mcpproto.NewTool(ToolSearchKnowledge,
		mcpproto.WithDescription("Search the assessment design knowledge base and return the most relevant documents with their scores."),
		mcpproto.WithString("query", mcpproto.Required(), mcpproto.Description("Question or keywords to search for")),
		mcpproto.WithNumber("limit", mcpproto.Description("Maximum number of documents to return (default 3)")),
	), s.searchKnowledge)

	s.mcp.AddTool(mcpproto.NewTool(ToolListDocuments,
		mcpproto.WithDescription("List every document in the knowledge base with its title and category."),
	), s.listDocuments)

	if pipeline != nil {
		s.mcp.AddTool(mcpproto.NewTool(ToolAskAssistant,
			mcpproto.WithDescription("Ask the assessment design assistant a question. The answer is grounded in the knowledge base."),
			mcpproto.WithString("question", mcpproto.Required(), mcpproto.Description("The question to answer")),
		), s.askAssistant)
	}

	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio speaks MCP over in and out until ctx is cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Info().Int("documents", s.docs.Len()).Msg("mcp server listening on stdio")
	if err := server.NewStdioServer(s.mcp).Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) searchKnowledge(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	scored := assistant.ScoreDocuments(query, s.docs)
	log.FromCtx(ctx).Debug().Str("query", query).Int("matches", len(scored)).Msg("mcp search")
	if len(scored) == 0 {
		return mcpproto.NewToolResultText("No relevant documents found."), nil
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return mcpproto.NewToolResultText(FormatResults(scored)), nil
}

// FormatResults renders scored documents as a numbered plain-text list.
func FormatResults(scored []core.ScoredDocument) string {
	var b strings.Builder
	for i, sd := range scored {
		fmt.Fprintf(&b, "%d. %s (%s, score %d)\n", i+1, sd.Title, sd.Category, sd.Score)
		fmt.Fprintf(&b, "   key: %s\n", sd.Key)
		preview := strings.Join(strings.Fields(assistant.Preview(sd.Content, searchPreviewChars)), " ")
		if preview != "" {
			fmt.Fprintf(&b, "   %s\n", preview)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Server) listDocuments(_ context.Context, _ mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	if s.docs.Len() == 0 {
		return mcpproto.NewToolResultText("The knowledge base is empty."), nil
	}

	var b strings.Builder
	for _, doc := range s.docs.Documents() {
		fmt.Fprintf(&b, "%s | %s | %s\n", doc.Key, doc.Title, doc.Category)
	}
	return mcpproto.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

func (s *Server) askAssistant(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(question) == "" {
		return mcpproto.NewToolResultError("question cannot be empty"), nil
	}
	return mcpproto.NewToolResultText(s.pipeline.Respond(ctx, question, nil)), nil
}
