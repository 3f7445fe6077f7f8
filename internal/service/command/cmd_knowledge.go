package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/knowledge"
	"github.com/jkruckivey/assessments/internal/service/assistant"
)

type DocsCommand struct {
	docs      *knowledge.Store
	formatter *ResponseFormatter
}

func NewDocsCommand(docs *knowledge.Store) core.Command {
	return &DocsCommand{docs: docs, formatter: NewResponseFormatter()}
}

func (c *DocsCommand) Name() string {
	return "docs"
}

func (c *DocsCommand) Description() string {
	return "List the knowledge base documents"
}

func (c *DocsCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	if c.docs.Len() == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Knowledge Base"),
			c.formatter.Label("Status", "No documents loaded."),
			c.formatter.Tip("Check KNOWLEDGE_PATH points at the guidance folder"),
		), nil
	}

	items := make([]string, 0, c.docs.Len())
	for _, doc := range c.docs.Documents() {
		items = append(items, fmt.Sprintf("**%s** (%s)", doc.Title, doc.Category))
	}
	return c.formatter.Combine(
		c.formatter.Info("Knowledge Base"),
		c.formatter.Label("Documents", fmt.Sprintf("%d", c.docs.Len())),
		c.formatter.List(items),
	), nil
}

type SearchCommand struct {
	docs      *knowledge.Store
	formatter *ResponseFormatter
}

func NewSearchCommand(docs *knowledge.Store) core.Command {
	return &SearchCommand{docs: docs, formatter: NewResponseFormatter()}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Show which documents a question matches"
}

func (c *SearchCommand) Execute(_ context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/search <question>"),
			c.formatter.Tip("Try /search rubric feedback"),
		), nil
	}

	scored := assistant.ScoreDocuments(strings.Join(args, " "), c.docs)
	if len(scored) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Search"),
			c.formatter.Label("Status", "No matching documents."),
		), nil
	}

	if len(scored) > assistant.MaxContextDocuments {
		scored = scored[:assistant.MaxContextDocuments]
	}
	items := make([]string, len(scored))
	for i, sd := range scored {
		items[i] = fmt.Sprintf("**%s** (%s), score %d", sd.Title, sd.Category, sd.Score)
	}
	return c.formatter.Combine(
		c.formatter.Info("Search"),
		c.formatter.List(items),
	), nil
}
