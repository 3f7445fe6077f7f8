// Package command handles slash commands typed into a chat.
package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jkruckivey/assessments/internal/core"
)

type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

// New registers commands and a /help command listing them.
func New(commands []core.Command) *Router {
	r := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
	}
	r.commands["help"] = &helpCommand{router: r}
	return r
}

// Execute runs input when it is a slash command. The bool reports whether input
// was a command at all; plain text is left for the assistant.
func (r *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	// "/search@assessbot" in group chats
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	args := parts[1:]

	cmd, ok := r.commands[strings.ToLower(name)]
	if !ok {
		return r.formatter.Combine(
			r.formatter.Error(fmt.Errorf("unknown command: /%s", name)),
			r.formatter.Tip("Send /help to see what I can do."),
		), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return r.formatter.Error(err), true
	}
	return result, true
}

// ListCommands returns the registered commands sorted by name.
func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

type helpCommand struct {
	router *Router
}

func (c *helpCommand) Name() string        { return "help" }
func (c *helpCommand) Description() string { return "Show available commands" }

func (c *helpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	f := c.router.formatter
	items := make([]string, 0, len(c.router.commands))
	for _, cmd := range c.router.ListCommands() {
		items = append(items, fmt.Sprintf("/%s - %s", cmd.Name(), cmd.Description()))
	}
	return f.Combine(
		f.Info("Commands"),
		f.List(items),
		f.Tip("Anything that is not a command is answered by the assistant."),
	), nil
}
