package command

import (
	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/knowledge"
)

func NewCommands(docs *knowledge.Store, sessions core.SessionStore) []core.Command {
	return []core.Command{
		NewClearCommand(sessions),
		NewDocsCommand(docs),
		NewSearchCommand(docs),
	}
}
