package commands

import (
	"context"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

// Step records one command of a navigation run
type Step struct {
	Command domain.Command
	Effect  domain.Effect
	Active  string // path of the active node after the command
}

// NavigateResult holds the outcome of a navigation run
type NavigateResult struct {
	Steps  []Step
	Active *domain.Node
}

// Changed counts the steps that were not no-ops
func (r *NavigateResult) Changed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Effect.IsNoop() {
			n++
		}
	}
	return n
}

// NavigateCommand replays a command sequence against an engine
type NavigateCommand struct {
	engine   *application.Engine
	Commands []domain.Command
}

// NewNavigateCommand creates a new NavigateCommand
func NewNavigateCommand(engine *application.Engine, cmds ...domain.Command) *NavigateCommand {
	return &NavigateCommand{
		engine:   engine,
		Commands: cmds,
	}
}

// Execute dispatches every command in order. A cancelled context stops the
// run between commands; the steps applied so far are kept.
func (c *NavigateCommand) Execute(ctx context.Context) (*NavigateResult, error) {
	result := &NavigateResult{Steps: make([]Step, 0, len(c.Commands))}

	for _, cmd := range c.Commands {
		if err := ctx.Err(); err != nil {
			result.Active = c.engine.Active()
			return result, err
		}

		eff := c.engine.Dispatch(cmd)
		step := Step{Command: cmd, Effect: eff}
		if active := c.engine.Active(); active != nil {
			step.Active = active.Path()
		}
		result.Steps = append(result.Steps, step)
	}

	result.Active = c.engine.Active()
	return result, nil
}
