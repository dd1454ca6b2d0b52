package cli

import (
	"github.com/haven-app/haven/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// A TUI session can mutate every collection; snapshot first.
	ctx.PerformAutomaticBackup()
	return tui.Run(ctx.Store, tui.StateDashboard)
}

type BreatheCmd struct{}

func (c *BreatheCmd) Run(ctx *Context) error {
	return tui.Run(ctx.Store, tui.StateBreathe)
}
