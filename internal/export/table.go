package export

import (
	"fmt"
	"io"

	"mortsim/internal/cli"
	"mortsim/internal/model"
)

// TableRenderer writes the bordered schedule table.
type TableRenderer struct {
	Every int // keep every n-th period; 0 or 1 keeps all
}

// Render implements Renderer.
func (r TableRenderer) Render(w io.Writer, l model.Ledger) error {
	if _, err := io.WriteString(w, cli.RenderTable(cli.ScheduleTable(l, r.Every))); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
