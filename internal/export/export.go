// Package export writes amortization ledgers in table, CSV, and JSON form.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mortsim/internal/model"
)

// Renderer writes a ledger to w.
type Renderer interface {
	Render(w io.Writer, l model.Ledger) error
}

// New returns the renderer for a format name.
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "table", "":
		return TableRenderer{}, nil
	case "csv":
		return CSVRenderer{}, nil
	case "json":
		return JSONRenderer{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want table, csv, or json)", format)
	}
}

// JSONRenderer writes a LedgerDocument.
type JSONRenderer struct {
	Indent string
}

// Render implements Renderer.
func (r JSONRenderer) Render(w io.Writer, l model.Ledger) error {
	enc := json.NewEncoder(w)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	if err := enc.Encode(NewLedgerDocument(l)); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	return nil
}
