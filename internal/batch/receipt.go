// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ReceiptFileName is the receipt file written under the staging directory.
const ReceiptFileName = "receipt.toml"

type (
	// receiptDoc is the TOML wire shape of an installation receipt.
	receiptDoc struct {
		Status      string                   `toml:"status"`
		GeneratedAt time.Time                `toml:"generated_at"`
		Modules     map[string]receiptModule `toml:"modules"`
	}

	receiptModule struct {
		Status   string `toml:"status"`
		Attempts int    `toml:"attempts"`
		Reason   string `toml:"reason,omitempty"`
	}
)

// WriteReceipt records the run's per-module outcomes as a TOML document at
// path. Receipts are informational: a run's exit status never depends on
// whether the receipt could be written.
func WriteReceipt(path string, result Result) error {
	doc := receiptDoc{
		Status:      string(result.Status),
		GeneratedAt: time.Now().UTC(),
		Modules:     make(map[string]receiptModule, len(result.Outcomes)),
	}
	for _, outcome := range result.Outcomes {
		doc.Modules[outcome.Module.String()] = receiptModule{
			Status:   string(outcome.Status),
			Attempts: outcome.Attempts,
			Reason:   outcome.Reason,
		}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding receipt: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating receipt directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing receipt: %w", err)
	}
	return nil
}
