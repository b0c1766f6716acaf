// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/nightowl-tui/internal/history"
)

type jsonEntry struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// JSONExporter writes an array of entries.
type JSONExporter struct{}

// NewJSONExporter returns a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export implements Exporter.
func (e *JSONExporter) Export(entries []history.Entry) ([]byte, error) {
	out := make([]jsonEntry, len(entries))
	for i, entry := range entries {
		out[i] = jsonEntry{
			Question: entry.Question,
			Answer:   entry.Answer,
			AskedAt:  entry.AskedAt,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension implements Exporter.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
