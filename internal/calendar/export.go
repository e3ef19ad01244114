package calendar

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Export is the persisted calendar document.
type Export struct {
	ExportedAt     time.Time `json:"exported_at"`
	TotalCampaigns int       `json:"total_campaigns"`
	Events         []Event   `json:"events"`
}

// ExportTo writes every event (including metrics) to an indented JSON file.
func (c *Calendar) ExportTo(path string) error {
	events := c.Events()

	doc := Export{
		ExportedAt:     time.Now(),
		TotalCampaigns: len(events),
		Events:         events,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode calendar export: %w", err)
	}

	log.Printf("Calendar: exported %d events to %s", len(events), path)
	return nil
}

// LoadExport reads a previously exported calendar document back.
func LoadExport(path string) (Export, error) {
	var doc Export

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read export file: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse export file: %w", err)
	}
	return doc, nil
}
