// Package export renders layout history for display and flat-file download.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"homedesignai/internal/design"
	"homedesignai/internal/storage"
)

// Record is one exported layout. It carries every request field plus both
// result fields so a history file can be re-imported without loss.
type Record struct {
	ID              string         `json:"id"`
	Request         design.Request `json:"request"`
	TextDescription string         `json:"text_description"`
	ImageReference  string         `json:"image_reference"`
	TextProvider    string         `json:"text_provider,omitempty"`
	ImageProvider   string         `json:"image_provider,omitempty"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// BuildRecords converts stored layouts (newest first) into export records in
// generation order.
func BuildRecords(layouts []storage.Layout) []Record {
	records := make([]Record, 0, len(layouts))
	for i := len(layouts) - 1; i >= 0; i-- {
		l := layouts[i]
		records = append(records, Record{
			ID:              l.ID,
			Request:         l.Request,
			TextDescription: l.Description,
			ImageReference:  l.ImageURL,
			TextProvider:    l.TextProvider,
			ImageProvider:   l.ImageProvider,
			GeneratedAt:     l.CreatedAt,
		})
	}
	return records
}

// EncodeJSONL serializes records as JSON Lines, one record per layout.
func EncodeJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("encode record %s: %w", record.ID, err)
		}
	}
	return nil
}

// WriteJSONL serializes records to disk as JSON Lines.
func WriteJSONL(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSONL(file, records)
}

// ReadJSONL parses a JSON Lines export back into records.
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("parse record: %w", err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return records, nil
}

// FormatText renders one record as the human-readable download artifact.
func FormatText(record Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Layout %s (generated %s)\n", record.ID, record.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Room: %s | Style: %s | Budget: %s | Size: %s\n",
		record.Request.RoomType, record.Request.Style, record.Request.BudgetRange, record.Request.SizeCategory)
	if len(record.Request.Colors) > 0 {
		fmt.Fprintf(&b, "Colors: %s\n", strings.Join(record.Request.Colors, ", "))
	}
	if len(record.Request.Features) > 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(record.Request.Features, ", "))
	}
	if record.Request.Requirements != "" {
		fmt.Fprintf(&b, "Notes: %s\n", record.Request.Requirements)
	}
	b.WriteString("\n")
	if record.TextDescription != "" {
		fmt.Fprintf(&b, "%s\n", record.TextDescription)
	} else {
		b.WriteString("No layout description was generated.\n")
	}
	if record.ImageReference != "" {
		fmt.Fprintf(&b, "\nImage: %s\n", record.ImageReference)
	}
	return b.String()
}

// EncodeText renders every record into one flat text file, in order.
func EncodeText(w io.Writer, records []Record) error {
	for idx, record := range records {
		if idx > 0 {
			if _, err := io.WriteString(w, "\n----------------------------------------\n\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, FormatText(record)); err != nil {
			return err
		}
	}
	return nil
}
