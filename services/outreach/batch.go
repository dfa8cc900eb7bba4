package outreach

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// BatchEntry is one row of the input CSV: a website and/or a contact
// email. Website wins as the scrape target when both are set.
type BatchEntry struct {
	Website string
	Email   string
}

// Target is the raw input the normalizer should run on.
func (e BatchEntry) Target() string {
	if e.Website != "" {
		return e.Website
	}
	return e.Email
}

// ReadBatch loads targets from a CSV with `website` and/or `email`
// columns. Header matching is case-insensitive, rows without either
// value are skipped.
func ReadBatch(path string) ([]BatchEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read batch header: %w", err)
	}
	websiteCol, emailCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "website":
			websiteCol = i
		case "email":
			emailCol = i
		}
	}
	if websiteCol < 0 && emailCol < 0 {
		return nil, fmt.Errorf("batch csv has neither a website nor an email column")
	}

	var entries []BatchEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var entry BatchEntry
		if websiteCol >= 0 && websiteCol < len(record) {
			entry.Website = strings.TrimSpace(record[websiteCol])
		}
		if emailCol >= 0 && emailCol < len(record) {
			entry.Email = strings.TrimSpace(record[emailCol])
		}
		if entry.Target() == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
