package outreach

import (
	"encoding/csv"
	"fmt"
	"os"
)

var optionLabels = []string{"A", "B", "C"}

// Report writes the batch result CSV incrementally, one flushed row
// per processed target so a killed run still leaves usable output.
type Report struct {
	file   *os.File
	writer *csv.Writer
}

// Row is one target's outcome in the report.
type Row struct {
	Input        string
	ContactEmail string
	BusinessName string
	Status       string
	PainPoint    string
	Emails       []EmailOption
}

func NewReport(path string) (*Report, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	writer := csv.NewWriter(file)
	header := []string{"Input", "Contact Email", "Business Name", "Status", "Pain Point"}
	for _, label := range optionLabels {
		header = append(
			header,
			"Angle "+label,
			"Subject "+label,
			"Email "+label,
		)
	}
	err = writer.Write(header)
	if err != nil {
		file.Close()
		return nil, err
	}
	writer.Flush()

	return &Report{file: file, writer: writer}, nil
}

func (r *Report) Append(row Row) error {
	record := []string{
		row.Input,
		row.ContactEmail,
		row.BusinessName,
		row.Status,
		orNA(row.PainPoint),
	}
	for i := range optionLabels {
		if i < len(row.Emails) {
			opt := row.Emails[i]
			record = append(record, orNA(opt.Angle), orNA(opt.Subject), orNA(opt.Body))
		} else {
			record = append(record, "N/A", "N/A", "N/A")
		}
	}
	err := r.writer.Write(record)
	if err != nil {
		return err
	}
	r.writer.Flush()
	return r.writer.Error()
}

func (r *Report) Close() error {
	r.writer.Flush()
	err := r.writer.Error()
	closeErr := r.file.Close()
	if err != nil {
		return err
	}
	return closeErr
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
