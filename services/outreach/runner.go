package outreach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"outreach-backend/lib/genai"
	"outreach-backend/lib/normalize"
	"outreach-backend/lib/telemetry"
	"outreach-backend/services/intel"
)

var tracer = telemetry.Tracer("outreach.services.outreach")

// ErrPoolExhausted aborts the whole batch: if every credential is out
// of quota, hammering the backend for the remaining rows only makes
// the quota situation worse.
var ErrPoolExhausted = errors.New("credential pool exhausted, batch aborted")

// Runner drives the two pipeline phases over batch entries.
type Runner struct {
	Scanner intel.Scanner
	Store   intel.Service
	Invoker *genai.Invoker
	// drafted .eml files land here
	DraftDir string
	// degraded-mode prompt artifacts land here
	ArtifactDir string
}

// ScanBatch runs the scrape phase for every entry. Per-row failures
// are logged and skipped, a bad row should not kill the batch.
func (r Runner) ScanBatch(ctx context.Context, entries []BatchEntry) error {
	ctx, span := tracer.Start(ctx, "ScanBatch")
	defer span.End()

	for i, entry := range entries {
		target := normalize.Input(entry.Target())
		if !target.Valid {
			slog.WarnContext(ctx, "skipping invalid batch entry", "row", i+1, "input", entry.Target())
			continue
		}
		slog.InfoContext(ctx, "scanning", "row", i+1, "domain", target.Domain)
		_, err := r.Scanner.Scan(ctx, target)
		if err != nil {
			slog.ErrorContext(ctx, "scan failed", "domain", target.Domain, "err", err)
		}
	}
	return nil
}

// GenerateBatch runs the generation phase against stored intelligence,
// appending one report row per entry. Pool exhaustion persists the
// rendered prompt as an artifact and aborts with ErrPoolExhausted.
func (r Runner) GenerateBatch(ctx context.Context, entries []BatchEntry, reportPath string) error {
	ctx, span := tracer.Start(ctx, "GenerateBatch")
	defer span.End()

	report, err := NewReport(reportPath)
	if err != nil {
		return err
	}
	defer report.Close()

	for i, entry := range entries {
		target := normalize.Input(entry.Target())
		row := Row{
			Input:        entry.Target(),
			ContactEmail: entry.Email,
			BusinessName: target.BusinessName,
		}
		if !target.Valid {
			row.Status = "Invalid Input"
			if err := report.Append(row); err != nil {
				return err
			}
			continue
		}

		slog.InfoContext(ctx, "generating", "row", i+1, "domain", target.Domain)
		row, abort := r.generateRow(ctx, target, row)
		if err := report.Append(row); err != nil {
			return err
		}
		if abort {
			slog.ErrorContext(ctx, "all credentials exhausted, aborting batch", "row", i+1)
			return ErrPoolExhausted
		}
	}
	return nil
}

// Run is the full pipeline, scan then generate.
func (r Runner) Run(ctx context.Context, entries []BatchEntry, reportPath string) error {
	err := r.ScanBatch(ctx, entries)
	if err != nil {
		return err
	}
	return r.GenerateBatch(ctx, entries, reportPath)
}

func (r Runner) generateRow(ctx context.Context, target normalize.Target, row Row) (Row, bool) {
	stored, err := r.Store.Get(ctx, target.Domain)
	if errors.Is(err, intel.ErrNotScanned) {
		row.Status = "Missing Intelligence"
		return row, false
	}
	if err != nil {
		row.Status = fmt.Sprintf("Error: %s", err)
		return row, false
	}

	outcome := r.Invoker.Invoke(ctx, stored.Package)
	switch outcome.Status {
	case genai.StatusExhausted:
		row.Status = "Aborted: Pool Exhausted"
		err := r.persistPromptArtifact(ctx, target.Domain, outcome.LastPrompt)
		if err != nil {
			slog.ErrorContext(ctx, "failed to persist prompt artifact", "domain", target.Domain, "err", err)
		}
		return row, true

	case genai.StatusFatal:
		row.Status = fmt.Sprintf("Gen Failed: %s", outcome.Reason)
		return row, false
	}

	reply, err := DecodeReply(outcome.Data)
	if err != nil {
		row.Status = fmt.Sprintf("Gen Failed: %s", err)
		return row, false
	}

	row.Status = "Success"
	row.PainPoint = reply.OpportunityDiagnosis
	row.Emails = reply.Emails

	if r.DraftDir != "" {
		_, err = ExportDrafts(r.DraftDir, stored.BusinessName, row.ContactEmail, reply.Emails)
		if err != nil {
			slog.ErrorContext(ctx, "failed to export drafts", "domain", target.Domain, "err", err)
		}
	}
	return row, false
}

// persistPromptArtifact saves the prompt that would have run so the
// operator can paste it into a chat surface by hand.
func (r Runner) persistPromptArtifact(ctx context.Context, domain, prompt string) error {
	dir := r.ArtifactDir
	if dir == "" {
		dir = "."
	}
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, safeFileName(domain)+"_prompt.txt")
	err = os.WriteFile(path, []byte(prompt), 0o644)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "saved prompt artifact", "path", path)
	return nil
}
