package commands

import (
	"fmt"

	"outreach-backend/lib/genai"
	"outreach-backend/lib/scrapers/companyprofile"
	"outreach-backend/lib/scrapers/mapsreviews"
	"outreach-backend/lib/scrapers/website"
	"outreach-backend/lib/sqliteutil"
	"outreach-backend/services/intel"
	"outreach-backend/services/intel/db"
	"outreach-backend/services/outreach"
)

// cursor position survives across targets within one process so
// repeated batches keep walking the pool instead of hammering the
// first credential
var cursor genai.Cursor

func buildRunner(cfg Config) (outreach.Runner, func() error, error) {
	pool, err := genai.LoadPoolFromEnv()
	if err != nil {
		return outreach.Runner{}, nil, fmt.Errorf("load credentials: %w", err)
	}

	database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
	if err != nil {
		return outreach.Runner{}, nil, fmt.Errorf("open database %q: %w", cfg.Database, err)
	}
	store := intel.NewService(database)

	invoker := genai.NewInvoker(
		pool,
		&cursor,
		genai.NewClient(genai.ClientOptions{Model: cfg.Model}),
		genai.Materializer{
			TemplatePath:    cfg.Template,
			DefaultEndpoint: cfg.GemLink,
		},
		genai.Options{
			Cooldown:        cfg.Cooldown(),
			RotateJitter:    cfg.RotateJitter(),
			RotateOnTimeout: cfg.RotateOnTimeout,
		},
	)

	runner := outreach.Runner{
		Scanner: intel.Scanner{
			Website: website.NewClient(),
			Profile: companyprofile.NewClient(companyprofile.ClientOptions{
				SearchCreds: pool.SearchCredentials(),
			}),
			Maps:  mapsreviews.NewClient(cfg.MapsScraperURL),
			Store: store,
		},
		Store:       store,
		Invoker:     invoker,
		DraftDir:    cfg.DraftDir,
		ArtifactDir: cfg.ArtifactDir,
	}
	return runner, database.Close, nil
}

// resolveEntries turns the common --url/--email/--batch flags into
// batch entries.
func resolveEntries(url, email, batch string) ([]outreach.BatchEntry, error) {
	if batch != "" {
		return outreach.ReadBatch(batch)
	}
	if url == "" && email == "" {
		return nil, fmt.Errorf("provide --url, --email, or --batch")
	}
	return []outreach.BatchEntry{{Website: url, Email: email}}, nil
}
