package intel

import (
	"context"
	"log/slog"
	"strings"

	"outreach-backend/lib/normalize"
	"outreach-backend/lib/scrapers/companyprofile"
	"outreach-backend/lib/scrapers/mapsreviews"
	"outreach-backend/lib/scrapers/website"
)

// Scanner runs the scrape phase for one target: all three scrapers,
// context assembly, then persistence.
type Scanner struct {
	Website *website.Client
	Profile *companyprofile.Client
	Maps    *mapsreviews.Client
	Store   Service
}

func (s Scanner) Scan(ctx context.Context, target normalize.Target) (ContextPackage, error) {
	ctx, span := tracer.Start(ctx, "Scan")
	defer span.End()

	slog.InfoContext(ctx, "scraping website", "url", target.WebsiteURL())
	web := s.Website.Scrape(ctx, target.WebsiteURL())

	slog.InfoContext(ctx, "looking up company profile", "name", target.BusinessName)
	profile := s.Profile.Lookup(ctx, target.BusinessName)

	// the org page's headquarters beats the website heuristic as a
	// maps search hint
	locationHint := profile.Headquarters
	if locationHint == "" {
		locationHint = web.DetectedLocation
	}
	refined := RefineName(target.BusinessName, web.Title)

	slog.InfoContext(ctx, "scraping maps reviews", "name", refined, "location", locationHint)
	maps := s.Maps.Scrape(ctx, refined, locationHint)

	pkg := BuildContext(target, web, profile, maps)
	err := s.Store.Save(ctx, target.Domain, pkg)
	if err != nil {
		return ContextPackage{}, err
	}
	return pkg, nil
}

const refinedNameLimit = 35

var titleSeparators = []string{"|", "-", ":", "•"}

// titles that mean the site answered with an error page instead of a
// brand name
var rejectedTitles = []string{
	"403", "404", "forbidden", "access denied", "redirecting", "not found",
}

// RefineName upgrades the domain-derived business name with the
// website's title when the title looks like an actual brand name.
func RefineName(fallback, title string) string {
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx >= 0 {
			title = title[:idx]
		}
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) >= refinedNameLimit {
		return fallback
	}
	lower := strings.ToLower(title)
	for _, bad := range rejectedTitles {
		if strings.Contains(lower, bad) {
			return fallback
		}
	}
	return title
}
