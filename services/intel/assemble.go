package intel

import (
	"sort"
	"strings"
	"time"

	"outreach-backend/lib/normalize"
	"outreach-backend/lib/scrapers/companyprofile"
	"outreach-backend/lib/scrapers/mapsreviews"
	"outreach-backend/lib/scrapers/website"
	"outreach-backend/lib/textutil"
)

const (
	summaryWordLimit = 500
	topReviewLimit    = 10
)

const lowConfidenceNote = "Review data cleared due to low confidence (listing mismatch)."

// BuildContext merges the normalizer output and the three scraper
// results into one ContextPackage.
func BuildContext(
	target normalize.Target,
	web website.Data,
	profile companyprofile.Data,
	maps mapsreviews.Data,
) ContextPackage {
	// location trust order: the website itself, then the org page,
	// then the maps listing
	location := "Unknown"
	locationSource := "None"
	switch {
	case web.DetectedLocation != "":
		location = web.DetectedLocation
		locationSource = web.URL
	case profile.Headquarters != "":
		location = profile.Headquarters
		locationSource = profile.SourceURL
	case maps.Address != "":
		location = maps.Address
		locationSource = maps.SourceURL
	}

	niche := maps.Category
	if niche == "" {
		niche = profile.Industry
	}

	reviews := ReviewsInsights{
		TotalReviews:   maps.ReviewCount,
		AverageRating:  maps.Rating,
		PositiveThemes: maps.PositiveThemes,
		TopReviews:     maps.Reviews,
		SourceURL:      maps.SourceURL,
	}
	if len(reviews.TopReviews) > topReviewLimit {
		reviews.TopReviews = reviews.TopReviews[:topReviewLimit]
	}
	if maps.LowConfidence {
		reviews.Note = lowConfidenceNote
		reviews.TopReviews = nil
		reviews.PositiveThemes = nil
	}

	estimatedSize := profile.CompanySize
	if estimatedSize == "" {
		estimatedSize = profile.EmployeeCount
	}

	var personnel []PersonRef
	for _, p := range profile.Employees {
		personnel = append(personnel, PersonRef{
			Name:       p.Name,
			Role:       p.Role,
			ProfileURL: p.ProfileURL,
		})
	}

	return ContextPackage{
		Meta: Meta{
			GeneratedAt:    time.Now().Format(time.RFC3339),
			TargetBusiness: target.BusinessName,
		},
		BusinessIdentity: BusinessIdentity{
			Name:             target.BusinessName,
			Domain:           target.Domain,
			InferredLocation: location,
			InferredNiche:    niche,
			Sources: Sources{
				Location: locationSource,
				Domain:   "user_input",
			},
		},
		WebsiteInsights: WebsiteInsights{
			Title:           web.Title,
			MetaDescription: web.MetaDescription,
			Headings:        web.H1s,
			SocialLinks:     aggregateSocials(web, profile, maps),
			Emails:          resolveEmails(web.Emails, target),
			SourceURL:       web.URL,
			RawTextSummary:  textutil.CompressWords(web.BodyText, summaryWordLimit),
		},
		ReviewsInsights: reviews,
		OrgSnapshot: OrgSnapshot{
			EstimatedSize: estimatedSize,
			About:         profile.About,
			Specialties:   profile.Specialties,
			KeyPersonnel:  personnel,
			SourceURL:     profile.SourceURL,
		},
		Inferences: Inferences{
			PainPoints:           []string{},
			MarketSophistication: "Unknown",
			CapacitySignals:      "Unknown",
			OwnerInference:       inferOwner(profile.Employees, maps.Attributes),
		},
	}
}

// aggregateSocials combines profile links from every source and
// dedupes them by canonical url, upgrading to https when both schemes
// were seen. Output is sorted for determinism.
func aggregateSocials(web website.Data, profile companyprofile.Data, maps mapsreviews.Data) []string {
	var raw []string
	raw = append(raw, web.SocialLinks...)
	raw = append(raw, maps.Socials...)
	if profile.SourceURL != "" {
		raw = append(raw, profile.SourceURL)
	}
	for _, p := range profile.Employees {
		if p.ProfileURL != "" {
			raw = append(raw, p.ProfileURL)
		}
	}

	unique := map[string]string{}
	for _, link := range raw {
		if link == "" {
			continue
		}
		key := textutil.CanonicalSocialKey(link)
		current, ok := unique[key]
		if !ok {
			unique[key] = link
			continue
		}
		if strings.HasPrefix(link, "https://") && !strings.HasPrefix(current, "https://") {
			unique[key] = link
		}
	}

	out := make([]string, 0, len(unique))
	for _, link := range unique {
		out = append(out, link)
	}
	sort.Strings(out)
	return out
}

// resolveEmails merges the scraped emails with the user's input when
// the input itself was an email address.
func resolveEmails(scraped []string, target normalize.Target) []string {
	seen := map[string]bool{}
	var out []string
	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		out = append(out, email)
	}
	for _, e := range scraped {
		add(e)
	}
	if target.Type == normalize.TypeEmail {
		add(target.OriginalInput)
	}
	sort.Strings(out)
	return out
}

var ownerRoleMarkers = []string{"owner", "founder", "ceo", "principal"}

// inferOwner guesses the likely owner when the maps listing carries an
// ownership attribute and the org page surfaced personnel.
func inferOwner(employees []companyprofile.Person, attributes []string) string {
	var ownership string
	for _, attr := range attributes {
		if strings.Contains(strings.ToLower(attr), "owned") {
			ownership = attr
			break
		}
	}
	if ownership == "" || len(employees) == 0 {
		return "Unknown"
	}

	candidate := employees[0]
search:
	for _, emp := range employees {
		role := strings.ToLower(emp.Role)
		for _, marker := range ownerRoleMarkers {
			if strings.Contains(role, marker) {
				candidate = emp
				break search
			}
		}
	}
	if candidate.Name == "" {
		return "Unknown"
	}
	return candidate.Name + " (likely owner, inferred from '" + ownership + "' attribute)"
}
