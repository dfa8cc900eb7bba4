package intel

import (
	"testing"

	"outreach-backend/lib/normalize"
	"outreach-backend/lib/scrapers/companyprofile"
	"outreach-backend/lib/scrapers/mapsreviews"
	"outreach-backend/lib/scrapers/website"

	"github.com/stretchr/testify/require"
)

func testTarget() normalize.Target {
	return normalize.Target{
		OriginalInput: "https://acme-baking.com",
		Type:          normalize.TypeURL,
		Domain:        "acme-baking.com",
		BusinessName:  "Acme Baking",
		Valid:         true,
	}
}

func TestBuildContextLocationPriority(t *testing.T) {
	web := website.Data{URL: "https://acme-baking.com", DetectedLocation: "Springfield, IL", Success: true}
	profile := companyprofile.Data{SourceURL: "https://biznet.example/company/acme", Headquarters: "Chicago, IL", Success: true}
	maps := mapsreviews.Data{SourceURL: "https://maps.example/place/acme", Address: "12 Main St", Success: true}

	pkg := BuildContext(testTarget(), web, profile, maps)
	require.Equal(t, "Springfield, IL", pkg.BusinessIdentity.InferredLocation)
	require.Equal(t, web.URL, pkg.BusinessIdentity.Sources.Location)

	web.DetectedLocation = ""
	pkg = BuildContext(testTarget(), web, profile, maps)
	require.Equal(t, "Chicago, IL", pkg.BusinessIdentity.InferredLocation)
	require.Equal(t, profile.SourceURL, pkg.BusinessIdentity.Sources.Location)

	profile.Headquarters = ""
	pkg = BuildContext(testTarget(), web, profile, maps)
	require.Equal(t, "12 Main St", pkg.BusinessIdentity.InferredLocation)
	require.Equal(t, maps.SourceURL, pkg.BusinessIdentity.Sources.Location)

	maps.Address = ""
	pkg = BuildContext(testTarget(), web, profile, maps)
	require.Equal(t, "Unknown", pkg.BusinessIdentity.InferredLocation)
	require.Equal(t, "None", pkg.BusinessIdentity.Sources.Location)
}

func TestBuildContextSocialDedupe(t *testing.T) {
	web := website.Data{
		SocialLinks: []string{
			"http://facebook.com/acme",
			"https://instagram.com/acme",
		},
	}
	profile := companyprofile.Data{
		SourceURL: "https://biznet.example/company/acme",
		Employees: []companyprofile.Person{
			{Name: "Sam Lee", ProfileURL: "https://biznet.example/in/samlee"},
		},
	}
	maps := mapsreviews.Data{
		Socials: []string{
			// same profile, https and a www prefix, should win over
			// the plain http one
			"https://www.facebook.com/acme/",
		},
	}

	pkg := BuildContext(testTarget(), web, profile, maps)
	require.Equal(t, []string{
		"https://biznet.example/company/acme",
		"https://biznet.example/in/samlee",
		"https://instagram.com/acme",
		"https://www.facebook.com/acme/",
	}, pkg.WebsiteInsights.SocialLinks)
}

func TestBuildContextEmailResolution(t *testing.T) {
	target := normalize.Target{
		OriginalInput: "Owner@Acme-Baking.com",
		Type:          normalize.TypeEmail,
		Domain:        "acme-baking.com",
		BusinessName:  "Acme Baking",
		Valid:         true,
	}
	web := website.Data{Emails: []string{"hello@acme-baking.com", "owner@acme-baking.com"}}

	pkg := BuildContext(target, web, companyprofile.Data{}, mapsreviews.Data{})
	require.Equal(t, []string{
		"hello@acme-baking.com",
		"owner@acme-baking.com",
	}, pkg.WebsiteInsights.Emails)
}

func TestBuildContextLowConfidenceClearsReviews(t *testing.T) {
	maps := mapsreviews.Data{
		Rating:         4.2,
		ReviewCount:    55,
		Reviews:        []string{"great"},
		PositiveThemes: []string{"service"},
		LowConfidence:  true,
		Success:        true,
	}

	pkg := BuildContext(testTarget(), website.Data{}, companyprofile.Data{}, maps)
	require.Empty(t, pkg.ReviewsInsights.TopReviews)
	require.Empty(t, pkg.ReviewsInsights.PositiveThemes)
	require.Equal(t, lowConfidenceNote, pkg.ReviewsInsights.Note)
	// aggregate numbers stay, they do not depend on which listing the
	// reviews came from being exact
	require.Equal(t, 55, pkg.ReviewsInsights.TotalReviews)
}

func TestBuildContextTopReviewLimit(t *testing.T) {
	maps := mapsreviews.Data{Success: true}
	for i := 0; i < 25; i++ {
		maps.Reviews = append(maps.Reviews, "review")
	}
	pkg := BuildContext(testTarget(), website.Data{}, companyprofile.Data{}, maps)
	require.Len(t, pkg.ReviewsInsights.TopReviews, topReviewLimit)
}

func TestInferOwner(t *testing.T) {
	employees := []companyprofile.Person{
		{Name: "Sam Lee", Role: "Marketing Lead"},
		{Name: "Cecilia Roy", Role: "Founder & CEO"},
	}

	got := inferOwner(employees, []string{"Wheelchair accessible", "Women-owned"})
	require.Equal(t, "Cecilia Roy (likely owner, inferred from 'Women-owned' attribute)", got)

	// no ownership attribute, no inference
	require.Equal(t, "Unknown", inferOwner(employees, []string{"Wheelchair accessible"}))
	// attribute without personnel, no inference
	require.Equal(t, "Unknown", inferOwner(nil, []string{"Women-owned"}))
}

func TestRefineName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Acme Baking Co. | Fresh Bread Daily", "Acme Baking Co."},
		{"Acme Baking Co. - Home", "Acme Baking Co."},
		{"403 Forbidden", "Acme Baking"},
		{"Redirecting...", "Acme Baking"},
		{"", "Acme Baking"},
		{"An Extremely Long Title That Cannot Possibly Be A Brand Name", "Acme Baking"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, RefineName("Acme Baking", c.title), "title %q", c.title)
	}
}
