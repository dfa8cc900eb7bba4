package intel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"outreach-backend/lib/genai"
	"outreach-backend/lib/normalize"
	"outreach-backend/lib/scrapers/companyprofile"
	"outreach-backend/lib/scrapers/mapsreviews"
	"outreach-backend/lib/scrapers/website"

	"github.com/stretchr/testify/require"
)

const scanSitePage = `<html>
<head>
	<title>Acme Baking Co. | Fresh Bread Daily</title>
	<meta name="description" content="Small-batch bakery.">
</head>
<body>
	<h1>Fresh bread, every morning</h1>
	<p>Visit us in Springfield, IL or write to hello@acme-baking.com.</p>
	<a href="https://www.facebook.com/acmebaking">Facebook</a>
</body>
</html>`

func scanProfilePage(host string) string {
	return `<html>
<head><meta property="og:description" content="Family bakery since 1998."></head>
<body>
	<p>11-50 employees</p>
	<dl>
		<dt>Headquarters</dt><dd>Springfield, Illinois</dd>
		<dt>Company size</dt><dd>11-50 employees</dd>
		<dt>Industry</dt><dd>Food Production</dd>
	</dl>
	<a href="http://` + host + `/in/cecilia">Cecilia Roy
Founder</a>
</body>
</html>`
}

const scanListing = `[{
	"name": "Acme Baking Co.",
	"url": "https://maps.example/place/acme",
	"address": "12 Main St, Springfield, IL",
	"category": "Bakery",
	"rating": 4.6,
	"reviewCount": 132,
	"attributes": ["Women-owned"],
	"reviews": [{"text": "Best sourdough in town."}]
}]`

func TestScanEndToEnd(t *testing.T) {
	svc := setup(t)

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scanSitePage))
	}))
	t.Cleanup(site.Close)

	var pages *httptest.Server
	pages = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scanProfilePage(pages.Listener.Addr().String())))
	}))
	t.Cleanup(pages.Close)
	profileHost := pages.Listener.Addr().String()

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"link": "http://` + profileHost + `/company/acme"}]}`))
	}))
	t.Cleanup(search.Close)

	var mapsQuery string
	maps := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mapsQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(scanListing))
	}))
	t.Cleanup(maps.Close)

	scanner := Scanner{
		Website: website.NewClient(),
		Profile: companyprofile.NewClient(companyprofile.ClientOptions{
			SearchCreds: []genai.Credential{
				{Name: "1", GenerationKey: "g", SearchKey: "sk", SearchCx: "cx"},
			},
			SearchURL:   search.URL,
			ProfileHost: profileHost,
		}),
		Maps:  mapsreviews.NewClient(maps.URL),
		Store: svc,
	}

	target := normalize.Input(site.URL)
	// httptest urls have no registered domain, pin the identity the
	// normalizer would produce for a real site
	target.Domain = "acme-baking.com"
	target.BusinessName = "Acme Baking"
	target.Valid = true

	pkg, err := scanner.Scan(context.Background(), target)
	require.NoError(t, err)

	// title refinement feeds the maps query
	require.True(t, strings.HasPrefix(mapsQuery, "Acme Baking Co."), "query %q", mapsQuery)
	require.Contains(t, mapsQuery, "Springfield, Illinois")

	require.Equal(t, "Acme Baking", pkg.BusinessIdentity.Name)
	require.Equal(t, "Springfield, IL", pkg.BusinessIdentity.InferredLocation)
	require.Equal(t, "Bakery", pkg.BusinessIdentity.InferredNiche)

	require.Equal(t, "Acme Baking Co. | Fresh Bread Daily", pkg.WebsiteInsights.Title)
	require.Contains(t, pkg.WebsiteInsights.Emails, "hello@acme-baking.com")
	require.Contains(t, pkg.WebsiteInsights.SocialLinks, "https://www.facebook.com/acmebaking")

	require.Equal(t, 132, pkg.ReviewsInsights.TotalReviews)
	require.Equal(t, []string{"Best sourdough in town."}, pkg.ReviewsInsights.TopReviews)

	require.Equal(t, "11-50 employees", pkg.OrgSnapshot.EstimatedSize)
	require.Equal(t, "Family bakery since 1998.", pkg.OrgSnapshot.About)
	require.Len(t, pkg.OrgSnapshot.KeyPersonnel, 1)
	require.Equal(t, "Cecilia Roy", pkg.OrgSnapshot.KeyPersonnel[0].Name)

	require.Equal(t,
		"Cecilia Roy (likely owner, inferred from 'Women-owned' attribute)",
		pkg.Inferences.OwnerInference,
	)

	// the package is persisted under the target domain
	stored, err := svc.Get(context.Background(), "acme-baking.com")
	require.NoError(t, err)
	require.Equal(t, "Acme Baking", stored.BusinessName)
	require.Equal(t, pkg.BusinessIdentity, stored.Package.BusinessIdentity)
}
