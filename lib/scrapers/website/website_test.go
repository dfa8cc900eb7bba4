package website

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const homePage = `<html>
<head>
	<title>Acme Baking Co | Artisan Breads</title>
	<meta name="description" content="Small batch sourdough in Portland, OR">
</head>
<body>
	<h1>Fresh Bread Daily</h1>
	<p>Visit us in Portland, OR for hello@acmebaking.com orders.</p>
	<a href="https://www.instagram.com/acmebaking">IG</a>
	<a href="https://www.facebook.com/sharer/sharer.php?u=x">Share</a>
	<a href="https://twitter.com/intent/tweet">Tweet</a>
	<a href="#" aria-label="Instagram"></a>
	<a href="mailto:orders@acmebaking.com?subject=hi">Email us</a>
	<a href="/contact">Contact</a>
	<script>var hidden = true;</script>
</body>
</html>`

const contactPage = `<html><body>
	<a href="https://www.linkedin.com/company/acme-baking">LinkedIn</a>
	<p>press@acmebaking.com</p>
</body></html>`

func TestScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, homePage)
		case "/contact":
			fmt.Fprint(w, contactPage)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient()
	data := client.Scrape(context.Background(), server.URL)

	require.True(t, data.Success)
	require.Equal(t, "Acme Baking Co | Artisan Breads", data.Title)
	require.Equal(t, "Small batch sourdough in Portland, OR", data.MetaDescription)
	require.Equal(t, []string{"Fresh Bread Daily"}, data.H1s)
	require.Equal(t, "Portland, OR", data.DetectedLocation)
	require.Contains(t, data.BodyText, "Fresh Bread Daily")
	require.NotContains(t, data.BodyText, "var hidden")

	require.Contains(t, data.SocialLinks, "https://www.instagram.com/acmebaking")
	require.Contains(t, data.SocialLinks, "https://www.linkedin.com/company/acme-baking")
	for _, link := range data.SocialLinks {
		require.NotContains(t, link, "sharer")
		require.NotContains(t, link, "intent")
	}

	require.ElementsMatch(t, data.Emails, []string{
		"hello@acmebaking.com",
		"orders@acmebaking.com",
		"press@acmebaking.com",
	})
}

func TestScrapeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient()
	data := client.Scrape(context.Background(), server.URL)
	require.False(t, data.Success)
}

func TestScrapeEmptyURL(t *testing.T) {
	client := NewClient()
	require.False(t, client.Scrape(context.Background(), "").Success)
}
