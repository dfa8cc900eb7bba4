package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputEmail(t *testing.T) {
	target := Input("hello@acme-corp.com")
	require.True(t, target.Valid)
	require.Equal(t, TypeEmail, target.Type)
	require.Equal(t, "acme-corp.com", target.Domain)
	require.Equal(t, "Acme Corp", target.BusinessName)
	require.Equal(t, "http://acme-corp.com", target.WebsiteURL())
}

func TestInputURL(t *testing.T) {
	for _, raw := range []string{
		"https://www.acme-corp.com/about",
		"acme-corp.com",
	} {
		target := Input(raw)
		require.True(t, target.Valid, raw)
		require.Equal(t, TypeURL, target.Type, raw)
		require.Equal(t, "acme-corp.com", target.Domain, raw)
		require.Equal(t, "Acme Corp", target.BusinessName, raw)
	}

	target := Input("https://www.acme-corp.com/about")
	require.Equal(t, "https://www.acme-corp.com/about", target.WebsiteURL())
}

func TestInputInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a domain"} {
		require.False(t, Input(raw).Valid, "%q", raw)
	}
}
