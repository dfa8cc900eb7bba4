package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "acmebaking", NormalizeName("  Acme \n Baking "))
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Acme Baking Co", []string{"baking"}))
	require.False(t, MatchName("Acme Baking Co", []string{"plumbing"}))
}

func TestCompressWords(t *testing.T) {
	out := CompressWords("the artisan bakery is known for sourdough and pastries", 3)
	require.Equal(t, "artisan bakery known", out)

	require.Equal(t, "", CompressWords("", 10))
}

func TestCanonicalSocialKey(t *testing.T) {
	a := CanonicalSocialKey("https://www.instagram.com/acmebakes/")
	b := CanonicalSocialKey("http://instagram.com/AcmeBakes")
	require.Equal(t, a, b)
}
