package genai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyCallError(t *testing.T) {
	cases := []struct {
		err  error
		want callFailure
	}{
		{errors.New("generate: status 429: rate limit exceeded"), failRateLimited},
		{errors.New("You exceeded your current quota"), failRateLimited},
		{errors.New("generate: status 503: RESOURCE_EXHAUSTED"), failRateLimited},
		{errors.New("generate: status 403: key has been reported as leaked"), failUnauthorized},
		{errors.New("PERMISSION_DENIED: caller lacks permission"), failUnauthorized},
		{errors.New("API key not valid. Please pass a valid API key."), failUnauthorized},
		{errors.New("generate: status 500: internal error"), failUnknown},
		{fmt.Errorf("dial tcp: connection refused"), failUnknown},
		{errors.New("context deadline exceeded"), failUnknown},
	}

	for _, c := range cases {
		require.Equal(t, c.want, classifyCallError(c.err), c.err.Error())
	}
}
