package genai

import (
	"errors"
	"fmt"
	"os"
)

// Credential is one complete set of access parameters for the
// generation backend, plus the optional companion search key used by
// the company profile lookup.
type Credential struct {
	// display label, never used for auth
	Name string
	// required, a credential without one is skipped at load time
	GenerationKey string
	SearchKey     string
	SearchCx      string
	// alternate link substituted into the prompt template
	EndpointOverride string
}

func (c Credential) Usable() bool {
	return c.GenerationKey != ""
}

// whether this credential can also serve programmable-search lookups
func (c Credential) SearchCapable() bool {
	return c.SearchKey != "" && c.SearchCx != ""
}

var ErrNoCredentials = errors.New("no usable credentials configured")

// Pool is the ordered, immutable set of credentials for the process
// lifetime.
type Pool struct {
	creds []Credential
}

func NewPool(creds []Credential) (Pool, error) {
	var usable []Credential
	for _, c := range creds {
		if c.Usable() {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return Pool{}, ErrNoCredentials
	}
	return Pool{creds: usable}, nil
}

// builds the pool from numbered environment slots GEMINI_KEY_1,
// SEARCH_KEY_1, SEARCH_CX_1, GEM_URL_1 and so on, stopping at the
// first gap. when slot 1 is absent the unnumbered legacy variables
// are consulted instead.
func LoadPoolFromEnv() (Pool, error) {
	var creds []Credential

	for i := 1; ; i++ {
		key := os.Getenv(fmt.Sprintf("GEMINI_KEY_%d", i))
		if key == "" {
			break
		}
		creds = append(creds, Credential{
			Name:             fmt.Sprintf("Account_%d", i),
			GenerationKey:    key,
			SearchKey:        os.Getenv(fmt.Sprintf("SEARCH_KEY_%d", i)),
			SearchCx:         os.Getenv(fmt.Sprintf("SEARCH_CX_%d", i)),
			EndpointOverride: os.Getenv(fmt.Sprintf("GEM_URL_%d", i)),
		})
	}

	if len(creds) == 0 {
		if key := os.Getenv("GEMINI_KEY"); key != "" {
			creds = append(creds, Credential{
				Name:             "Default",
				GenerationKey:    key,
				SearchKey:        os.Getenv("SEARCH_KEY"),
				SearchCx:         os.Getenv("SEARCH_CX"),
				EndpointOverride: os.Getenv("GEM_URL"),
			})
		}
	}

	return NewPool(creds)
}

func (p Pool) Size() int {
	return len(p.creds)
}

// Get maps any integer cursor value onto a valid slot.
func (p Pool) Get(i int) Credential {
	i %= len(p.creds)
	if i < 0 {
		i += len(p.creds)
	}
	return p.creds[i]
}

// Credentials returns a copy for display purposes.
func (p Pool) Credentials() []Credential {
	out := make([]Credential, len(p.creds))
	copy(out, p.creds)
	return out
}

// SearchCredentials returns the subset usable for programmable-search
// lookups, in pool order.
func (p Pool) SearchCredentials() []Credential {
	var out []Credential
	for _, c := range p.creds {
		if c.SearchCapable() {
			out = append(out, c)
		}
	}
	return out
}
