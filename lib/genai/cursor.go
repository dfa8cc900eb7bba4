package genai

import "sync/atomic"

// Cursor remembers which credential to try next. it lives alongside
// the pool for the whole process so a rate-limited credential is not
// retried first on the very next business, and it is safe to share
// between invocations should they ever run concurrently.
type Cursor struct {
	n atomic.Int64
}

func (c *Cursor) Position() int {
	return int(c.n.Load())
}

func (c *Cursor) Advance() {
	c.n.Add(1)
}
