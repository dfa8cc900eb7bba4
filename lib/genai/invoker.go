package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Generator issues one generation request with one credential. it is
// the only blocking step of an invocation.
type Generator interface {
	Generate(ctx context.Context, cred Credential, prompt string) (string, error)
}

// returned by a Generator when the call itself succeeded but the
// reply content is unretrievable, e.g. a content-policy block.
// rotating credentials does not change policy outcomes for the same
// prompt, so the invoker treats this as fatal.
var ErrContentBlocked = errors.New("reply content unavailable")

type OutcomeStatus string

const (
	StatusSuccess   OutcomeStatus = "success"
	StatusFatal     OutcomeStatus = "fatal"
	StatusExhausted OutcomeStatus = "pool_exhausted"
)

// Outcome is the only value surfaced to callers, per-attempt failures
// are handled inside the invoker.
type Outcome struct {
	Status OutcomeStatus
	// set on success
	Data    map[string]any
	RawText string
	// set on fatal, one of *ExtractionError, ErrContentBlocked, or an
	// unclassified call failure
	Reason error
	// set on pool exhaustion: the request that would have been sent,
	// so the caller still gets a usable artifact
	LastPrompt string
}

type Options struct {
	// wait imposed before rotating off a rate-limited credential.
	// zero means the 5s default.
	Cooldown time.Duration
	// upper bound on the random pause before an immediate rotation,
	// zero disables it
	RotateJitter time.Duration
	// when set, request timeouts rotate to the next credential
	// instead of terminating the invocation
	RotateOnTimeout bool
}

const defaultCooldown = time.Second * 5

// Invoker turns the quota-limited generation backend into a single
// dependable call by rotating through the credential pool.
type Invoker struct {
	pool    Pool
	cursor  *Cursor
	backend Generator
	prompts Materializer

	cooldown        time.Duration
	rotateJitter    time.Duration
	rotateOnTimeout bool

	// swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func NewInvoker(pool Pool, cursor *Cursor, backend Generator, prompts Materializer, opts Options) *Invoker {
	cooldown := opts.Cooldown
	if cooldown == 0 {
		cooldown = defaultCooldown
	}
	return &Invoker{
		pool:            pool,
		cursor:          cursor,
		backend:         backend,
		prompts:         prompts,
		cooldown:        cooldown,
		rotateJitter:    opts.RotateJitter,
		rotateOnTimeout: opts.RotateOnTimeout,
		sleep:           sleepContext,
	}
}

// Invoke runs one attempt sequence over the pool: select a
// credential, call, classify, rotate or terminate. at most one pass
// over the pool is made.
func (iv *Invoker) Invoke(ctx context.Context, contextPackage any) Outcome {
	ctx, span := tracer.Start(ctx, "Invoke")
	defer span.End()

	lastPrompt := ""

	for attempt := 0; attempt < iv.pool.Size(); attempt++ {
		cred := iv.pool.Get(iv.cursor.Position())
		prompt := iv.prompts.Render(contextPackage, cred.EndpointOverride)
		lastPrompt = prompt

		slog.InfoContext(
			ctx, "calling generation backend",
			"credential", cred.Name,
			"attempt", attempt+1,
			"pool_size", iv.pool.Size(),
		)
		raw, err := iv.backend.Generate(ctx, cred, prompt)
		if err == nil {
			data, xerr := Extract(raw)
			if xerr != nil {
				// a malformed reply will not improve by switching
				// credentials, and retrying would mask format drift
				return iv.fatal(ctx, span, xerr)
			}
			span.SetAttributes(attribute.Int("attempts", attempt+1))
			return Outcome{Status: StatusSuccess, Data: data, RawText: raw}
		}

		if errors.Is(err, ErrContentBlocked) {
			return iv.fatal(ctx, span, err)
		}
		if iv.rotateOnTimeout && errors.Is(err, context.DeadlineExceeded) {
			slog.WarnContext(ctx, "request timed out, rotating", "credential", cred.Name)
			iv.cursor.Advance()
			continue
		}

		switch classifyCallError(err) {
		case failRateLimited:
			slog.WarnContext(
				ctx, "credential rate limited, cooling down before rotation",
				"credential", cred.Name,
				"cooldown", iv.cooldown,
			)
			if serr := iv.sleep(ctx, iv.cooldown); serr != nil {
				return iv.fatal(ctx, span, serr)
			}
			iv.cursor.Advance()
		case failUnauthorized:
			slog.WarnContext(
				ctx, "credential invalid or leaked, rotating immediately",
				"credential", cred.Name,
			)
			iv.cursor.Advance()
			if iv.rotateJitter > 0 {
				ms, rerr := random.IntRange(0, int(iv.rotateJitter.Milliseconds())+1)
				if rerr == nil {
					if serr := iv.sleep(ctx, time.Duration(ms)*time.Millisecond); serr != nil {
						return iv.fatal(ctx, span, serr)
					}
				}
			}
		default:
			return iv.fatal(ctx, span, fmt.Errorf("unclassified backend failure: %w", err))
		}
	}

	slog.ErrorContext(ctx, "credential pool exhausted", "pool_size", iv.pool.Size())
	span.SetStatus(codes.Error, "credential pool exhausted")
	return Outcome{Status: StatusExhausted, LastPrompt: lastPrompt}
}

func (iv *Invoker) fatal(ctx context.Context, span trace.Span, reason error) Outcome {
	slog.ErrorContext(ctx, "invocation failed", "err", reason)
	span.SetStatus(codes.Error, reason.Error())
	span.RecordError(reason)
	return Outcome{Status: StatusFatal, Reason: reason}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
