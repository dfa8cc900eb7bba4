package intel

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"outreach-backend/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("outreach.services.intel")

// ErrNotScanned is returned when no stored package exists for a
// domain, the scan phase has to run first.
var ErrNotScanned = errors.New("no stored intelligence for domain, run a scan first")

// Stored is one persisted package row.
type Stored struct {
	Domain       string
	BusinessName string
	Package      ContextPackage
	CreatedAt    time.Time
}

type Service struct {
	db *sql.DB
}

func NewService(database *sql.DB) Service {
	return Service{db: database}
}

// Save upserts the package keyed by domain so a re-scan replaces the
// previous snapshot.
func (s Service) Save(ctx context.Context, domain string, pkg ContextPackage) error {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()

	span.SetAttributes(attribute.String("domain", domain))

	serialized, err := json.Marshal(pkg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("serialize package: %w", err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO context_packages (domain, business_name, package, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (domain) DO UPDATE SET
			business_name = excluded.business_name,
			package = excluded.package,
			created_at = excluded.created_at`,
		domain,
		pkg.BusinessIdentity.Name,
		string(serialized),
		time.Now().Unix(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Get loads the stored package for a domain.
func (s Service) Get(ctx context.Context, domain string) (Stored, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	span.SetAttributes(attribute.String("domain", domain))

	row := s.db.QueryRowContext(
		ctx,
		`SELECT domain, business_name, package, created_at
		FROM context_packages WHERE domain = ?`,
		domain,
	)
	stored, err := scanStored(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Stored{}, fmt.Errorf("%w: %s", ErrNotScanned, domain)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stored{}, err
	}
	return stored, nil
}

// List returns every stored package ordered by domain.
func (s Service) List(ctx context.Context) ([]Stored, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT domain, business_name, package, created_at
		FROM context_packages ORDER BY domain`,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		stored, err := scanStored(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, stored)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStored(row rowScanner) (Stored, error) {
	var (
		stored     Stored
		serialized string
		createdAt  int64
	)
	err := row.Scan(&stored.Domain, &stored.BusinessName, &serialized, &createdAt)
	if err != nil {
		return Stored{}, err
	}
	err = json.Unmarshal([]byte(serialized), &stored.Package)
	if err != nil {
		return Stored{}, fmt.Errorf("deserialize package for %s: %w", stored.Domain, err)
	}
	stored.CreatedAt = time.Unix(createdAt, 0)
	return stored, nil
}
