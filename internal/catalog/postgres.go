package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/menu"
)

// DefaultTable is the table PostgresSource reads from:
//
//	CREATE TABLE voice_menu_mappings (
//	    tenant_id    text    NOT NULL,
//	    canonical_id text    NOT NULL,
//	    spoken_names text[]  NOT NULL,
//	    aliases      text[]  NOT NULL DEFAULT '{}',
//	    position     integer NOT NULL DEFAULT 0,
//	    PRIMARY KEY (tenant_id, canonical_id)
//	);
const DefaultTable = "voice_menu_mappings"

// Querier is the subset of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads catalogs from PostgreSQL.
type PostgresSource struct {
	q     Querier
	table string
}

// NewPostgresSource creates a source reading DefaultTable through q.
func NewPostgresSource(q Querier) *PostgresSource {
	return &PostgresSource{q: q, table: DefaultTable}
}

// Catalog returns the tenant's mappings in position order. A tenant with
// no rows is reported as ErrTenantNotFound.
func (s *PostgresSource) Catalog(ctx context.Context, tenant string) ([]menu.VoiceMenuMapping, error) {
	if err := ValidateTenant(tenant); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("canonical_id", "spoken_names", "aliases").
		From(s.table).
		Where(squirrel.Eq{"tenant_id": tenant}).
		OrderBy("position ASC", "canonical_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog query: %w", err)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog %s: %w", tenant, err)
	}
	defer rows.Close()

	var out []menu.VoiceMenuMapping
	for rows.Next() {
		var m menu.VoiceMenuMapping
		if err := rows.Scan(&m.CanonicalID, &m.SpokenNames, &m.Aliases); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenant)
	}
	return out, nil
}

// NewPool creates a PostgreSQL connection pool configured from DatabaseConfig.
// It parses the DSN, applies pool settings, pings the database for
// fail-fast validation, and returns the ready pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
