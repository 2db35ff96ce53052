package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/storage"
	"github.com/rs/zerolog"
)

// querier is the subset of *sql.DB and *sql.Tx the result queries need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ResultAdapter implements storage.ResultStore using PostgreSQL.
type ResultAdapter struct {
	q querier
}

// NewResultAdapter creates a ResultAdapter sharing the given connection.
func NewResultAdapter(db *sql.DB) *ResultAdapter {
	return &ResultAdapter{q: db}
}

// CreateResult inserts a new analysis result row.
func (a *ResultAdapter) CreateResult(ctx context.Context, r *v1.AnalysisResult) error {
	paramsJSON, resultsJSON, err := marshalResultJSON(r)
	if err != nil {
		return err
	}

	if _, err := a.q.ExecContext(ctx, queryCreateResult,
		r.ID,
		r.UserID,
		r.TimePeriodID,
		paramsJSON,
		string(r.Status),
		r.StartValue,
		r.EndValue,
		r.AbsoluteChange,
		r.PercentageChange,
		nullString(string(r.TrendDirection)),
		nullString(r.CurrencyCode),
		string(r.OutputFormat),
		resultsJSON,
		nullString(r.ErrorMessage),
		nullTime(r.CalculatedAt),
		r.IsCached,
		nullTime(r.CacheExpiresAt),
		r.CreatedAt,
		r.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create analysis result: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("analysis_id", r.ID).
		Str("status", string(r.Status)).
		Msg("[ResultAdapter] Created analysis result")
	return nil
}

// GetResult returns storage.ErrNotFound for an unknown id.
func (a *ResultAdapter) GetResult(ctx context.Context, id string) (*v1.AnalysisResult, error) {
	r, err := scanResultRow(a.q.QueryRowContext(ctx, queryGetResult, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateResult overwrites the mutable columns of an existing result.
func (a *ResultAdapter) UpdateResult(ctx context.Context, r *v1.AnalysisResult) error {
	_, resultsJSON, err := marshalResultJSON(r)
	if err != nil {
		return err
	}

	res, err := a.q.ExecContext(ctx, queryUpdateResult,
		r.ID,
		string(r.Status),
		r.StartValue,
		r.EndValue,
		r.AbsoluteChange,
		r.PercentageChange,
		nullString(string(r.TrendDirection)),
		nullString(r.CurrencyCode),
		resultsJSON,
		nullString(r.ErrorMessage),
		nullTime(r.CalculatedAt),
		r.IsCached,
		nullTime(r.CacheExpiresAt),
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis result %s: %w", r.ID, err)
	}
	return requireRow(res, r.ID)
}

// DeleteResult removes a result row.
func (a *ResultAdapter) DeleteResult(ctx context.Context, id string) error {
	res, err := a.q.ExecContext(ctx, queryDeleteResult, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis result %s: %w", id, err)
	}
	return requireRow(res, id)
}

// ListResults pages through results newest-first.
func (a *ResultAdapter) ListResults(ctx context.Context, opts storage.ListOptions) ([]*v1.AnalysisResult, error) {
	rows, err := a.q.QueryContext(ctx, queryListResults, opts.UserID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis results: %w", err)
	}
	defer rows.Close()

	var results []*v1.AnalysisResult
	for rows.Next() {
		r, err := scanResultRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis results: %w", err)
	}
	return results, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("analysis result %s: check rows affected: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Transactor implements storage.Transactor over a shared connection.
type Transactor struct {
	db *sql.DB
}

// NewTransactor creates a Transactor sharing the given connection.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn in one transaction and commits only if fn succeeds.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, s storage.Stores) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(ctx, storage.Stores{Results: &ResultAdapter{q: tx}}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
