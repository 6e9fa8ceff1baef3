package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/models"
)

// SQLiteStore implements RunStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based run store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Pricing runs: one row per priced contract
	CREATE TABLE IF NOT EXISTS pricing_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		kind TEXT NOT NULL,
		style TEXT NOT NULL,
		spot_price REAL NOT NULL,
		strike REAL NOT NULL,
		interest_rate REAL NOT NULL,
		volatility REAL NOT NULL,
		dividend REAL NOT NULL,
		steps INTEGER NOT NULL,
		pricing_date DATETIME NOT NULL,
		maturity_date DATETIME NOT NULL,
		model TEXT NOT NULL,
		price TEXT NOT NULL,
		reference TEXT,
		delta TEXT,
		gamma TEXT,
		vega TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON pricing_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_kind_style ON pricing_runs(kind, style);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveResult records a completed pricing run.
func (s *SQLiteStore) SaveResult(ctx context.Context, result *models.PricingResult) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pricing_runs (
			created_at, kind, style, spot_price, strike, interest_rate,
			volatility, dividend, steps, pricing_date, maturity_date,
			model, price, reference, delta, gamma, vega
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.CreatedAt, string(result.Kind), string(result.Style),
		result.SpotPrice, result.Strike, result.InterestRate,
		result.Volatility, result.Dividend, result.Steps,
		result.PricingDate, result.MaturityDate,
		result.Model, result.Price.String(), result.Reference.String(),
		result.Delta.String(), result.Gamma.String(), result.Vega.String(),
	)
	if err != nil {
		return errors.NewStoreError("save_result", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.NewStoreError("save_result", err)
	}
	result.ID = id
	return nil
}

// GetResults returns stored runs matching the filter, newest first.
func (s *SQLiteStore) GetResults(ctx context.Context, filter ResultFilter) ([]models.PricingResult, error) {
	var conds []string
	var args []interface{}

	if filter.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Style != "" {
		conds = append(conds, "style = ?")
		args = append(args, string(filter.Style))
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.Since)
	}

	query := `SELECT id, created_at, kind, style, spot_price, strike,
		interest_rate, volatility, dividend, steps, pricing_date,
		maturity_date, model, price, reference, delta, gamma, vega
		FROM pricing_runs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("get_results", err)
	}
	defer rows.Close()

	var results []models.PricingResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, errors.NewStoreError("get_results", err)
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

// GetResultByID returns a single stored run.
func (s *SQLiteStore) GetResultByID(ctx context.Context, id int64) (*models.PricingResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, kind, style,
		spot_price, strike, interest_rate, volatility, dividend, steps,
		pricing_date, maturity_date, model, price, reference, delta, gamma, vega
		FROM pricing_runs WHERE id = ?`, id)
	if err != nil {
		return nil, errors.NewStoreError("get_result", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, errors.ErrDataNotFound
	}
	return scanResult(rows)
}

func scanResult(rows *sql.Rows) (*models.PricingResult, error) {
	var r models.PricingResult
	var kind, style string
	var price string
	var reference, delta, gamma, vega sql.NullString

	err := rows.Scan(&r.ID, &r.CreatedAt, &kind, &style, &r.SpotPrice,
		&r.Strike, &r.InterestRate, &r.Volatility, &r.Dividend, &r.Steps,
		&r.PricingDate, &r.MaturityDate, &r.Model, &price,
		&reference, &delta, &gamma, &vega)
	if err != nil {
		return nil, err
	}

	r.Kind = models.OptionKind(kind)
	r.Style = models.ExerciseStyle(style)
	if r.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	if r.Reference, err = parseNullDecimal(reference); err != nil {
		return nil, err
	}
	if r.Delta, err = parseNullDecimal(delta); err != nil {
		return nil, err
	}
	if r.Gamma, err = parseNullDecimal(gamma); err != nil {
		return nil, err
	}
	if r.Vega, err = parseNullDecimal(vega); err != nil {
		return nil, err
	}
	return &r, nil
}

func parseNullDecimal(v sql.NullString) (decimal.Decimal, error) {
	if !v.Valid || v.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v.String)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
