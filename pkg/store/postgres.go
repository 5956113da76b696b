package store

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xhad/ltcc/internal/models"
)

type StoreConfig struct {
	ConnString string
	TableName  string
	BatchSize  int
}

// RecordStore upserts extracted records into Postgres, keyed by file name.
type RecordStore struct {
	config StoreConfig
	pool   *pgxpool.Pool
}

// numericFields are stored as DOUBLE PRECISION; every other field is TEXT
// because revenue values mix zeros and raw amounts.
var numericFields = map[models.Field]bool{
	models.FieldRNHours:    true,
	models.FieldRNWage:     true,
	models.FieldTotalHours: true,
}

func NewWithConfig(ctx context.Context, config StoreConfig) (*RecordStore, error) {
	if config.TableName == "" {
		config.TableName = "cost_reports"
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rs := &RecordStore{
		config: config,
		pool:   pool,
	}

	if err := rs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return rs, nil
}

func (rs *RecordStore) table() string {
	return pgx.Identifier{rs.config.TableName}.Sanitize()
}

func (rs *RecordStore) initialize(ctx context.Context) error {
	_, err := rs.pool.Exec(ctx, createTableSQL(rs.table()))
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func createTableSQL(table string) string {
	cols := []string{"fname TEXT PRIMARY KEY"}
	for _, f := range models.ExtractedFields {
		typ := "TEXT"
		if numericFields[f] {
			typ = "DOUBLE PRECISION"
		}
		cols = append(cols, fmt.Sprintf("%s %s", f, typ))
	}
	cols = append(cols, "updated_at TIMESTAMPTZ NOT NULL DEFAULT now()")

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(cols, ",\n\t"))
}

func upsertSQL(table string) string {
	cols := []string{string(models.FieldFileName)}
	params := []string{"$1"}
	updates := make([]string, 0, len(models.ExtractedFields)+1)
	for i, f := range models.ExtractedFields {
		cols = append(cols, string(f))
		params = append(params, fmt.Sprintf("$%d", i+2))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", f, f))
	}
	updates = append(updates, "updated_at = now()")

	return fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (fname) DO UPDATE SET %s`,
		table, strings.Join(cols, ", "), strings.Join(params, ", "), strings.Join(updates, ", "))
}

// Store writes records in batches, one transaction per batch.
func (rs *RecordStore) Store(ctx context.Context, records []models.Record) error {
	stmt := upsertSQL(rs.table())

	for start := 0; start < len(records); start += rs.config.BatchSize {
		end := start + rs.config.BatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := rs.storeBatch(ctx, stmt, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (rs *RecordStore) storeBatch(ctx context.Context, stmt string, records []models.Record) error {
	tx, err := rs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(stmt, recordArgs(r)...)
	}

	br := tx.SendBatch(ctx, batch)
	for _, r := range records {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert %s: %w", r.FileName, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// recordArgs returns the upsert parameters for r; unknown values are NULL.
func recordArgs(r models.Record) []any {
	args := []any{sanitizeUTF8(r.FileName)}
	for _, f := range models.ExtractedFields {
		v := r.Get(f)
		switch {
		case v.IsNull():
			args = append(args, nil)
		case numericFields[f] && v.Kind == models.KindFloat:
			args = append(args, v.Float)
		case numericFields[f] && v.Kind == models.KindInt:
			args = append(args, float64(v.Int))
		case numericFields[f]:
			args = append(args, nil)
		default:
			args = append(args, sanitizeUTF8(v.String()))
		}
	}
	return args
}

func (rs *RecordStore) Close() {
	if rs.pool != nil {
		rs.pool.Close()
	}
}

// OCR output can carry bytes Postgres rejects as text.
func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
