package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triage/triage/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Append(ctx context.Context, rec *Record) error {
	stamp(rec)

	diagnoses, err := json.Marshal(rec.Diagnoses)
	if err != nil {
		return fmt.Errorf("marshal diagnoses: %w", err)
	}

	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO audit_record (
			id, created_at, symptoms, age, diagnoses,
			top_diagnosis, treatment, billing_code, source
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.Timestamp, rec.Symptoms, rec.Age, diagnoses,
		rec.TopDiagnosis, rec.Treatment, rec.BillingCode, rec.Source)
	return err
}
