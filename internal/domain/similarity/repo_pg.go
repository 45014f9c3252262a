package similarity

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triage/triage/internal/platform/db"
	"github.com/triage/triage/internal/domain/vitals"
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

const caseCols = `id, age_years, gender, symptoms, diagnoses,
	heart_rate, bp_systolic, bp_diastolic, temperature, resp_rate, spo2,
	wbc, hemoglobin, platelets, crp, creatinine, glucose`

func (r *repoPG) Insert(ctx context.Context, c *ReferenceCase) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	hr := vitalColumn(c.Vitals, vitals.KeyHeartRate)
	sys, dia := bpColumns(c.Vitals)
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO reference_case (
			id, age_years, gender, symptoms, diagnoses,
			heart_rate, bp_systolic, bp_diastolic, temperature, resp_rate, spo2,
			wbc, hemoglobin, platelets, crp, creatinine, glucose
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		c.ID, c.AgeYears, c.Gender, strings.Join(c.Symptoms, ","), strings.Join(c.Diagnoses, ","),
		hr, sys, dia,
		vitalColumn(c.Vitals, vitals.KeyTemperature),
		vitalColumn(c.Vitals, vitals.KeyRespRate),
		vitalColumn(c.Vitals, vitals.KeySpO2),
		labColumn(c.Labs, LabWBC), labColumn(c.Labs, LabHemoglobin),
		labColumn(c.Labs, LabPlatelets), labColumn(c.Labs, LabCRP),
		labColumn(c.Labs, LabCreatinine), labColumn(c.Labs, LabGlucose),
	)
	return err
}

func (r *repoPG) LoadAll(ctx context.Context) ([]*ReferenceCase, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+caseCols+` FROM reference_case ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*ReferenceCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reference_case`).Scan(&n)
	return n, err
}

func scanCase(row pgx.Row) (*ReferenceCase, error) {
	var (
		c         ReferenceCase
		symptoms  string
		diagnoses string
		hr, sys, dia, temp, rr, spo2,
		wbc, hgb, plt, crp, crea, glu *float64
	)
	err := row.Scan(
		&c.ID, &c.AgeYears, &c.Gender, &symptoms, &diagnoses,
		&hr, &sys, &dia, &temp, &rr, &spo2,
		&wbc, &hgb, &plt, &crp, &crea, &glu,
	)
	if err != nil {
		return nil, err
	}
	if symptoms != "" {
		c.Symptoms = strings.Split(symptoms, ",")
	}
	if diagnoses != "" {
		c.Diagnoses = strings.Split(diagnoses, ",")
	}

	c.Vitals = vitals.Reading{}
	putVital(c.Vitals, vitals.KeyHeartRate, hr, 0)
	putVital(c.Vitals, vitals.KeyTemperature, temp, 1)
	putVital(c.Vitals, vitals.KeyRespRate, rr, 0)
	putVital(c.Vitals, vitals.KeySpO2, spo2, 0)
	if sys != nil && dia != nil {
		c.Vitals[vitals.KeyBloodPressure] = strconv.Itoa(int(*sys)) + "/" + strconv.Itoa(int(*dia))
	}

	c.Labs = map[string]float64{}
	putLab(c.Labs, LabWBC, wbc)
	putLab(c.Labs, LabHemoglobin, hgb)
	putLab(c.Labs, LabPlatelets, plt)
	putLab(c.Labs, LabCRP, crp)
	putLab(c.Labs, LabCreatinine, crea)
	putLab(c.Labs, LabGlucose, glu)
	return &c, nil
}

func putVital(r vitals.Reading, key string, v *float64, prec int) {
	if v != nil {
		r[key] = strconv.FormatFloat(*v, 'f', prec, 64)
	}
}

func putLab(labs map[string]float64, key string, v *float64) {
	if v != nil {
		labs[key] = *v
	}
}

func vitalColumn(r vitals.Reading, key string) *float64 {
	raw, ok := r[key]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

func bpColumns(r vitals.Reading) (*float64, *float64) {
	sys, dia, ok := r.BloodPressure()
	if !ok {
		return nil, nil
	}
	s, d := float64(sys), float64(dia)
	return &s, &d
}

func labColumn(labs map[string]float64, key string) *float64 {
	v, ok := labs[key]
	if !ok {
		return nil
	}
	return &v
}
