package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JapSyu/crawler/pkg/models"
)

// CompanyRepo stores company reports across the normalized tables plus a
// JSONB snapshot of the full report.
type CompanyRepo struct{}

// NewCompanyRepo creates a new repository instance.
func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{}
}

// CreateTables creates the schema if it does not exist.
func (r *CompanyRepo) CreateTables(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id SERIAL PRIMARY KEY,
			company_key VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255),
			name_en VARCHAR(255),
			name_ko VARCHAR(255),
			headquarters TEXT,
			headquarters_ko TEXT,
			founded_year INTEGER,
			sec_code VARCHAR(10),
			employee_count INTEGER,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS company_hr (
			id SERIAL PRIMARY KEY,
			company_id INTEGER UNIQUE REFERENCES companies(id) ON DELETE CASCADE,
			avg_tenure_years DECIMAL(5,2),
			avg_age_years DECIMAL(5,2),
			avg_annual_salary_jpy BIGINT,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS company_financials (
			id SERIAL PRIMARY KEY,
			company_id INTEGER UNIQUE REFERENCES companies(id) ON DELETE CASCADE,
			revenue_jpy BIGINT,
			fiscal_year INTEGER,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS company_provenance (
			id SERIAL PRIMARY KEY,
			company_id INTEGER REFERENCES companies(id) ON DELETE CASCADE,
			field VARCHAR(100) NOT NULL,
			source_file VARCHAR(255),
			method VARCHAR(50),
			concept VARCHAR(255),
			context_ref VARCHAR(255),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS company_reports (
			company_key VARCHAR(50) PRIMARY KEY,
			report_json JSONB NOT NULL,
			run_id VARCHAR(64),
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}

// Save upserts one report. The previous run's rows for the company are
// superseded, not merged: provenance is rewritten and absent facts become
// NULL columns.
func (r *CompanyRepo) Save(ctx context.Context, report *models.CompanyReport) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var companyID int
	err = tx.QueryRow(ctx, `
		INSERT INTO companies (company_key, name, name_en, name_ko, headquarters, headquarters_ko,
		                       founded_year, sec_code, employee_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_key)
		DO UPDATE SET
			name = EXCLUDED.name,
			name_en = EXCLUDED.name_en,
			name_ko = EXCLUDED.name_ko,
			headquarters = EXCLUDED.headquarters,
			headquarters_ko = EXCLUDED.headquarters_ko,
			founded_year = EXCLUDED.founded_year,
			sec_code = EXCLUDED.sec_code,
			employee_count = EXCLUDED.employee_count,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		report.CompanyKey, nullIfEmpty(report.Basic.Name), nullIfEmpty(report.Basic.NameEN),
		nullIfEmpty(report.Basic.NameKO), nullIfEmpty(report.Basic.Headquarters),
		nullIfEmpty(report.Basic.HeadquartersKO),
		report.Basic.FoundedYear, nullIfEmpty(report.Basic.SecCode), report.Basic.EmployeeCount,
		time.Now(),
	).Scan(&companyID)
	if err != nil {
		return fmt.Errorf("failed to upsert company: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO company_hr (company_id, avg_tenure_years, avg_age_years, avg_annual_salary_jpy, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id)
		DO UPDATE SET
			avg_tenure_years = EXCLUDED.avg_tenure_years,
			avg_age_years = EXCLUDED.avg_age_years,
			avg_annual_salary_jpy = EXCLUDED.avg_annual_salary_jpy,
			updated_at = EXCLUDED.updated_at`,
		companyID, report.HR.AvgTenureYears, report.HR.AvgAgeYears, report.HR.AvgAnnualSalaryJPY, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert hr facts: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO company_financials (company_id, revenue_jpy, fiscal_year, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id)
		DO UPDATE SET
			revenue_jpy = EXCLUDED.revenue_jpy,
			fiscal_year = EXCLUDED.fiscal_year,
			updated_at = EXCLUDED.updated_at`,
		companyID, report.Financials.RevenueJPY, report.Financials.FiscalYear, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert financials: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM company_provenance WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("failed to clear provenance: %w", err)
	}
	for field, p := range report.Provenance {
		_, err = tx.Exec(ctx, `
			INSERT INTO company_provenance (company_id, field, source_file, method, concept, context_ref)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			companyID, field, p.File, string(p.Method), nullIfEmpty(p.Concept), nullIfEmpty(p.ContextRef))
		if err != nil {
			return fmt.Errorf("failed to insert provenance for %s: %w", field, err)
		}
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO company_reports (company_key, report_json, run_id, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_key)
		DO UPDATE SET
			report_json = EXCLUDED.report_json,
			run_id = EXCLUDED.run_id,
			updated_at = EXCLUDED.updated_at`,
		report.CompanyKey, reportJSON, report.RunID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save report snapshot: %w", err)
	}

	return tx.Commit(ctx)
}

// Load retrieves the latest report snapshot for a company key.
func (r *CompanyRepo) Load(ctx context.Context, companyKey string) (*models.CompanyReport, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var reportJSON []byte
	err := pool.QueryRow(ctx,
		`SELECT report_json FROM company_reports WHERE company_key = $1`, companyKey,
	).Scan(&reportJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no report found for %s", companyKey)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var report models.CompanyReport
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
