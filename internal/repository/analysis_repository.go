package repository

import (
	"database/sql"
	"time"

	"briefly/internal/model"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) SaveAnalysis(a *model.Analysis) error {
	return r.db.QueryRow(`
		INSERT INTO analysis(job_id, kind, source_url, publisher, published_at, model, input, output, status, error)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, a.JobID, a.Kind, a.SourceURL, a.Publisher, toNullTime(a.PublishedAt), a.Model, a.Input, a.Output, a.Status, a.Error).Scan(&a.ID, &a.CreatedAt)
}

// GetAnalyses returns analyses newest first. An empty kind matches all kinds.
func (r *AnalysisRepository) GetAnalyses(kind string, limit, offset int) ([]model.Analysis, error) {
	rows, err := r.db.Query(`
		SELECT id, job_id, kind, source_url, publisher, published_at, model, input, output, status, error, created_at
		FROM analysis
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, kind, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []model.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return analyses, nil
}

func (r *AnalysisRepository) GetAnalysisTotal(kind string) (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM analysis WHERE ($1 = '' OR kind = $1)`, kind).Scan(&total)
	return total, err
}

func (r *AnalysisRepository) GetAnalysisByID(id int64) (*model.Analysis, error) {
	a, err := scanAnalysis(r.db.QueryRow(`
		SELECT id, job_id, kind, source_url, publisher, published_at, model, input, output, status, error, created_at
		FROM analysis
		WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row scanner) (*model.Analysis, error) {
	var a model.Analysis
	var publishedAt sql.NullTime
	err := row.Scan(&a.ID, &a.JobID, &a.Kind, &a.SourceURL, &a.Publisher, &publishedAt, &a.Model, &a.Input, &a.Output, &a.Status, &a.Error, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}
	return &a, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
