package data

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mchmarny/acmg/pkg/score"
)

const (
	// QueryLimitDefault caps history listings unless the caller asks
	// for a specific number of records.
	QueryLimitDefault = 50
	QueryLimitMax     = 500

	insertEvaluationSQL = `INSERT INTO evaluation
		(id, created_at, evidence, score, classification, probability)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectEvaluationsSQL = `SELECT id, created_at, evidence, score, classification, probability
		FROM evaluation
		WHERE classification = COALESCE(?, classification)
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	countEvaluationsSQL = `SELECT COUNT(*) FROM evaluation`

	deleteEvaluationsSQL = `DELETE FROM evaluation`
)

// Evaluation is a single stored scoring result.
type Evaluation struct {
	ID             string  `json:"id" yaml:"id"`
	CreatedAt      string  `json:"created_at" yaml:"createdAt"`
	Evidence       string  `json:"evidence" yaml:"evidence"`
	Score          int     `json:"score" yaml:"score"`
	Classification string  `json:"classification" yaml:"classification"`
	Probability    float64 `json:"probability" yaml:"probability"`
}

// EvaluationQuery narrows history listings.
type EvaluationQuery struct {
	Classification string `json:"classification,omitempty" yaml:"classification,omitempty"`
	Limit          int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// SaveEvaluation stores the given result and returns the persisted record.
func SaveEvaluation(db *DB, res *score.Result) (*Evaluation, error) {
	if db == nil || db.DB == nil {
		return nil, errDBNotInitialized
	}
	if res == nil {
		return nil, errors.New("result not specified")
	}

	e := &Evaluation{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Evidence:       res.EvidenceString(),
		Score:          res.Score,
		Classification: string(res.Classification),
		Probability:    res.Probability,
	}

	if _, err := db.Exec(db.rebind(insertEvaluationSQL),
		e.ID, e.CreatedAt, e.Evidence, e.Score, e.Classification, e.Probability); err != nil {
		return nil, fmt.Errorf("failed to save evaluation %s: %w", e.ID, err)
	}

	slog.Debug("evaluation saved", "id", e.ID, "score", e.Score)

	return e, nil
}

// QueryEvaluations lists stored evaluations, most recent first.
func QueryEvaluations(db *DB, q *EvaluationQuery) ([]*Evaluation, error) {
	if db == nil || db.DB == nil {
		return nil, errDBNotInitialized
	}

	var class *string
	limit := QueryLimitDefault
	if q != nil {
		if q.Classification != "" {
			if !score.Classification(q.Classification).Valid() {
				return nil, fmt.Errorf("invalid classification filter: %s", q.Classification)
			}
			class = &q.Classification
		}
		if q.Limit > 0 {
			limit = q.Limit
		}
	}
	if limit > QueryLimitMax {
		limit = QueryLimitMax
	}

	rows, err := db.Query(db.rebind(selectEvaluationsSQL), class, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	list := make([]*Evaluation, 0)
	for rows.Next() {
		e := &Evaluation{}
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Evidence, &e.Score, &e.Classification, &e.Probability); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
		}
		list = append(list, e)
	}

	return list, nil
}

// CountEvaluations returns the number of stored evaluations.
func CountEvaluations(db *DB) (int64, error) {
	if db == nil || db.DB == nil {
		return 0, errDBNotInitialized
	}

	var count int64
	if err := db.QueryRow(countEvaluationsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	return count, nil
}

// Reset deletes all stored evaluations and reports how many were removed.
func Reset(db *DB) (int64, error) {
	if db == nil || db.DB == nil {
		return 0, errDBNotInitialized
	}

	res, err := db.Exec(deleteEvaluationsSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to delete evaluations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted row count: %w", err)
	}

	slog.Debug("evaluations deleted", "count", n)

	return n, nil
}
