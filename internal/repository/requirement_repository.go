package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

// RequirementRepository reads degree requirement data for majors.
type RequirementRepository struct {
	db *sqlx.DB
}

// NewRequirementRepository creates a new repository instance.
func NewRequirementRepository(db *sqlx.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

type requirementRow struct {
	CourseCode string `db:"course_code"`
	Kind       string `db:"kind"`
}

// MajorRequirements returns the required and elective course codes for a
// major. Returns sql.ErrNoRows when the major is unknown.
func (r *RequirementRepository) MajorRequirements(ctx context.Context, major string) (*models.MajorRequirements, error) {
	var rows []requirementRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT course_code, kind FROM major_requirements
		 WHERE LOWER(major) = LOWER($1) ORDER BY kind, course_code`, major); err != nil {
		return nil, fmt.Errorf("load major requirements: %w", err)
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}

	result := &models.MajorRequirements{Major: major}
	for _, row := range rows {
		switch row.Kind {
		case "required":
			result.Required = append(result.Required, row.CourseCode)
		default:
			result.Electives = append(result.Electives, row.CourseCode)
		}
	}
	return result, nil
}
