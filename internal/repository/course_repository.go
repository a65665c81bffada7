package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

// CourseRepository reads and writes the course catalog: courses, their
// offered sections, weekly meeting times and prerequisite edges.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseRow struct {
	Code    string  `db:"code"`
	Title   string  `db:"title"`
	Credits float64 `db:"credits"`
}

type sectionRow struct {
	ID          int64           `db:"id"`
	CourseCode  string          `db:"course_code"`
	Number      string          `db:"section_number"`
	SeatStatus  string          `db:"seat_status"`
	Credits     sql.NullFloat64 `db:"credits"`
	Instructors string          `db:"instructors"`
}

type meetingRow struct {
	SectionID int64          `db:"section_id"`
	Days      string         `db:"days"`
	StartMin  int            `db:"start_min"`
	EndMin    int            `db:"end_min"`
	Campus    string         `db:"campus"`
	Room      sql.NullString `db:"room"`
}

// GetByCode loads one course with its sections, meeting times and
// prerequisites. Returns sql.ErrNoRows when the code is not in the catalog.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	code = models.NormalizeCourseCode(code)

	var course courseRow
	if err := r.db.GetContext(ctx, &course, `SELECT code, title, credits FROM courses WHERE code = $1`, code); err != nil {
		return nil, err
	}

	var prereqs []string
	if err := r.db.SelectContext(ctx, &prereqs,
		`SELECT prereq_code FROM prerequisites WHERE course_code = $1 ORDER BY prereq_code`, code); err != nil {
		return nil, fmt.Errorf("load prerequisites for %s: %w", code, err)
	}

	var sections []sectionRow
	if err := r.db.SelectContext(ctx, &sections,
		`SELECT id, course_code, section_number, seat_status, credits, instructors
		 FROM sections WHERE course_code = $1 ORDER BY section_number, id`, code); err != nil {
		return nil, fmt.Errorf("load sections for %s: %w", code, err)
	}

	var meetings []meetingRow
	if err := r.db.SelectContext(ctx, &meetings,
		`SELECT m.section_id, m.days, m.start_min, m.end_min, m.campus, m.room
		 FROM meeting_times m
		 JOIN sections s ON s.id = m.section_id
		 WHERE s.course_code = $1 ORDER BY m.section_id, m.id`, code); err != nil {
		return nil, fmt.Errorf("load meeting times for %s: %w", code, err)
	}

	meetingsBySection := make(map[int64][]models.TimeSlot, len(sections))
	for _, m := range meetings {
		meetingsBySection[m.SectionID] = append(meetingsBySection[m.SectionID], models.TimeSlot{
			Days:   parseDayList(m.Days),
			Start:  m.StartMin,
			End:    m.EndMin,
			Campus: m.Campus,
			Room:   m.Room.String,
		})
	}

	result := &models.Course{
		Code:          course.Code,
		Title:         course.Title,
		Credits:       course.Credits,
		Prerequisites: prereqs,
		Sections:      make([]models.Section, 0, len(sections)),
	}
	for _, s := range sections {
		credits := course.Credits
		if s.Credits.Valid {
			credits = s.Credits.Float64
		}
		result.Sections = append(result.Sections, models.Section{
			Number:      s.Number,
			CourseCode:  s.CourseCode,
			Slots:       meetingsBySection[s.ID],
			Instructors: splitInstructors(s.Instructors),
			SeatStatus:  models.SeatStatus(s.SeatStatus),
			Credits:     credits,
		})
	}
	return result, nil
}

// Search finds catalog entries by code prefix or title fragment. Sections
// are not loaded for search hits.
func (r *CourseRepository) Search(ctx context.Context, query string, limit int) ([]models.Course, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT code, title, credits FROM courses
		 WHERE LOWER(code) LIKE $1 OR LOWER(title) LIKE $1
		 ORDER BY code LIMIT $2`, pattern, limit); err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}

	result := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.Course{Code: row.Code, Title: row.Title, Credits: row.Credits})
	}
	return result, nil
}

// ReplaceCatalog upserts the provided courses and replaces their sections,
// meeting times and prerequisite edges in one transaction. Used by the
// catalog importer.
func (r *CourseRepository) ReplaceCatalog(ctx context.Context, courses []models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, course := range courses {
		code := models.NormalizeCourseCode(course.Code)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO courses (code, title, credits) VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO UPDATE SET title = EXCLUDED.title, credits = EXCLUDED.credits`,
			code, course.Title, course.Credits); err != nil {
			return fmt.Errorf("upsert course %s: %w", code, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE course_code = $1`, code); err != nil {
			return fmt.Errorf("clear sections for %s: %w", code, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM prerequisites WHERE course_code = $1`, code); err != nil {
			return fmt.Errorf("clear prerequisites for %s: %w", code, err)
		}

		for _, prereq := range course.Prerequisites {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO prerequisites (course_code, prereq_code) VALUES ($1, $2)`,
				code, models.NormalizeCourseCode(prereq)); err != nil {
				return fmt.Errorf("insert prerequisite for %s: %w", code, err)
			}
		}

		for _, section := range course.Sections {
			var sectionID int64
			if err := tx.QueryRowxContext(ctx,
				`INSERT INTO sections (course_code, section_number, seat_status, credits, instructors)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				code, section.Number, string(section.SeatStatus), section.Credits,
				strings.Join(section.Instructors, ";")).Scan(&sectionID); err != nil {
				return fmt.Errorf("insert section %s %s: %w", code, section.Number, err)
			}

			for _, slot := range section.Slots {
				room := sql.NullString{String: slot.Room, Valid: slot.Room != ""}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO meeting_times (section_id, days, start_min, end_min, campus, room)
					 VALUES ($1, $2, $3, $4, $5, $6)`,
					sectionID, joinDayList(slot.Days), slot.Start, slot.End, slot.Campus, room); err != nil {
					return fmt.Errorf("insert meeting time for %s %s: %w", code, section.Number, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog import: %w", err)
	}
	return nil
}

func parseDayList(raw string) []models.Weekday {
	var days []models.Weekday
	for _, token := range strings.Split(raw, ",") {
		if day, err := models.ParseWeekday(token); err == nil {
			days = append(days, day)
		}
	}
	return days
}

func joinDayList(days []models.Weekday) string {
	tokens := make([]string, len(days))
	for i, day := range days {
		tokens[i] = string(day)
	}
	return strings.Join(tokens, ",")
}

func splitInstructors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
