package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/baula-dev/baula-sync/internal/models"
)

// CourseRepository handles persistence of courses and their owned
// collections (terms, competence fulfillments, staff links).
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, semester, name, short, organizational, description, literature, add_info,
        orgname, chair, type, ects, sws, keywords, lang, exp_attendance, format,
        name_en, literature_en, organizational_en, description_en, last_updated`

// ListBySemester returns the full persisted snapshot of a semester with
// terms, competence fulfillments and staff ids attached.
func (r *CourseRepository) ListBySemester(ctx context.Context, semester string) ([]models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses WHERE semester = $1 ORDER BY id`, courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, semester); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if len(courses) == 0 {
		return courses, nil
	}

	index := make(map[string]*models.Course, len(courses))
	for i := range courses {
		index[courses[i].ID] = &courses[i]
	}

	const termQuery = `SELECT course_id, semester, startdate, enddate, starttime, endtime, repeat, exclude, room_id
        FROM terms WHERE semester = $1 ORDER BY course_id, position`
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, termQuery, semester); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	for _, term := range terms {
		if course, ok := index[term.CourseID]; ok {
			course.Terms = append(course.Terms, term)
		}
	}

	const compQuery = `SELECT course_id, semester, comp_id, fulfillment
        FROM course_competences WHERE semester = $1 ORDER BY course_id, position`
	var competences []models.CompetenceFulfillment
	if err := r.db.SelectContext(ctx, &competences, compQuery, semester); err != nil {
		return nil, fmt.Errorf("list course competences: %w", err)
	}
	for _, comp := range competences {
		if course, ok := index[comp.CourseID]; ok {
			course.Competences = append(course.Competences, comp)
		}
	}

	const staffQuery = `SELECT pid, course_id, semester FROM staff_links WHERE semester = $1 ORDER BY course_id, pid`
	var staff []models.StaffLink
	if err := r.db.SelectContext(ctx, &staff, staffQuery, semester); err != nil {
		return nil, fmt.Errorf("list staff links: %w", err)
	}
	for _, link := range staff {
		if course, ok := index[link.CourseID]; ok {
			course.InstructorIDs = append(course.InstructorIDs, link.PID)
		}
	}

	return courses, nil
}

// Create inserts a course together with its terms, competence fulfillments
// and staff links in one transaction.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin course transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO courses (id, semester, name, short, organizational, description, literature, add_info,
        orgname, chair, type, ects, sws, keywords, lang, exp_attendance, format,
        name_en, literature_en, organizational_en, description_en, last_updated)
        VALUES (:id, :semester, :name, :short, :organizational, :description, :literature, :add_info,
        :orgname, :chair, :type, :ects, :sws, :keywords, :lang, :exp_attendance, :format,
        :name_en, :literature_en, :organizational_en, :description_en, :last_updated)`
	if _, err = tx.NamedExecContext(ctx, insertQuery, course); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	if err = insertTerms(ctx, tx, course.Terms); err != nil {
		return err
	}
	if err = insertCompetences(ctx, tx, course.Competences); err != nil {
		return err
	}
	if err = insertStaffLinks(ctx, tx, course.ID, course.Semester, course.InstructorIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit course: %w", err)
	}
	return nil
}

// UpdateScalars applies the given changed column values and always refreshes
// last_updated, even when values is empty.
func (r *CourseRepository) UpdateScalars(ctx context.Context, id, semester string, values map[string]interface{}, lastUpdated time.Time) error {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := []string{"last_updated = $3"}
	args := []interface{}{id, semester, lastUpdated}
	for _, column := range columns {
		args = append(args, values[column])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`UPDATE courses SET %s WHERE id = $1 AND semester = $2`, strings.Join(assignments, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// ReplaceTerms rewrites the term collection of a course.
func (r *CourseRepository) ReplaceTerms(ctx context.Context, id, semester string, terms []models.Term) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin terms transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM terms WHERE course_id = $1 AND semester = $2`, id, semester); err != nil {
		return fmt.Errorf("clear terms: %w", err)
	}
	if err = insertTerms(ctx, tx, terms); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit terms: %w", err)
	}
	return nil
}

// ReplaceCompetences rewrites the competence fulfillments of a course.
func (r *CourseRepository) ReplaceCompetences(ctx context.Context, id, semester string, competences []models.CompetenceFulfillment) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin competences transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM course_competences WHERE course_id = $1 AND semester = $2`, id, semester); err != nil {
		return fmt.Errorf("clear course competences: %w", err)
	}
	if err = insertCompetences(ctx, tx, competences); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit course competences: %w", err)
	}
	return nil
}

// ReplaceStaffLinks rewrites the staff links of a course.
func (r *CourseRepository) ReplaceStaffLinks(ctx context.Context, id, semester string, personIDs []string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin staff transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM staff_links WHERE course_id = $1 AND semester = $2`, id, semester); err != nil {
		return fmt.Errorf("clear staff links: %w", err)
	}
	if err = insertStaffLinks(ctx, tx, id, semester, personIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit staff links: %w", err)
	}
	return nil
}

// DeleteByIDs removes courses and cascades their owned collections and
// association rows. Returns the number of deleted courses.
func (r *CourseRepository) DeleteByIDs(ctx context.Context, semester string, ids []string) (deleted int, err error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, semester)
	for i, id := range ids {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	in := strings.Join(placeholders, ",")

	for _, table := range []string{"terms", "course_competences", "staff_links", "competence_links", "module_course_links"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE semester = $1 AND course_id IN (%s)`, table, in)
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("cascade delete %s: %w", table, err)
		}
	}

	query := fmt.Sprintf(`DELETE FROM courses WHERE semester = $1 AND id IN (%s)`, in)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete courses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted courses: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return int(affected), nil
}

// insertTerms stores terms with their feed position so ListBySemester can
// reproduce the feed order exactly.
func insertTerms(ctx context.Context, tx *sqlx.Tx, terms []models.Term) error {
	const query = `INSERT INTO terms (course_id, semester, startdate, enddate, starttime, endtime, repeat, exclude, room_id, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, term := range terms {
		if _, err := tx.ExecContext(ctx, query, term.CourseID, term.Semester, term.StartDate, term.EndDate,
			term.StartTime, term.EndTime, term.Repeat, term.Exclude, term.RoomID, i); err != nil {
			return fmt.Errorf("insert term: %w", err)
		}
	}
	return nil
}

func insertCompetences(ctx context.Context, tx *sqlx.Tx, competences []models.CompetenceFulfillment) error {
	const query = `INSERT INTO course_competences (course_id, semester, comp_id, fulfillment, position)
        VALUES ($1, $2, $3, $4, $5)`
	for i, comp := range competences {
		if _, err := tx.ExecContext(ctx, query, comp.CourseID, comp.Semester, comp.CompID, comp.Fulfillment, i); err != nil {
			return fmt.Errorf("insert course competence: %w", err)
		}
	}
	return nil
}

func insertStaffLinks(ctx context.Context, tx *sqlx.Tx, courseID, semester string, personIDs []string) error {
	const query = `INSERT INTO staff_links (pid, course_id, semester) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	for _, pid := range personIDs {
		if _, err := tx.ExecContext(ctx, query, pid, courseID, semester); err != nil {
			return fmt.Errorf("insert staff link: %w", err)
		}
	}
	return nil
}
