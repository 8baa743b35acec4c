package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baula-dev/baula-sync/internal/models"
)

// LinkRepository handles the association rows between courses and persons,
// competences, and module-curriculum entries. All inserts are idempotent.
type LinkRepository struct {
	db *sqlx.DB
}

// NewLinkRepository constructs the repository.
func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// AddStaffLinks inserts the given person-course links, skipping rows that
// already exist. Returns the number of rows actually inserted.
func (r *LinkRepository) AddStaffLinks(ctx context.Context, links []models.StaffLink) (int, error) {
	const query = `INSERT INTO staff_links (pid, course_id, semester)
        VALUES (:pid, :course_id, :semester) ON CONFLICT DO NOTHING`
	added := 0
	for i := range links {
		result, err := r.db.NamedExecContext(ctx, query, &links[i])
		if err != nil {
			return added, fmt.Errorf("insert staff link: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("count staff link: %w", err)
		}
		added += int(affected)
	}
	return added, nil
}

// AddCompetenceLinks connects courses to the competence catalog, skipping
// rows that already exist. Returns the number of rows actually inserted.
func (r *LinkRepository) AddCompetenceLinks(ctx context.Context, links []models.CompetenceFulfillment) (int, error) {
	const query = `INSERT INTO competence_links (comp_id, course_id, semester)
        VALUES (:comp_id, :course_id, :semester) ON CONFLICT DO NOTHING`
	added := 0
	for i := range links {
		result, err := r.db.NamedExecContext(ctx, query, &links[i])
		if err != nil {
			return added, fmt.Errorf("insert competence link: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("count competence link: %w", err)
		}
		added += int(affected)
	}
	return added, nil
}

// AddModuleLinks connects courses to module-curriculum entries, skipping
// rows that already exist. Returns the number of rows actually inserted.
func (r *LinkRepository) AddModuleLinks(ctx context.Context, links []models.ModuleCourseLink) (int, error) {
	const query = `INSERT INTO module_course_links (mc_id, course_id, semester)
        VALUES (:mc_id, :course_id, :semester) ON CONFLICT DO NOTHING`
	added := 0
	for i := range links {
		result, err := r.db.NamedExecContext(ctx, query, &links[i])
		if err != nil {
			return added, fmt.Errorf("insert module link: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("count module link: %w", err)
		}
		added += int(affected)
	}
	return added, nil
}
