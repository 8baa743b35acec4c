package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baula-dev/baula-sync/internal/models"
)

// ModuleCourseRepository reads the module-curriculum catalog used for
// heuristic course matching. The catalog itself is maintained elsewhere.
type ModuleCourseRepository struct {
	db *sqlx.DB
}

// NewModuleCourseRepository constructs the repository.
func NewModuleCourseRepository(db *sqlx.DB) *ModuleCourseRepository {
	return &ModuleCourseRepository{db: db}
}

// List returns all module-curriculum entries. An entry without its own
// acronym falls back to the acronym of the module it belongs to.
func (r *ModuleCourseRepository) List(ctx context.Context) ([]models.ModuleCourse, error) {
	const query = `SELECT mc.mc_id, mc.type, mc.name,
        COALESCE(NULLIF(mc.acronym, ''), m.acronym) AS acronym
        FROM module_courses mc
        LEFT JOIN modules m ON m.module_id = mc.module_id
        ORDER BY mc.mc_id`
	var entries []models.ModuleCourse
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list module courses: %w", err)
	}
	return entries, nil
}
