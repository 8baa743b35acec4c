package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baula-dev/baula-sync/internal/models"
)

// PersonRepository handles persistence of teaching staff.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository constructs the repository.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Upsert inserts the person or refreshes an existing one by their external id.
func (r *PersonRepository) Upsert(ctx context.Context, person models.Person) error {
	const query = `INSERT INTO persons (pid, title, firstname, lastname, email, tel, office)
        VALUES (:pid, :title, :firstname, :lastname, :email, :tel, :office)
        ON CONFLICT (pid) DO UPDATE SET title = EXCLUDED.title, firstname = EXCLUDED.firstname,
        lastname = EXCLUDED.lastname, email = EXCLUDED.email, tel = EXCLUDED.tel, office = EXCLUDED.office`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("upsert person: %w", err)
	}
	return nil
}

// FindByID returns a person by their external id.
func (r *PersonRepository) FindByID(ctx context.Context, pid string) (*models.Person, error) {
	const query = `SELECT pid, title, firstname, lastname, email, tel, office FROM persons WHERE pid = $1`
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, pid); err != nil {
		return nil, err
	}
	return &person, nil
}
