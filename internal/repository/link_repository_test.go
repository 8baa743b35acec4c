package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baula-dev/baula-sync/internal/models"
)

func TestLinkRepositoryAddStaffLinksCountsInserted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLinkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO staff_links")).
		WithArgs("p-1", "c1", "2026s").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO staff_links")).
		WithArgs("p-2", "c1", "2026s").
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.AddStaffLinks(context.Background(), []models.StaffLink{
		{PID: "p-1", CourseID: "c1", Semester: "2026s"},
		{PID: "p-2", CourseID: "c1", Semester: "2026s"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkRepositoryAddStaffLinksEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLinkRepository(db)

	added, err := repo.AddStaffLinks(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkRepositoryAddCompetenceLinks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLinkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO competence_links")).
		WithArgs("KMK_I_1", "c1", "2026s").
		WillReturnResult(sqlmock.NewResult(0, 1))

	added, err := repo.AddCompetenceLinks(context.Background(), []models.CompetenceFulfillment{
		{CourseID: "c1", Semester: "2026s", CompID: "KMK_I_1", Fulfillment: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkRepositoryAddModuleLinks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLinkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO module_course_links")).
		WithArgs("mc-1", "c1", "2026s").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO module_course_links")).
		WithArgs("mc-2", "c1", "2026s").
		WillReturnResult(sqlmock.NewResult(0, 1))

	added, err := repo.AddModuleLinks(context.Background(), []models.ModuleCourseLink{
		{MCID: "mc-1", CourseID: "c1", Semester: "2026s"},
		{MCID: "mc-2", CourseID: "c1", Semester: "2026s"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkRepositoryAddStaffLinksStopsOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLinkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO staff_links")).
		WithArgs("p-1", "c1", "2026s").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO staff_links")).
		WithArgs("p-2", "c1", "2026s").
		WillReturnError(assert.AnError)

	added, err := repo.AddStaffLinks(context.Background(), []models.StaffLink{
		{PID: "p-1", CourseID: "c1", Semester: "2026s"},
		{PID: "p-2", CourseID: "c1", Semester: "2026s"},
	})
	require.Error(t, err)
	assert.Equal(t, 1, added)
	require.NoError(t, mock.ExpectationsWereMet())
}
