package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baula-dev/baula-sync/internal/models"
)

// RoomRepository handles persistence of rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs the repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Upsert inserts the room or refreshes an existing one by its external id.
func (r *RoomRepository) Upsert(ctx context.Context, room models.Room) error {
	const query = `INSERT INTO rooms (id, short, address, size)
        VALUES (:id, :short, :address, :size)
        ON CONFLICT (id) DO UPDATE SET short = EXCLUDED.short, address = EXCLUDED.address, size = EXCLUDED.size`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("upsert room: %w", err)
	}
	return nil
}

// FindByID returns a room by its external id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT id, short, address, size FROM rooms WHERE id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}
