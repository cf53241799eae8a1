package postgres

import (
	"database/sql"

	"petreserve-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ReservationRepository
	repository.StaffRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ReservationRepository: NewReservationRepository(db),
		StaffRepository:       NewStaffRepository(db),
	}
}
