package postgres

import (
	"context"
	"database/sql"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/repository"
)

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, s *domain.Staff) error {
	query := `INSERT INTO staff (email, name, password_hash, role, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Email, s.Name, s.PasswordHash, s.Role, time.Now().UTC()).Scan(&s.ID)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	s := &domain.Staff{}
	query := `SELECT id, email, name, password_hash, role, created_on FROM staff WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&s.ID, &s.Email, &s.Name, &s.PasswordHash, &s.Role, &s.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
