package postgres

import (
	"context"
	"database/sql"
	"strings"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	logger.EnterMethod("staffRepository.GetByID", "staffID", id)

	s := &domain.Staff{}
	query := `SELECT id, email, name, role, password_hash, COALESCE(push_token, ''), created_on FROM staff WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Email, &s.Name, &s.Role, &s.PasswordHash, &s.PushToken, &s.CreatedOn)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("staffRepository.GetByID", err, "staffID", id)
		return nil, err
	}

	logger.ExitMethod("staffRepository.GetByID", "staffID", id)
	return s, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	logger.EnterMethod("staffRepository.GetByEmail")

	s := &domain.Staff{}
	query := `SELECT id, email, name, role, password_hash, COALESCE(push_token, ''), created_on FROM staff WHERE lower(email) = $1`
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&s.ID, &s.Email, &s.Name, &s.Role, &s.PasswordHash, &s.PushToken, &s.CreatedOn)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("staffRepository.GetByEmail", err)
		return nil, err
	}

	logger.ExitMethod("staffRepository.GetByEmail", "staffID", s.ID)
	return s, nil
}
