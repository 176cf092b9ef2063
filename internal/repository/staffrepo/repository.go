package staffrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// StaffRepository implementa a interface domain.StaffRepository
type StaffRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStaffRepository cria uma nova instância do StaffRepository, injetando o DB.
func NewStaffRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *StaffRepository {
	return &StaffRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo funcionário no banco de dados.
func (r *StaffRepository) Save(ctx domain.Context, staff domain.Staff) (domain.Staff, error) {
	r.logger.Debug("Iniciando Save de funcionário no repositório.", map[string]interface{}{"email": staff.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	staff.ID = uuid.NewString()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	const insertSQL = `INSERT INTO staff (id, email, password_hash, role, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		staff.ID,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.CreatedAt,
		staff.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Falha ao inserir funcionário no DB.", err)
		return domain.Staff{}, apperror.NewDBError("failed to insert staff", err)
	}

	r.logger.Info("Funcionário salvo com sucesso no repositório.", map[string]interface{}{"staff_id": staff.ID})
	return staff, nil
}

// FindByEmail busca um funcionário pelo endereço de e-mail.
func (r *StaffRepository) FindByEmail(ctx domain.Context, email string) (domain.Staff, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, email, password_hash, role, created_at, updated_at FROM staff WHERE email = $1`

	var staff domain.Staff
	err := r.DB.QueryRowContext(ctxTimeout, query, email).Scan(
		&staff.ID,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Staff{}, apperror.NewNotFoundError(fmt.Sprintf("Funcionário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar funcionário por email no DB.", err)
		return domain.Staff{}, apperror.NewDBError("failed to find staff by email", err)
	}

	return staff, nil
}
