package staffservice

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
	"boardcamp/internal/pkg/token"
)

// StaffRepository define o contrato que o Serviço de Funcionários espera da
// camada de Persistência.
type StaffRepository interface {
	Save(ctx domain.Context, staff domain.Staff) (domain.Staff, error)
	FindByEmail(ctx domain.Context, email string) (domain.Staff, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(staffID string, staffRole string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Service implementa a interface domain.StaffService.
type Service struct {
	repo     StaffRepository
	tokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do Serviço de Funcionários.
func NewService(repo StaffRepository, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra um novo funcionário com a role padrão (attendant).
// A senha nunca é armazenada em claro: apenas o hash bcrypt é persistido.
func (s *Service) Register(ctx domain.Context, registration domain.StaffRegistration) (domain.Staff, error) {
	if registration.Email == "" || registration.Password == "" {
		return domain.Staff{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Staff{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para Register", nil)
	}

	newStaff := domain.Staff{
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleAttendant,
	}

	staff, err := s.repo.Save(ctxGo, newStaff)
	if err != nil {
		// Se for um erro de DB (possivelmente e-mail duplicado, coluna UNIQUE),
		// o traduzimos para um erro de Conflito de Negócio (409 Conflict).
		var dbErr *apperror.InternalError
		if errors.As(err, &dbErr) {
			return domain.Staff{}, apperror.NewConflictError(
				fmt.Sprintf("O email '%s' já está em uso.", registration.Email),
			)
		}

		s.logger.Error("Falha ao salvar funcionário no repositório.", err)
		return domain.Staff{}, err
	}

	s.logger.Info("Funcionário registrado com sucesso.", map[string]interface{}{"staff_id": staff.ID})
	return staff, nil
}

// Login autentica um funcionário e emite um JWT com o ID e a role.
// Credenciais inválidas e e-mail inexistente produzem a mesma resposta,
// para não revelar quais e-mails estão cadastrados.
func (s *Service) Login(ctx domain.Context, email string, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para Login", nil)
	}

	staff, err := s.repo.FindByEmail(ctxGo, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		s.logger.Error("Falha ao buscar funcionário no repositório.", err)
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(staff.ID, string(staff.Role))
	if err != nil {
		s.logger.Error("Falha ao gerar token JWT.", err)
		return "", apperror.NewInternalError("Falha ao gerar token de acesso.", err)
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"staff_id": staff.ID})
	return tokenString, nil
}
