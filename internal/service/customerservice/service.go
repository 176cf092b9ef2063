package customerservice

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// CustomerRepository define o contrato que o Serviço de Clientes espera da
// camada de Persistência.
type CustomerRepository interface {
	Save(ctx domain.Context, customer domain.Customer) (domain.Customer, error)
	FindByID(ctx domain.Context, id string) (domain.Customer, error)
	FindAll(ctx domain.Context) ([]domain.Customer, error)
	ExistsByCPF(ctx domain.Context, cpf string) (bool, error)
}

// Service é a estrutura que implementa a interface domain.CustomerService.
type Service struct {
	repo   CustomerRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Clientes.
func NewService(repo CustomerRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateCustomer valida os dados de entrada, garante a unicidade do CPF e
// persiste o novo cliente.
func (s *Service) CreateCustomer(ctx domain.Context, body domain.CustomerRequest) (domain.Customer, error) {
	s.logger.Debug("Iniciando criação de cliente no serviço.", map[string]interface{}{"cpf": body.CPF})

	if err := validateCustomerRequest(body); err != nil {
		s.logger.Warn("Falha na validação do cliente.", map[string]interface{}{"error": err.Error()})
		return domain.Customer{}, err
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateCustomer", nil)
	}

	// Unicidade de CPF entre todos os clientes.
	exists, err := s.repo.ExistsByCPF(ctxGo, body.CPF)
	if err != nil {
		s.logger.Error("Falha ao verificar CPF no repositório.", err)
		return domain.Customer{}, err
	}
	if exists {
		return domain.Customer{}, apperror.NewConflictError("A customer with this cpf already exists")
	}

	customer := domain.Customer{
		ID:    uuid.NewString(),
		Name:  body.Name,
		Phone: body.Phone,
		CPF:   body.CPF,
	}

	createdCustomer, err := s.repo.Save(ctxGo, customer)
	if err != nil {
		s.logger.Error("Falha ao salvar cliente no repositório.", err)
		return domain.Customer{}, err
	}

	s.logger.Info("Cliente criado com sucesso.", map[string]interface{}{"customer_id": createdCustomer.ID})
	return createdCustomer, nil
}

// GetCustomerByID busca um cliente pelo ID.
func (s *Service) GetCustomerByID(ctx domain.Context, id string) (domain.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Customer{}, apperror.NewValidationError("O ID do cliente deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetCustomerByID", nil)
	}

	customer, err := s.repo.FindByID(ctxGo, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Customer{}, err
	}

	return customer, nil
}

// ListCustomers busca todos os clientes cadastrados.
func (s *Service) ListCustomers(ctx domain.Context) ([]domain.Customer, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para ListCustomers", nil)
	}

	customers, err := s.repo.FindAll(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao listar clientes no repositório.", err)
		return nil, err
	}

	return customers, nil
}

// validateCustomerRequest aplica as pré-condições de formato do payload e as
// regras de dígitos do telefone e do CPF.
func validateCustomerRequest(body domain.CustomerRequest) error {
	if strings.TrimSpace(body.Name) == "" {
		return apperror.NewValidationError("O nome do cliente não pode ser vazio.")
	}
	if len(body.Name) > 150 {
		return apperror.NewValidationError("O nome do cliente deve ter no máximo 150 caracteres.")
	}
	if len(body.Phone) < 10 || len(body.Phone) > 11 {
		return apperror.NewValidationError("O telefone deve ter entre 10 e 11 dígitos.")
	}
	if len(body.CPF) != 11 {
		return apperror.NewValidationError("O CPF deve ter 11 dígitos.")
	}

	// As checagens de dígitos são independentes das checagens de tamanho acima.
	if !isDigits(body.Phone) {
		return apperror.NewValidationError("O telefone deve conter apenas números")
	}
	if !isDigits(body.CPF) {
		return apperror.NewValidationError("O CPF deve conter apenas números")
	}

	return nil
}

// isDigits verifica se a string é composta somente por dígitos decimais.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
