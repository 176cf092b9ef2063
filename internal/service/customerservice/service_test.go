package customerservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
	"boardcamp/internal/service/customerservice"
)

// MockCustomerRepository é uma implementação mock da interface CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx domain.Context, customer domain.Customer) (domain.Customer, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx domain.Context, id string) (domain.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx domain.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCPF(ctx domain.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

// TestCreateCustomer_Success testa a criação de um cliente válido.
func TestCreateCustomer_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	body := domain.CustomerRequest{
		Name:  "João da Silva",
		Phone: "21998765432",
		CPF:   "01234567890",
	}

	mockRepo.On("ExistsByCPF", mock.Anything, "01234567890").Return(false, nil)
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Customer) bool {
		return c.ID != "" && c.Name == body.Name && c.Phone == body.Phone && c.CPF == body.CPF
	})).Return(domain.Customer{ID: uuid.New().String(), Name: body.Name, Phone: body.Phone, CPF: body.CPF}, nil)

	result, err := svc.CreateCustomer(context.Background(), body)

	assert.NoError(t, err)
	assert.Equal(t, body.CPF, result.CPF)
	assert.NotEmpty(t, result.ID)
	mockRepo.AssertExpectations(t)
}

// TestCreateCustomer_Fail_InvalidCPF testa CPF com caracteres não numéricos.
// O tamanho está correto (11), mas há letras: o erro é de dígitos.
func TestCreateCustomer_Fail_InvalidCPF(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	body := domain.CustomerRequest{
		Name:  "João da Silva",
		Phone: "21998765432",
		CPF:   "abc12345678",
	}

	_, err := svc.CreateCustomer(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, "O CPF deve conter apenas números", err.Error())
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCreateCustomer_Fail_InvalidPhone testa telefone com caracteres não numéricos.
func TestCreateCustomer_Fail_InvalidPhone(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	body := domain.CustomerRequest{
		Name:  "João da Silva",
		Phone: "21-99876543",
		CPF:   "01234567890",
	}

	_, err := svc.CreateCustomer(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, "O telefone deve conter apenas números", err.Error())
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCreateCustomer_Fail_CPFConflict testa a unicidade do CPF.
func TestCreateCustomer_Fail_CPFConflict(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	body := domain.CustomerRequest{
		Name:  "Maria Oliveira",
		Phone: "1133224455",
		CPF:   "98765432100",
	}

	mockRepo.On("ExistsByCPF", mock.Anything, "98765432100").Return(true, nil)

	_, err := svc.CreateCustomer(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Equal(t, "A customer with this cpf already exists", err.Error())
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestCreateCustomer_Fail_ShortCPF testa a pré-condição de tamanho do CPF.
func TestCreateCustomer_Fail_ShortCPF(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	body := domain.CustomerRequest{
		Name:  "Maria Oliveira",
		Phone: "1133224455",
		CPF:   "123456789",
	}

	_, err := svc.CreateCustomer(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "ExistsByCPF", mock.Anything, mock.Anything)
}

// TestGetCustomerByID_Fail_NotFound testa a busca de cliente inexistente.
func TestGetCustomerByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	customerID := uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, customerID).
		Return(domain.Customer{}, apperror.NewNotFoundError("Could not find user with this id"))

	_, err := svc.GetCustomerByID(context.Background(), customerID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "Could not find user with this id", err.Error())
	mockRepo.AssertExpectations(t)
}

// TestListCustomers_Success testa a listagem de clientes.
func TestListCustomers_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockLogger := logger.NewLogger("debug")

	svc := customerservice.NewService(mockRepo, mockLogger)

	customers := []domain.Customer{
		{ID: uuid.New().String(), Name: "João", Phone: "21998765432", CPF: "01234567890"},
		{ID: uuid.New().String(), Name: "Maria", Phone: "1133224455", CPF: "98765432100"},
	}

	mockRepo.On("FindAll", mock.Anything).Return(customers, nil)

	result, err := svc.ListCustomers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	mockRepo.AssertExpectations(t)
}
