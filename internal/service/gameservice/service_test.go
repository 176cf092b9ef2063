package gameservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
	"boardcamp/internal/service/gameservice"
)

// MockGameRepository é uma implementação mock da interface GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Save(ctx domain.Context, game domain.Game) (domain.Game, error) {
	args := m.Called(ctx, game)
	return args.Get(0).(domain.Game), args.Error(1)
}

func (m *MockGameRepository) FindByID(ctx domain.Context, id string) (domain.Game, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Game), args.Error(1)
}

func (m *MockGameRepository) FindAll(ctx domain.Context) ([]domain.Game, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Game), args.Error(1)
}

func (m *MockGameRepository) ExistsByName(ctx domain.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// TestCreateGame_Success testa a criação de um jogo válido.
func TestCreateGame_Success(t *testing.T) {
	mockRepo := new(MockGameRepository)
	mockLogger := logger.NewLogger("debug")

	svc := gameservice.NewService(mockRepo, mockLogger)

	body := domain.GameRequest{
		Name:        "Banco Imobiliário",
		Image:       "http://example.com/banco.jpg",
		StockTotal:  3,
		PricePerDay: 1500,
	}

	mockRepo.On("ExistsByName", mock.Anything, "Banco Imobiliário").Return(false, nil)
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(g domain.Game) bool {
		return g.ID != "" && g.Name == body.Name && g.StockTotal == 3 && g.PricePerDay == 1500
	})).Return(domain.Game{ID: uuid.New().String(), Name: body.Name, Image: body.Image, StockTotal: 3, PricePerDay: 1500}, nil)

	result, err := svc.CreateGame(context.Background(), body)

	assert.NoError(t, err)
	assert.Equal(t, body.Name, result.Name)
	assert.NotEmpty(t, result.ID)
	mockRepo.AssertExpectations(t)
}

// TestCreateGame_Fail_NameConflict testa que dois jogos não podem ter o mesmo nome.
func TestCreateGame_Fail_NameConflict(t *testing.T) {
	mockRepo := new(MockGameRepository)
	mockLogger := logger.NewLogger("debug")

	svc := gameservice.NewService(mockRepo, mockLogger)

	body := domain.GameRequest{
		Name:        "Detetive",
		StockTotal:  1,
		PricePerDay: 2000,
	}

	mockRepo.On("ExistsByName", mock.Anything, "Detetive").Return(true, nil)

	_, err := svc.CreateGame(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Equal(t, "A game with this name already exists", err.Error())
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestCreateGame_Fail_ZeroStock testa a pré-condição de estoque mínimo na criação.
func TestCreateGame_Fail_ZeroStock(t *testing.T) {
	mockRepo := new(MockGameRepository)
	mockLogger := logger.NewLogger("debug")

	svc := gameservice.NewService(mockRepo, mockLogger)

	body := domain.GameRequest{
		Name:        "War",
		StockTotal:  0,
		PricePerDay: 1000,
	}

	_, err := svc.CreateGame(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "stockTotal")
	mockRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
}

// TestCreateGame_Fail_ZeroPrice testa a pré-condição de preço mínimo.
func TestCreateGame_Fail_ZeroPrice(t *testing.T) {
	mockRepo := new(MockGameRepository)
	mockLogger := logger.NewLogger("debug")

	svc := gameservice.NewService(mockRepo, mockLogger)

	body := domain.GameRequest{
		Name:        "War",
		StockTotal:  2,
		PricePerDay: 0,
	}

	_, err := svc.CreateGame(context.Background(), body)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "pricePerDay")
	mockRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
}

// TestGetGameByID_Fail_NotFound testa a busca por um jogo inexistente.
func TestGetGameByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockGameRepository)
	mockLogger := logger.NewLogger("debug")

	svc := gameservice.NewService(mockRepo, mockLogger)

	gameID := uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, gameID).
		Return(domain.Game{}, apperror.NewNotFoundError("a game with this id does not exist"))

	_, err := svc.GetGameByID(context.Background(), gameID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "a game with this id does not exist", err.Error())
	mockRepo.AssertExpectations(t)
}

// TestListGames_Success testa a listagem do catálogo.
func TestListGames_Success(t *testing.T) {
	mockRepo := new(MockGameRepository)
	mockLogger := logger.NewLogger("debug")

	svc := gameservice.NewService(mockRepo, mockLogger)

	games := []domain.Game{
		{ID: uuid.New().String(), Name: "Banco Imobiliário", StockTotal: 3, PricePerDay: 1500},
		{ID: uuid.New().String(), Name: "Detetive", StockTotal: 1, PricePerDay: 2000},
	}

	mockRepo.On("FindAll", mock.Anything).Return(games, nil)

	result, err := svc.ListGames(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	mockRepo.AssertExpectations(t)
}
