package gameservice

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// GameRepository define o contrato que o Serviço de Jogos espera da camada de
// Persistência.
type GameRepository interface {
	Save(ctx domain.Context, game domain.Game) (domain.Game, error)
	FindByID(ctx domain.Context, id string) (domain.Game, error)
	FindAll(ctx domain.Context) ([]domain.Game, error)
	ExistsByName(ctx domain.Context, name string) (bool, error)
}

// Service é a estrutura que implementa a interface domain.GameService.
type Service struct {
	repo   GameRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Jogos.
func NewService(repo GameRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateGame valida os dados de entrada, garante a unicidade do nome e
// persiste o novo jogo.
func (s *Service) CreateGame(ctx domain.Context, body domain.GameRequest) (domain.Game, error) {
	s.logger.Debug("Iniciando criação de jogo no serviço.", map[string]interface{}{"name": body.Name})

	if err := validateGameRequest(body); err != nil {
		s.logger.Warn("Falha na validação do jogo.", map[string]interface{}{"name": body.Name, "error": err.Error()})
		return domain.Game{}, err
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateGame", nil)
	}

	// Unicidade de nome entre todos os jogos.
	exists, err := s.repo.ExistsByName(ctxGo, body.Name)
	if err != nil {
		s.logger.Error("Falha ao verificar nome de jogo no repositório.", err)
		return domain.Game{}, err
	}
	if exists {
		return domain.Game{}, apperror.NewConflictError("A game with this name already exists")
	}

	game := domain.Game{
		ID:          uuid.NewString(),
		Name:        body.Name,
		Image:       body.Image,
		StockTotal:  body.StockTotal,
		PricePerDay: body.PricePerDay,
	}

	createdGame, err := s.repo.Save(ctxGo, game)
	if err != nil {
		s.logger.Error("Falha ao salvar jogo no repositório.", err)
		return domain.Game{}, err
	}

	s.logger.Info("Jogo criado com sucesso.", map[string]interface{}{"game_id": createdGame.ID, "name": createdGame.Name})
	return createdGame, nil
}

// GetGameByID busca um jogo pelo ID.
func (s *Service) GetGameByID(ctx domain.Context, id string) (domain.Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Game{}, apperror.NewValidationError("O ID do jogo deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetGameByID", nil)
	}

	game, err := s.repo.FindByID(ctxGo, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Game{}, err
	}

	return game, nil
}

// ListGames busca todos os jogos do catálogo.
func (s *Service) ListGames(ctx domain.Context) ([]domain.Game, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para ListGames", nil)
	}

	games, err := s.repo.FindAll(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao listar jogos no repositório.", err)
		return nil, err
	}

	return games, nil
}

// validateGameRequest aplica as pré-condições de formato do payload de jogo.
func validateGameRequest(body domain.GameRequest) error {
	if strings.TrimSpace(body.Name) == "" {
		return apperror.NewValidationError("O nome do jogo não pode ser vazio.")
	}
	if len(body.Name) > 150 {
		return apperror.NewValidationError("O nome do jogo deve ter no máximo 150 caracteres.")
	}
	if body.StockTotal < 1 {
		return apperror.NewValidationError("O valor stockTotal deve ser maior que zero")
	}
	if body.PricePerDay < 1 {
		return apperror.NewValidationError("O valor pricePerDay deve ser maior que zero")
	}
	return nil
}
