package gamerepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/cache"
	"boardcamp/internal/pkg/logger"
)

// Chave de cache para jogos individuais. O TTL é curto porque o estoque muda
// a cada aluguel criado; a invalidação explícita acontece no rentalrepo.
const gameCacheKey = "game:%s"
const gameCacheTTL = 5 * time.Minute

// GameRepository implementa a interface domain.GameRepository.
// Contém as conexões necessárias para acessar dados (DB e Cache).
type GameRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewGameRepository cria e retorna uma nova instância do Repositório de Jogos.
func NewGameRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *GameRepository {
	return &GameRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo jogo no banco de dados.
func (r *GameRepository) Save(ctx domain.Context, game domain.Game) (domain.Game, error) {
	r.logger.Debug("Iniciando Save de jogo no repositório.", map[string]interface{}{"name": game.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO games (id, name, image, stock_total, price_per_day)
                       VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		game.ID,
		game.Name,
		game.Image,
		game.StockTotal,
		game.PricePerDay,
	)

	if err != nil {
		r.logger.Error("Falha ao inserir jogo no DB.", err)
		return domain.Game{}, apperror.NewDBError("failed to insert game", err)
	}

	r.logger.Info("Jogo salvo com sucesso no repositório.", map[string]interface{}{"game_id": game.ID, "name": game.Name})
	return game, nil
}

// FindByID busca um jogo pelo ID, utilizando a estratégia Cache-Aside.
func (r *GameRepository) FindByID(ctx domain.Context, id string) (domain.Game, error) {
	ctxGo, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(gameCacheKey, id)
	var game domain.Game

	// --- 1. Estratégia Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxGo, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &game) == nil {
			// Cache HIT
			return game, nil
		}
		// Se a desserialização falhar, continuamos para o DB
	}
	// Erros reais de cache (conexão perdida etc.) não impedem a busca no DB.

	// --- 2. Busca no Banco de Dados (PostgreSQL) ---
	const query = `SELECT id, name, image, stock_total, price_per_day FROM games WHERE id = $1`

	err = r.DB.QueryRowContext(ctxGo, query, id).Scan(
		&game.ID,
		&game.Name,
		&game.Image,
		&game.StockTotal,
		&game.PricePerDay,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Game{}, apperror.NewNotFoundError("a game with this id does not exist")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar jogo no DB.", err)
		return domain.Game{}, apperror.NewDBError("Falha ao buscar jogo", err)
	}

	// --- 3. Estratégia Cache-Aside (WRITE) ---
	if gameJSON, marshalErr := json.Marshal(game); marshalErr == nil {
		r.Cache.Set(ctxGo, key, gameJSON, gameCacheTTL)
	}

	return game, nil
}

// FindAll retorna todos os jogos do catálogo, sem garantia de ordenação.
func (r *GameRepository) FindAll(ctx domain.Context) ([]domain.Game, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, name, image, stock_total, price_per_day FROM games`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar jogos no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar jogos", err)
	}
	defer rows.Close()

	games := []domain.Game{}
	for rows.Next() {
		var game domain.Game
		if err := rows.Scan(&game.ID, &game.Name, &game.Image, &game.StockTotal, &game.PricePerDay); err != nil {
			r.logger.Error("Falha ao mapear linha de jogo.", err)
			return nil, apperror.NewDBError("Falha ao mapear jogo", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar jogos", err)
	}

	return games, nil
}

// ExistsByName verifica se já existe um jogo com o nome informado.
func (r *GameRepository) ExistsByName(ctx domain.Context, name string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT EXISTS (SELECT 1 FROM games WHERE name = $1)`

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, name).Scan(&exists); err != nil {
		r.logger.Error("Falha ao verificar nome de jogo no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar nome de jogo", err)
	}

	return exists, nil
}
