package game

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// GameService define o contrato que o Handler espera da camada de Serviço.
type GameService interface {
	CreateGame(ctx domain.Context, body domain.GameRequest) (domain.Game, error)
	GetGameByID(ctx domain.Context, id string) (domain.Game, error)
	ListGames(ctx domain.Context) ([]domain.Game, error)
}

// Handler agrupa todos os métodos de Handler de jogos.
type Handler struct {
	Service GameService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc GameService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
				http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// GamesHandler lida com as requisições GET e POST em /games.
// @Summary Lista ou cria jogos
// @Description GET lista o catálogo; POST cria um novo jogo.
// @Tags games
// @Accept json
// @Produce json
// @Param game body domain.GameRequest true "Dados do jogo para criação (POST)"
// @Success 200 {array} domain.Game "Catálogo de jogos"
// @Success 201 {object} domain.Game "Jogo criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Nome de jogo já cadastrado"
// @Router /games [get]
// @Router /games [post]
func (h *Handler) GamesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		games, err := h.Service.ListGames(ctx)
		h.handleServiceResponse(w, r, games, err, http.StatusOK)

	case http.MethodPost:
		var body domain.GameRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
			return
		}

		game, err := h.Service.CreateGame(ctx, body)
		h.handleServiceResponse(w, r, game, err, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// GetGameByIDHandler lida com a requisição GET /games/{id}.
// @Summary Obtém um jogo por ID
// @Description Busca um jogo específico pelo seu ID (leitura com cache).
// @Tags games
// @Produce json
// @Param id path string true "ID do Jogo"
// @Success 200 {object} domain.Game "Jogo encontrado"
// @Failure 404 {object} domain.ErrorResponse "Jogo não encontrado"
// @Router /games/{id} [get]
func (h *Handler) GetGameByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Extrai o ID do último segmento da URL: /games/{id}
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")

	if len(segments) != 2 || segments[1] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	gameID := segments[1]

	game, err := h.Service.GetGameByID(ctx, gameID)
	h.handleServiceResponse(w, r, game, err, http.StatusOK)
}
