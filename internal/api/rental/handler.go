package rental

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// RentalService define o contrato que o Handler espera da camada de Serviço.
type RentalService interface {
	CreateRental(ctx domain.Context, body domain.RentalRequest) (domain.Rental, error)
	CloseRental(ctx domain.Context, id string) (domain.Rental, error)
	DeleteRental(ctx domain.Context, id string) error
	ListRentals(ctx domain.Context) ([]domain.Rental, error)
}

// Handler agrupa todos os métodos de Handler de aluguéis.
type Handler struct {
	Service RentalService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc RentalService, log logger.Logger) *Handler {
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

// RentalsHandler lida com as requisições GET e POST em /rentals.
// A criação de aluguel responde 200 (e não 201); clientes da API dependem
// desse contrato.
// @Summary Lista ou cria aluguéis
// @Description GET lista todos os aluguéis; POST registra um novo aluguel.
// @Tags rentals
// @Accept json
// @Produce json
// @Param rental body domain.RentalRequest true "Dados do aluguel para criação (POST)"
// @Success 200 {object} domain.Rental "Aluguel criado ou lista de aluguéis"
// @Failure 404 {object} domain.ErrorResponse "Jogo ou cliente inexistente"
// @Failure 422 {object} domain.ErrorResponse "Jogo sem estoque"
// @Router /rentals [get]
// @Router /rentals [post]
func (h *Handler) RentalsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		rentals, err := h.Service.ListRentals(ctx)
		h.handleServiceResponse(w, r, rentals, err, http.StatusOK)

	case http.MethodPost:
		var body domain.RentalRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
			return
		}

		rental, err := h.Service.CreateRental(ctx, body)
		h.handleServiceResponse(w, r, rental, err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// CloseRentalHandler lida com a requisição POST /rentals/{id}/return.
// @Summary Encerra um aluguel
// @Description Registra a devolução do jogo e fixa a multa por atraso.
// @Tags rentals
// @Produce json
// @Param id path string true "ID do Aluguel"
// @Success 200 {object} domain.Rental "Aluguel encerrado"
// @Failure 404 {object} domain.ErrorResponse "Aluguel não encontrado"
// @Failure 422 {object} domain.ErrorResponse "Aluguel já encerrado"
// @Router /rentals/{id}/return [post]
func (h *Handler) CloseRentalHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Extrai o ID da URL: /rentals/{id}/return
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")

	if len(segments) != 3 || segments[2] != "return" || segments[1] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	rentalID := segments[1]

	rental, err := h.Service.CloseRental(ctx, rentalID)
	h.handleServiceResponse(w, r, rental, err, http.StatusOK)
}

// DeleteRentalHandler lida com a requisição DELETE /rentals/{id}.
// Rota protegida: requer token JWT de funcionário com role admin.
// @Summary Exclui um aluguel encerrado
// @Description Remove permanentemente um aluguel já encerrado. Aluguéis ativos não podem ser excluídos.
// @Tags rentals
// @Produce json
// @Param id path string true "ID do Aluguel"
// @Success 200 "Aluguel excluído"
// @Failure 400 {object} domain.ErrorResponse "Aluguel ainda ativo"
// @Failure 404 {object} domain.ErrorResponse "Aluguel não encontrado"
// @Security ApiKeyAuth
// @Router /rentals/{id} [delete]
func (h *Handler) DeleteRentalHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Extrai o ID da URL: /rentals/{id}
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")

	if len(segments) != 2 || segments[1] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	rentalID := segments[1]

	err := h.Service.DeleteRental(ctx, rentalID)
	h.handleServiceResponse(w, r, nil, err, http.StatusOK)
}
