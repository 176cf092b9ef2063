package customer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// CustomerService define o contrato que o Handler espera da camada de Serviço.
type CustomerService interface {
	CreateCustomer(ctx domain.Context, body domain.CustomerRequest) (domain.Customer, error)
	GetCustomerByID(ctx domain.Context, id string) (domain.Customer, error)
	ListCustomers(ctx domain.Context) ([]domain.Customer, error)
}

// Handler agrupa todos os métodos de Handler de clientes.
type Handler struct {
	Service CustomerService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CustomerService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Sucesso
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

	// TRATAMENTO DE ERROS
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

// CustomersHandler lida com as requisições GET e POST em /customers.
// @Summary Lista ou cria clientes
// @Description GET lista todos os clientes; POST cria um novo cliente.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body domain.CustomerRequest true "Dados do cliente para criação (POST)"
// @Success 200 {array} domain.Customer "Lista de clientes"
// @Success 201 {object} domain.Customer "Cliente criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Telefone ou CPF inválidos"
// @Failure 409 {object} domain.ErrorResponse "CPF já cadastrado"
// @Router /customers [get]
// @Router /customers [post]
func (h *Handler) CustomersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		customers, err := h.Service.ListCustomers(ctx)
		h.handleServiceResponse(w, r, customers, err, http.StatusOK)

	case http.MethodPost:
		var body domain.CustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
			return
		}

		customer, err := h.Service.CreateCustomer(ctx, body)
		h.handleServiceResponse(w, r, customer, err, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// GetCustomerByIDHandler lida com a requisição GET /customers/{id}.
// @Summary Obtém um cliente por ID
// @Description Busca um cliente específico pelo seu ID.
// @Tags customers
// @Produce json
// @Param id path string true "ID do Cliente"
// @Success 200 {object} domain.Customer "Cliente encontrado"
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Router /customers/{id} [get]
func (h *Handler) GetCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Extrai o ID do último segmento da URL: /customers/{id}
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")

	if len(segments) != 2 || segments[1] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	customerID := segments[1]

	customer, err := h.Service.GetCustomerByID(ctx, customerID)
	h.handleServiceResponse(w, r, customer, err, http.StatusOK)
}
