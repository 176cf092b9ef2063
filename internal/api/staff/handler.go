package staff

import (
	"encoding/json"
	"net/http"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// StaffService define o contrato para as operações de registro e login.
type StaffService interface {
	Register(ctx domain.Context, registration domain.StaffRegistration) (domain.Staff, error)
	Login(ctx domain.Context, email string, password string) (string, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler agrupa todos os métodos de Handler de funcionários.
type Handler struct {
	Service StaffService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StaffService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse padroniza o tratamento de erros e respostas HTTP.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			json.NewEncoder(w).Encode(data)
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves
	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de funcionários:", err)
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

// RegisterStaffHandler lida com a requisição POST /staff/register.
// @Summary Registra um novo funcionário
// @Description Cria um novo funcionário, hasheia a senha e salva no banco de dados.
// @Tags staff
// @Accept json
// @Produce json
// @Param registration body domain.StaffRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.Staff "Funcionário registrado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Router /staff/register [post]
func (h *Handler) RegisterStaffHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var registration domain.StaffRegistration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	staff, err := h.Service.Register(ctx, registration)
	h.handleServiceResponse(w, r, staff, err, http.StatusCreated)
}

// LoginStaffHandler lida com a requisição POST /staff/login.
// @Summary Autentica um funcionário
// @Description Valida as credenciais e retorna um token JWT.
// @Tags staff
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credenciais de login"
// @Success 200 {object} map[string]string "Token JWT"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /staff/login [post]
func (h *Handler) LoginStaffHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var credentials LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	token, err := h.Service.Login(ctx, credentials.Email, credentials.Password)
	h.handleServiceResponse(w, r, map[string]string{"token": token}, err, http.StatusOK)
}
