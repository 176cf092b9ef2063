package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"boardcamp/internal/api/customer"
	"boardcamp/internal/api/game"
	"boardcamp/internal/api/rental"
	"boardcamp/internal/api/staff"
	"boardcamp/internal/domain"
	"boardcamp/internal/pkg/cache"
	"boardcamp/internal/pkg/middleware"
)

// RateLimitConfig agrupa os parâmetros do rate limiter global.
type RateLimitConfig struct {
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	customerHandler *customer.Handler,
	gameHandler *game.Handler,
	rentalHandler *rental.Handler,
	staffHandler *staff.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimit RateLimitConfig,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	// Em projetos maiores, pode-se usar um mux de terceiros (e.g., gorilla/mux, chi)
	mux := http.NewServeMux()

	// --- 1. Rotas de Health Check e Documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler())

	// --- 2. Rotas de Clientes ---

	// GET/POST /customers
	mux.HandleFunc("/customers", customerHandler.CustomersHandler)

	// GET /customers/{id}
	mux.HandleFunc("/customers/", customerHandler.GetCustomerByIDHandler)

	// --- 3. Rotas de Jogos ---

	// GET/POST /games
	mux.HandleFunc("/games", gameHandler.GamesHandler)

	// GET /games/{id} (leitura com cache-aside)
	mux.HandleFunc("/games/", gameHandler.GetGameByIDHandler)

	// --- 4. Rotas de Aluguéis ---

	// GET/POST /rentals
	mux.HandleFunc("/rentals", rentalHandler.RentalsHandler)

	// POST /rentals/{id}/return e DELETE /rentals/{id} compartilham o mesmo
	// prefixo no ServeMux; o método decide o destino. A exclusão é protegida
	// por JWT (somente admin).
	authMW := middleware.NewAuthMiddleware(tokenSvc)
	adminOnly := middleware.PermissionMiddleware(domain.RoleAdmin)
	protectedDelete := authMW(adminOnly(rentalHandler.DeleteRentalHandler))

	mux.HandleFunc("/rentals/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			protectedDelete(w, r)
			return
		}
		rentalHandler.CloseRentalHandler(w, r)
	})

	// --- 5. Rotas de Funcionários ---

	mux.HandleFunc("/staff/register", staffHandler.RegisterStaffHandler)
	mux.HandleFunc("/staff/login", staffHandler.LoginStaffHandler)

	// --- 6. Middlewares Globais ---

	return middleware.RateLimiter(cacheClient, rateLimit.MaxRequests, rateLimit.Period)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
