package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"boardcamp/config"
	"boardcamp/internal/pkg/cache"
	"boardcamp/internal/pkg/database"
	"boardcamp/internal/pkg/logger"
	"boardcamp/internal/pkg/token"

	// Camadas por entidade para Injeção de Dependências
	"boardcamp/internal/api/customer"
	"boardcamp/internal/api/game"
	"boardcamp/internal/api/rental"
	"boardcamp/internal/api/router"
	"boardcamp/internal/api/staff"
	"boardcamp/internal/repository/customerrepo"
	"boardcamp/internal/repository/gamerepo"
	"boardcamp/internal/repository/rentalrepo"
	"boardcamp/internal/repository/staffrepo"
	"boardcamp/internal/service/customerservice"
	"boardcamp/internal/service/gameservice"
	"boardcamp/internal/service/rentalservice"
	"boardcamp/internal/service/staffservice"
)

func main() {
	// 1. Configuração e Inicialização
	stdlog.Println("⚡ Inicializando serviço Boardcamp...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	// Se não existir, as variáveis essenciais podem estar no ambiente do
	// sistema (ex: Docker), então apenas avisamos.
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Clientes
	customerRepo := customerrepo.NewCustomerRepository(db, cfg.DBTimeout, log)
	customerSvc := customerservice.NewService(customerRepo, log)
	customerHandler := customer.NewHandler(customerSvc, log)
	log.Debug("Módulo de Clientes inicializado.", nil)

	// B. Jogos
	gameRepo := gamerepo.NewGameRepository(db, cacheClient, cfg.DBTimeout, log)
	gameSvc := gameservice.NewService(gameRepo, log)
	gameHandler := game.NewHandler(gameSvc, log)
	log.Debug("Módulo de Jogos inicializado.", nil)

	// C. Aluguéis (o núcleo da locadora)
	rentalRepo := rentalrepo.NewRentalRepository(db, cacheClient, cfg.DBTimeout, log)
	rentalSvc := rentalservice.NewService(rentalRepo, log)
	rentalHandler := rental.NewHandler(rentalSvc, log)
	log.Debug("Módulo de Aluguéis inicializado.", nil)

	// D. Funcionários
	staffRepo := staffrepo.NewStaffRepository(db, cfg.DBTimeout, log)
	staffSvc := staffservice.NewService(staffRepo, tokenSvc, log)
	staffHandler := staff.NewHandler(staffSvc, log)
	log.Debug("Módulo de Funcionários inicializado.", nil)

	// 4. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(customerHandler, gameHandler, rentalHandler, staffHandler, tokenSvc, cacheClient, router.RateLimitConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor Boardcamp ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
