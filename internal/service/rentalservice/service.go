package rentalservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// RentalRepository define o contrato que o Serviço de Aluguéis espera da
// camada de Persistência. Create e Close executam a sequência
// leitura-verificação-escrita dentro de uma transação.
type RentalRepository interface {
	Create(ctx domain.Context, rental domain.Rental) (domain.Rental, error)
	Close(ctx domain.Context, id string, returnDate time.Time) (domain.Rental, error)
	Delete(ctx domain.Context, id string) error
	FindAll(ctx domain.Context) ([]domain.Rental, error)
}

// Service é a estrutura que implementa a interface domain.RentalService.
type Service struct {
	repo   RentalRepository
	logger logger.Logger
	now    func() time.Time // injetável em testes
}

// NewService cria e retorna uma nova instância do Serviço de Aluguéis.
func NewService(repo RentalRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock substitui a fonte de tempo do serviço. Usado em testes para
// tornar o cálculo da multa determinístico.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateRental registra um novo aluguel. A data do aluguel é o dia corrente e
// o aluguel nasce ativo (sem data de devolução, multa zero). O preço original
// e o decremento de estoque são resolvidos pela transação do repositório.
func (s *Service) CreateRental(ctx domain.Context, body domain.RentalRequest) (domain.Rental, error) {
	s.logger.Debug("Iniciando criação de aluguel no serviço.", map[string]interface{}{
		"customer_id": body.CustomerID,
		"game_id":     body.GameID,
		"days_rented": body.DaysRented,
	})

	if _, err := uuid.Parse(body.GameID); err != nil {
		return domain.Rental{}, apperror.NewValidationError("O ID do jogo deve ser um UUID válido.")
	}
	if _, err := uuid.Parse(body.CustomerID); err != nil {
		return domain.Rental{}, apperror.NewValidationError("O ID do cliente deve ser um UUID válido.")
	}
	if body.DaysRented < 1 {
		return domain.Rental{}, apperror.NewValidationError("O valor daysRented deve ser maior que zero")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateRental", nil)
	}

	rental := domain.Rental{
		ID:         uuid.NewString(),
		CustomerID: body.CustomerID,
		GameID:     body.GameID,
		RentDate:   domain.DateOnly(s.now()),
		DaysRented: body.DaysRented,
		DelayFee:   0,
	}

	createdRental, err := s.repo.Create(ctxGo, rental)
	if err != nil {
		s.logger.Error("Falha ao criar aluguel no repositório.", err)
		if _, ok := err.(apperror.AppError); ok {
			return domain.Rental{}, err
		}
		return domain.Rental{}, apperror.NewInternalError("Falha interna ao criar aluguel.", err)
	}

	s.logger.Info("Aluguel criado com sucesso.", map[string]interface{}{
		"rental_id":      createdRental.ID,
		"original_price": createdRental.OriginalPrice,
	})
	return createdRental, nil
}

// CloseRental encerra um aluguel ativo, registrando a devolução no dia
// corrente e fixando a multa por atraso. Encerrar um aluguel já encerrado
// falha; o estoque do jogo não é restaurado.
func (s *Service) CloseRental(ctx domain.Context, id string) (domain.Rental, error) {
	s.logger.Debug("Iniciando encerramento de aluguel no serviço.", map[string]interface{}{"rental_id": id})

	if _, err := uuid.Parse(id); err != nil {
		return domain.Rental{}, apperror.NewValidationError("O ID do aluguel deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CloseRental", nil)
	}

	returnDate := domain.DateOnly(s.now())

	closedRental, err := s.repo.Close(ctxGo, id, returnDate)
	if err != nil {
		s.logger.Error("Falha ao encerrar aluguel no repositório.", err)
		if _, ok := err.(apperror.AppError); ok {
			return domain.Rental{}, err
		}
		return domain.Rental{}, apperror.NewInternalError("Falha interna ao encerrar aluguel.", err)
	}

	s.logger.Info("Aluguel encerrado com sucesso.", map[string]interface{}{
		"rental_id": closedRental.ID,
		"delay_fee": closedRental.DelayFee,
	})
	return closedRental, nil
}

// DeleteRental remove permanentemente um aluguel encerrado.
func (s *Service) DeleteRental(ctx domain.Context, id string) error {
	s.logger.Debug("Iniciando exclusão de aluguel no serviço.", map[string]interface{}{"rental_id": id})

	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do aluguel deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteRental", nil)
	}

	if err := s.repo.Delete(ctxGo, id); err != nil {
		s.logger.Error("Falha ao excluir aluguel no repositório.", err)
		if _, ok := err.(apperror.AppError); ok {
			return err
		}
		return apperror.NewInternalError("Falha interna ao excluir aluguel.", err)
	}

	s.logger.Info("Aluguel excluído com sucesso.", map[string]interface{}{"rental_id": id})
	return nil
}

// ListRentals busca todos os aluguéis registrados.
func (s *Service) ListRentals(ctx domain.Context) ([]domain.Rental, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para ListRentals", nil)
	}

	rentals, err := s.repo.FindAll(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao listar aluguéis no repositório.", err)
		return nil, err
	}

	return rentals, nil
}
