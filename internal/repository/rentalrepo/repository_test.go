package rentalrepo_test

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
	"boardcamp/internal/repository/rentalrepo"
)

// fakeCache é um stub de cache.Client que registra as chaves invalidadas.
type fakeCache struct {
	deleted []string
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeCache) GetInt(ctx context.Context, key string) (int, error) { return 0, nil }
func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (f *fakeCache) Incr(ctx context.Context, key string) error { return nil }
func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func newTestRepo(t *testing.T) (*rentalrepo.RentalRepository, sqlmock.Sqlmock, *fakeCache) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cacheStub := &fakeCache{}
	repo := rentalrepo.NewRentalRepository(db, cacheStub, 5*time.Second, logger.NewLogger("error"))
	return repo, mock, cacheStub
}

func gameRow(id string, stockTotal int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "image", "stock_total", "price_per_day"}).
		AddRow(id, "Banco Imobiliário", "", stockTotal, 1500)
}

func customerRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "phone", "cpf"}).
		AddRow(id, "João Alfredo", "21998899222", "01234567890")
}

// TestCreate_Success testa o fluxo completo da transação de criação: o estoque
// do jogo é decrementado em exatamente 1, o preço original é fixado e o cache
// do jogo é invalidado após o commit.
func TestCreate_Success(t *testing.T) {
	repo, mock, cacheStub := newTestRepo(t)

	gameID := uuid.NewString()
	customerID := uuid.NewString()
	rentDate := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	rental := domain.Rental{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		GameID:     gameID,
		RentDate:   rentDate,
		DaysRented: 3,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, image, stock_total, price_per_day").
		WithArgs(gameID).
		WillReturnRows(gameRow(gameID, 1))
	mock.ExpectQuery("SELECT id, name, phone, cpf FROM customers").
		WithArgs(customerID).
		WillReturnRows(customerRow(customerID))
	mock.ExpectExec("UPDATE games SET stock_total = stock_total - 1").
		WithArgs(gameID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rentals").
		WithArgs(rental.ID, customerID, gameID, rentDate, 3, 4500).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), rental)

	assert.NoError(t, err)
	assert.Equal(t, 4500, created.OriginalPrice)
	assert.Nil(t, created.ReturnDate)
	assert.NotNil(t, created.Game)
	assert.Equal(t, 0, created.Game.StockTotal) // decrementado em exatamente 1
	assert.NotNil(t, created.Customer)
	assert.Contains(t, cacheStub.deleted, "game:"+gameID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreate_Fail_GameNotFound testa que um jogo inexistente interrompe a
// transação antes de qualquer consulta ao cliente ou mutação de estoque.
func TestCreate_Fail_GameNotFound(t *testing.T) {
	repo, mock, cacheStub := newTestRepo(t)

	gameID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, image, stock_total, price_per_day").
		WithArgs(gameID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image", "stock_total", "price_per_day"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.Rental{
		ID:         uuid.NewString(),
		CustomerID: uuid.NewString(),
		GameID:     gameID,
		DaysRented: 3,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "a game with this id does not exist", err.Error())
	assert.Empty(t, cacheStub.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreate_Fail_CustomerNotFound testa a precedência de erros: o jogo existe,
// o cliente não, e o erro de cliente vem antes da checagem de estoque (o jogo
// da linha abaixo está com estoque zerado e mesmo assim o 404 de cliente vence).
func TestCreate_Fail_CustomerNotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	gameID := uuid.NewString()
	customerID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, image, stock_total, price_per_day").
		WithArgs(gameID).
		WillReturnRows(gameRow(gameID, 0))
	mock.ExpectQuery("SELECT id, name, phone, cpf FROM customers").
		WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "cpf"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.Rental{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		GameID:     gameID,
		DaysRented: 3,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "a customer with this id does not exist", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreate_Fail_OutOfStock testa a pré-checagem de estoque: com estoque
// zerado a criação é rejeitada antes de qualquer UPDATE ou INSERT (nenhuma
// mutação parcial é esperada pelo mock).
func TestCreate_Fail_OutOfStock(t *testing.T) {
	repo, mock, cacheStub := newTestRepo(t)

	gameID := uuid.NewString()
	customerID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, image, stock_total, price_per_day").
		WithArgs(gameID).
		WillReturnRows(gameRow(gameID, 0))
	mock.ExpectQuery("SELECT id, name, phone, cpf FROM customers").
		WithArgs(customerID).
		WillReturnRows(customerRow(customerID))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.Rental{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		GameID:     gameID,
		DaysRented: 3,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnprocessableError{}, err)
	assert.Equal(t, "this game has no stock to rent", err.Error())
	assert.Empty(t, cacheStub.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func closeSelectRows(rentalID, customerID, gameID string, rentDate time.Time, returnDate interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "game_id", "rent_date", "days_rented",
		"return_date", "original_price", "delay_fee",
		"g_id", "g_name", "g_image", "g_stock_total", "g_price_per_day",
	}).AddRow(
		rentalID, customerID, gameID, rentDate, 3,
		returnDate, 4500, 0,
		gameID, "Banco Imobiliário", "", 0, 1500,
	)
}

// TestClose_Success_LateReturn testa a transação de encerramento com atraso:
// alugado há 5 dias por 3 dias a 1500/dia, a multa gravada é 3000.
func TestClose_Success_LateReturn(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	rentalID := uuid.NewString()
	customerID := uuid.NewString()
	gameID := uuid.NewString()

	returnDate := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	rentDate := returnDate.AddDate(0, 0, -5)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rentals r").
		WithArgs(rentalID).
		WillReturnRows(closeSelectRows(rentalID, customerID, gameID, rentDate, nil))
	mock.ExpectExec("UPDATE rentals SET return_date").
		WithArgs(returnDate, 3000, rentalID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, name, phone, cpf FROM customers").
		WithArgs(customerID).
		WillReturnRows(customerRow(customerID))
	mock.ExpectCommit()

	closed, err := repo.Close(context.Background(), rentalID, returnDate)

	assert.NoError(t, err)
	assert.Equal(t, 3000, closed.DelayFee)
	assert.Equal(t, 4500, closed.OriginalPrice) // preço original nunca recalculado
	assert.NotNil(t, closed.ReturnDate)
	assert.Equal(t, domain.RentalClosed, closed.Status())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestClose_Fail_AlreadyClosed testa que o segundo encerramento falha: a multa
// é fixada uma única vez e nenhum UPDATE é emitido.
func TestClose_Fail_AlreadyClosed(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	rentalID := uuid.NewString()
	returnDate := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	rentDate := returnDate.AddDate(0, 0, -5)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rentals r").
		WithArgs(rentalID).
		WillReturnRows(closeSelectRows(rentalID, uuid.NewString(), uuid.NewString(), rentDate, returnDate))
	mock.ExpectRollback()

	_, err := repo.Close(context.Background(), rentalID, returnDate)

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnprocessableError{}, err)
	assert.Equal(t, "rent already closed", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestClose_Fail_NotFound testa o encerramento de aluguel inexistente.
func TestClose_Fail_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	rentalID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rentals r").
		WithArgs(rentalID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "game_id", "rent_date", "days_rented",
			"return_date", "original_price", "delay_fee",
			"g_id", "g_name", "g_image", "g_stock_total", "g_price_per_day",
		}))
	mock.ExpectRollback()

	_, err := repo.Close(context.Background(), rentalID, time.Now())

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "a rent with this id does not exist", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDelete_Fail_ActiveRental testa que um aluguel ativo (return_date nulo)
// não pode ser excluído e que nenhum DELETE é emitido.
func TestDelete_Fail_ActiveRental(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	rentalID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT return_date FROM rentals").
		WithArgs(rentalID).
		WillReturnRows(sqlmock.NewRows([]string{"return_date"}).AddRow(nil))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), rentalID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, "An active rent can not be deleted", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDelete_Success testa a exclusão de um aluguel já encerrado.
func TestDelete_Success(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	rentalID := uuid.NewString()
	returnDate := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT return_date FROM rentals").
		WithArgs(rentalID).
		WillReturnRows(sqlmock.NewRows([]string{"return_date"}).AddRow(returnDate))
	mock.ExpectExec("DELETE FROM rentals").
		WithArgs(rentalID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), rentalID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDelete_Fail_NotFound testa a exclusão de aluguel inexistente.
func TestDelete_Fail_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	rentalID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT return_date FROM rentals").
		WithArgs(rentalID).
		WillReturnRows(sqlmock.NewRows([]string{"return_date"}))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), rentalID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "a rent with this id does not exist", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
