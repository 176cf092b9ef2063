package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/cache"
	"boardcamp/internal/pkg/logger"
)

// RentalRepository implementa a interface domain.RentalRepository.
// As operações de escrita executam leitura-verificação-escrita dentro de uma
// única transação, com a linha relevante bloqueada (FOR UPDATE): duas criações
// concorrentes sobre um jogo com estoque 1 não podem ambas enxergar estoque
// suficiente.
type RentalRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewRentalRepository cria e retorna uma nova instância do Repositório de Aluguéis.
func NewRentalRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *RentalRepository {
	return &RentalRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Create registra um novo aluguel: verifica jogo, cliente e estoque (nesta
// ordem: o erro de jogo inexistente precede o de cliente inexistente, que
// precede o de falta de estoque), decrementa o estoque e insere o aluguel.
// Tudo dentro de uma transação.
func (r *RentalRepository) Create(ctx domain.Context, rental domain.Rental) (domain.Rental, error) {
	r.logger.Debug("Iniciando criação de aluguel no repositório.", map[string]interface{}{
		"customer_id": rental.CustomerID,
		"game_id":     rental.GameID,
		"days_rented": rental.DaysRented,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de criação de aluguel.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // Rollback em caso de erro

	// 1. Buscar o jogo com FOR UPDATE para bloquear a linha na transação.
	//    O estoque lido aqui é o que vale para a checagem.
	var game domain.Game
	const gameSQL = `
        SELECT id, name, image, stock_total, price_per_day
        FROM games
        WHERE id = $1 FOR UPDATE`

	err = tx.QueryRowContext(ctxTimeout, gameSQL, rental.GameID).Scan(
		&game.ID, &game.Name, &game.Image, &game.StockTotal, &game.PricePerDay,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rental{}, apperror.NewNotFoundError("a game with this id does not exist")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar jogo para aluguel.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao buscar jogo para aluguel", err)
	}

	// 2. Buscar o cliente.
	var customer domain.Customer
	const customerSQL = `SELECT id, name, phone, cpf FROM customers WHERE id = $1`

	err = tx.QueryRowContext(ctxTimeout, customerSQL, rental.CustomerID).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.CPF,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rental{}, apperror.NewNotFoundError("a customer with this id does not exist")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar cliente para aluguel.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao buscar cliente para aluguel", err)
	}

	// 3. Preço original fixado na criação, nunca recalculado.
	rental.OriginalPrice = domain.OriginalPrice(rental.DaysRented, game.PricePerDay)

	// 4. Checagem de estoque ANTES de qualquer mutação: criação é rejeitada
	//    se o estoque já estiver zerado, nunca decrementado e "clampado".
	if game.StockTotal < 1 {
		r.logger.Warn("Tentativa de aluguel sem estoque.", map[string]interface{}{"game_id": game.ID})
		return domain.Rental{}, apperror.NewUnprocessableError("this game has no stock to rent")
	}

	// 5. Decrementar o estoque do jogo.
	const stockSQL = `UPDATE games SET stock_total = stock_total - 1 WHERE id = $1`
	if _, err = tx.ExecContext(ctxTimeout, stockSQL, game.ID); err != nil {
		r.logger.Error("Falha ao decrementar estoque do jogo.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao decrementar estoque", err)
	}

	// 6. Inserir o aluguel.
	const insertSQL = `
        INSERT INTO rentals (id, customer_id, game_id, rent_date, days_rented, return_date, original_price, delay_fee)
        VALUES ($1, $2, $3, $4, $5, NULL, $6, 0)`

	_, err = tx.ExecContext(ctxTimeout, insertSQL,
		rental.ID,
		rental.CustomerID,
		rental.GameID,
		rental.RentDate,
		rental.DaysRented,
		rental.OriginalPrice,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir aluguel no DB.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao inserir aluguel", err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		r.logger.Error("Falha ao commitar transação de criação de aluguel.", commitErr)
		return domain.Rental{}, apperror.NewDBError("Falha ao commitar transação", commitErr)
	}

	// O cache do jogo ficou obsoleto com o decremento de estoque.
	r.Cache.Delete(ctxTimeout, fmt.Sprintf("game:%s", game.ID))

	game.StockTotal--
	rental.Customer = &customer
	rental.Game = &game

	r.logger.Info("Aluguel criado com sucesso.", map[string]interface{}{
		"rental_id":      rental.ID,
		"game_id":        game.ID,
		"original_price": rental.OriginalPrice,
		"new_stock":      game.StockTotal,
	})
	return rental, nil
}

// Close encerra um aluguel: registra a data de devolução e fixa a multa por
// atraso, uma única vez. A linha do aluguel é bloqueada na transação para que
// dois encerramentos concorrentes não gravem a multa duas vezes.
// O estoque do jogo NÃO é restaurado (regra de negócio da locadora).
func (r *RentalRepository) Close(ctx domain.Context, id string, returnDate time.Time) (domain.Rental, error) {
	r.logger.Debug("Iniciando encerramento de aluguel no repositório.", map[string]interface{}{"rental_id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de encerramento de aluguel.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	// 1. Buscar o aluguel (com o preço/dia do jogo) bloqueando a linha.
	var rental domain.Rental
	var game domain.Game
	var currentReturn sql.NullTime

	const selectSQL = `
        SELECT r.id, r.customer_id, r.game_id, r.rent_date, r.days_rented,
               r.return_date, r.original_price, r.delay_fee,
               g.id, g.name, g.image, g.stock_total, g.price_per_day
        FROM rentals r
        JOIN games g ON g.id = r.game_id
        WHERE r.id = $1 FOR UPDATE OF r`

	err = tx.QueryRowContext(ctxTimeout, selectSQL, id).Scan(
		&rental.ID, &rental.CustomerID, &rental.GameID, &rental.RentDate, &rental.DaysRented,
		&currentReturn, &rental.OriginalPrice, &rental.DelayFee,
		&game.ID, &game.Name, &game.Image, &game.StockTotal, &game.PricePerDay,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rental{}, apperror.NewNotFoundError("a rent with this id does not exist")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar aluguel para encerramento.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao buscar aluguel", err)
	}

	// 2. A multa é fixada exatamente uma vez: aluguel encerrado não reabre.
	if currentReturn.Valid {
		return domain.Rental{}, apperror.NewUnprocessableError("rent already closed")
	}

	// 3. Calcular a multa por atraso em dias de calendário.
	delayFee := domain.DelayFee(domain.DateOnly(rental.RentDate), rental.DaysRented, returnDate, game.PricePerDay)

	const updateSQL = `UPDATE rentals SET return_date = $1, delay_fee = $2 WHERE id = $3`
	if _, err = tx.ExecContext(ctxTimeout, updateSQL, returnDate, delayFee, rental.ID); err != nil {
		r.logger.Error("Falha ao atualizar aluguel no encerramento.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao encerrar aluguel", err)
	}

	// 4. Buscar o cliente para compor a resposta.
	var customer domain.Customer
	const customerSQL = `SELECT id, name, phone, cpf FROM customers WHERE id = $1`
	if err = tx.QueryRowContext(ctxTimeout, customerSQL, rental.CustomerID).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.CPF,
	); err != nil {
		r.logger.Error("Falha ao buscar cliente do aluguel.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao buscar cliente do aluguel", err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		r.logger.Error("Falha ao commitar transação de encerramento de aluguel.", commitErr)
		return domain.Rental{}, apperror.NewDBError("Falha ao commitar transação", commitErr)
	}

	rental.ReturnDate = &returnDate
	rental.DelayFee = delayFee
	rental.Customer = &customer
	rental.Game = &game

	r.logger.Info("Aluguel encerrado com sucesso.", map[string]interface{}{
		"rental_id": rental.ID,
		"delay_fee": delayFee,
	})
	return rental, nil
}

// Delete remove permanentemente um aluguel encerrado. Um aluguel ainda ativo
// não pode ser excluído. O estoque do jogo não é restaurado.
func (r *RentalRepository) Delete(ctx domain.Context, id string) error {
	r.logger.Debug("Iniciando exclusão de aluguel no repositório.", map[string]interface{}{"rental_id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de exclusão de aluguel.", err)
		return apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	var currentReturn sql.NullTime
	const selectSQL = `SELECT return_date FROM rentals WHERE id = $1 FOR UPDATE`

	err = tx.QueryRowContext(ctxTimeout, selectSQL, id).Scan(&currentReturn)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NewNotFoundError("a rent with this id does not exist")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar aluguel para exclusão.", err)
		return apperror.NewDBError("Falha ao buscar aluguel", err)
	}

	if !currentReturn.Valid {
		return apperror.NewValidationError("An active rent can not be deleted")
	}

	const deleteSQL = `DELETE FROM rentals WHERE id = $1`
	if _, err = tx.ExecContext(ctxTimeout, deleteSQL, id); err != nil {
		r.logger.Error("Falha ao excluir aluguel no DB.", err)
		return apperror.NewDBError("Falha ao excluir aluguel", err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		r.logger.Error("Falha ao commitar transação de exclusão de aluguel.", commitErr)
		return apperror.NewDBError("Falha ao commitar transação", commitErr)
	}

	r.logger.Info("Aluguel excluído com sucesso.", map[string]interface{}{"rental_id": id})
	return nil
}

// FindAll retorna todos os aluguéis, com cliente e jogo embutidos,
// sem garantia de ordenação.
func (r *RentalRepository) FindAll(ctx domain.Context) ([]domain.Rental, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `
        SELECT r.id, r.customer_id, r.game_id, r.rent_date, r.days_rented,
               r.return_date, r.original_price, r.delay_fee,
               c.id, c.name, c.phone, c.cpf,
               g.id, g.name, g.image, g.stock_total, g.price_per_day
        FROM rentals r
        JOIN customers c ON c.id = r.customer_id
        JOIN games g ON g.id = r.game_id`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar aluguéis no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar aluguéis", err)
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		var rental domain.Rental
		var customer domain.Customer
		var game domain.Game
		var returnDate sql.NullTime

		if err := rows.Scan(
			&rental.ID, &rental.CustomerID, &rental.GameID, &rental.RentDate, &rental.DaysRented,
			&returnDate, &rental.OriginalPrice, &rental.DelayFee,
			&customer.ID, &customer.Name, &customer.Phone, &customer.CPF,
			&game.ID, &game.Name, &game.Image, &game.StockTotal, &game.PricePerDay,
		); err != nil {
			r.logger.Error("Falha ao mapear linha de aluguel.", err)
			return nil, apperror.NewDBError("Falha ao mapear aluguel", err)
		}

		if returnDate.Valid {
			d := returnDate.Time
			rental.ReturnDate = &d
		}
		rental.Customer = &customer
		rental.Game = &game

		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar aluguéis", err)
	}

	return rentals, nil
}
