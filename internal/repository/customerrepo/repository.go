package customerrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"boardcamp/internal/domain"
	apperror "boardcamp/internal/errors"
	"boardcamp/internal/pkg/logger"
)

// CustomerRepository implementa a interface domain.CustomerRepository.
type CustomerRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCustomerRepository cria e retorna uma nova instância do Repositório de Clientes.
func NewCustomerRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CustomerRepository {
	return &CustomerRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo cliente no banco de dados.
func (r *CustomerRepository) Save(ctx domain.Context, customer domain.Customer) (domain.Customer, error) {
	r.logger.Debug("Iniciando Save de cliente no repositório.", map[string]interface{}{"cpf": customer.CPF})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO customers (id, name, phone, cpf)
                       VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		customer.ID,
		customer.Name,
		customer.Phone,
		customer.CPF,
	)

	if err != nil {
		r.logger.Error("Falha ao inserir cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("failed to insert customer", err)
	}

	r.logger.Info("Cliente salvo com sucesso no repositório.", map[string]interface{}{"customer_id": customer.ID})
	return customer, nil
}

// FindByID busca um cliente pelo ID.
func (r *CustomerRepository) FindByID(ctx domain.Context, id string) (domain.Customer, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, name, phone, cpf FROM customers WHERE id = $1`

	var customer domain.Customer
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.CPF,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// O Serviço receberá isso e o Handler o mapeará para 404.
		return domain.Customer{}, apperror.NewNotFoundError("Could not find user with this id")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao buscar cliente", err)
	}

	return customer, nil
}

// FindAll retorna todos os clientes cadastrados, sem garantia de ordenação.
func (r *CustomerRepository) FindAll(ctx domain.Context) ([]domain.Customer, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, name, phone, cpf FROM customers`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar clientes no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar clientes", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.CPF); err != nil {
			r.logger.Error("Falha ao mapear linha de cliente.", err)
			return nil, apperror.NewDBError("Falha ao mapear cliente", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar clientes", err)
	}

	return customers, nil
}

// ExistsByCPF verifica se já existe um cliente com o CPF informado.
func (r *CustomerRepository) ExistsByCPF(ctx domain.Context, cpf string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE cpf = $1)`

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, cpf).Scan(&exists); err != nil {
		r.logger.Error("Falha ao verificar CPF no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar CPF", err)
	}

	return exists, nil
}
