package domain

// Customer representa um cliente da locadora (a Entidade).
// O CPF é o identificador de negócio: único entre todos os clientes.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"` // 10 a 11 dígitos, apenas números
	CPF   string `json:"cpf"`   // exatamente 11 dígitos, apenas números
}

// CustomerRequest é o payload esperado para a criação de um cliente.
type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// CustomerService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
type CustomerService interface {
	CreateCustomer(ctx Context, body CustomerRequest) (Customer, error)
	GetCustomerByID(ctx Context, id string) (Customer, error)
	ListCustomers(ctx Context) ([]Customer, error)
}

// CustomerRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// Ela define o que a camada de Serviço pode pedir para a camada de Persistência fazer.
type CustomerRepository interface {
	Save(ctx Context, customer Customer) (Customer, error)
	FindByID(ctx Context, id string) (Customer, error)
	FindAll(ctx Context) ([]Customer, error)
	ExistsByCPF(ctx Context, cpf string) (bool, error)
}
