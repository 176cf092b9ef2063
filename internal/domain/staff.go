package domain

import "time"

// Staff representa um funcionário da locadora com acesso às rotas
// administrativas (e.g., exclusão de aluguéis encerrados).
type Staff struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StaffRole é um tipo string para representar o papel do funcionário.
type StaffRole string

const (
	RoleAdmin     StaffRole = "admin"
	RoleAttendant StaffRole = "attendant"
)

// StaffRegistration representa o payload de entrada para o registro.
type StaffRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffRepository define o contrato de persistência para a entidade Staff.
type StaffRepository interface {
	Save(ctx Context, staff Staff) (Staff, error)
	FindByEmail(ctx Context, email string) (Staff, error)
}

// StaffService define o contrato de lógica de negócio para a entidade Staff.
type StaffService interface {
	Register(ctx Context, registration StaffRegistration) (Staff, error)
	Login(ctx Context, email string, password string) (string, error)
}
