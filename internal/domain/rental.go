package domain

import (
	"time"
)

// RentalStatus representa o estado do ciclo de vida de um aluguel.
// O estado é derivado da presença de ReturnDate: um aluguel sem data de
// devolução está ativo; com data de devolução está encerrado.
type RentalStatus string

const (
	RentalActive RentalStatus = "active"
	RentalClosed RentalStatus = "closed"
)

// Rental representa o aluguel de um jogo por um cliente (a Entidade central).
// OriginalPrice é fixado na criação e nunca recalculado; DelayFee é fixado
// uma única vez, no encerramento.
type Rental struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customerId"`
	GameID        string     `json:"gameId"`
	RentDate      time.Time  `json:"rentDate"`
	DaysRented    int        `json:"daysRented"`
	ReturnDate    *time.Time `json:"returnDate"` // nil enquanto o aluguel estiver ativo
	OriginalPrice int        `json:"originalPrice"`
	DelayFee      int        `json:"delayFee"`

	// Relações preenchidas na leitura (join) para compor a resposta.
	Customer *Customer `json:"customer,omitempty"`
	Game     *Game     `json:"game,omitempty"`
}

// Active informa se o aluguel ainda está em aberto.
func (r Rental) Active() bool {
	return r.ReturnDate == nil
}

// Status devolve o estado do ciclo de vida derivado de ReturnDate.
func (r Rental) Status() RentalStatus {
	if r.Active() {
		return RentalActive
	}
	return RentalClosed
}

// RentalRequest é o payload esperado para a criação de um aluguel.
type RentalRequest struct {
	CustomerID string `json:"customerId"`
	GameID     string `json:"gameId"`
	DaysRented int    `json:"daysRented"`
}

// RentalService é a interface que a camada de Serviço DEVE implementar.
type RentalService interface {
	CreateRental(ctx Context, body RentalRequest) (Rental, error)
	CloseRental(ctx Context, id string) (Rental, error)
	DeleteRental(ctx Context, id string) error
	ListRentals(ctx Context) ([]Rental, error)
}

// RentalRepository é a interface que a camada de Repositório DEVE implementar.
// Create e Close executam leitura-verificação-escrita dentro de UMA transação
// (o estoque do jogo e os campos do aluguel não podem sofrer lost update).
type RentalRepository interface {
	Create(ctx Context, rental Rental) (Rental, error)
	Close(ctx Context, id string, returnDate time.Time) (Rental, error)
	Delete(ctx Context, id string) error
	FindAll(ctx Context) ([]Rental, error)
}

// --- Regras de Preço (funções puras, testáveis isoladamente) ---

// OriginalPrice calcula o preço acordado na criação do aluguel.
func OriginalPrice(daysRented, pricePerDay int) int {
	return daysRented * pricePerDay
}

// DelayFee calcula a multa por atraso na devolução.
// As datas devem estar normalizadas para meia-noite UTC (ver DateOnly).
// Devolução em dia ou adiantada resulta em multa zero, nunca negativa.
func DelayFee(rentDate time.Time, daysRented int, returnDate time.Time, pricePerDay int) int {
	expectedReturnDate := rentDate.AddDate(0, 0, daysRented)

	daysLate := int(returnDate.Sub(expectedReturnDate).Hours() / 24)
	if daysLate <= 0 {
		return 0
	}

	return daysLate * pricePerDay
}

// DateOnly normaliza um instante para a meia-noite UTC do dia correspondente.
// Todo o ciclo de vida do aluguel trabalha com dias de calendário.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
