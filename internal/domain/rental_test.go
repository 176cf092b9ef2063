package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"boardcamp/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// TestOriginalPrice verifica que o preço original é dias alugados × preço/dia.
func TestOriginalPrice(t *testing.T) {
	assert.Equal(t, 4500, domain.OriginalPrice(3, 1500))
	assert.Equal(t, 1500, domain.OriginalPrice(1, 1500))
	assert.Equal(t, 70000, domain.OriginalPrice(7, 10000))
}

// TestDelayFee_OnTimeReturn verifica que devolução no dia esperado não gera multa.
func TestDelayFee_OnTimeReturn(t *testing.T) {
	rentDate := day(2026, time.March, 10)
	returnDate := day(2026, time.March, 13) // exatamente rentDate + 3 dias

	fee := domain.DelayFee(rentDate, 3, returnDate, 1500)

	assert.Equal(t, 0, fee)
}

// TestDelayFee_EarlyReturn verifica que devolução adiantada não gera multa
// negativa.
func TestDelayFee_EarlyReturn(t *testing.T) {
	rentDate := day(2026, time.March, 10)
	returnDate := day(2026, time.March, 11) // dois dias antes do esperado

	fee := domain.DelayFee(rentDate, 3, returnDate, 1500)

	assert.Equal(t, 0, fee)
}

// TestDelayFee_LateReturn cobre o cenário clássico: alugado há 5 dias por 3
// dias, a R$15,00/dia, resultando em 2 dias de atraso e multa de R$30,00.
func TestDelayFee_LateReturn(t *testing.T) {
	returnDate := day(2026, time.March, 15)
	rentDate := returnDate.AddDate(0, 0, -5) // hoje − 5

	fee := domain.DelayFee(rentDate, 3, returnDate, 1500)

	assert.Equal(t, 3000, fee)
}

// TestDelayFee_SingleDayLate verifica o menor atraso possível.
func TestDelayFee_SingleDayLate(t *testing.T) {
	rentDate := day(2026, time.March, 10)
	returnDate := day(2026, time.March, 14) // esperado era 13

	fee := domain.DelayFee(rentDate, 3, returnDate, 2000)

	assert.Equal(t, 2000, fee)
}

// TestDateOnly verifica a normalização para meia-noite UTC.
func TestDateOnly(t *testing.T) {
	instant := time.Date(2026, time.March, 10, 17, 42, 3, 999, time.UTC)

	normalized := domain.DateOnly(instant)

	assert.Equal(t, day(2026, time.March, 10), normalized)
}

// TestRentalStatus verifica que o estado do ciclo de vida é derivado da
// presença de ReturnDate.
func TestRentalStatus(t *testing.T) {
	rental := domain.Rental{
		ID:         "r1",
		RentDate:   day(2026, time.March, 10),
		DaysRented: 3,
	}

	assert.True(t, rental.Active())
	assert.Equal(t, domain.RentalActive, rental.Status())

	returned := day(2026, time.March, 13)
	rental.ReturnDate = &returned

	assert.False(t, rental.Active())
	assert.Equal(t, domain.RentalClosed, rental.Status())
}
