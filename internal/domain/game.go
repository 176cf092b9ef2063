package domain

// Game representa um jogo de tabuleiro do catálogo da locadora.
// O nome é único entre todos os jogos.
type Game struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	StockTotal  int    `json:"stockTotal"`  // decrementado a cada aluguel ativo, nunca abaixo de 0
	PricePerDay int    `json:"pricePerDay"` // em centavos
}

// GameRequest é o payload esperado para a criação de um jogo.
type GameRequest struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	StockTotal  int    `json:"stockTotal"`
	PricePerDay int    `json:"pricePerDay"`
}

// GameService é a interface que a camada de Serviço DEVE implementar.
type GameService interface {
	CreateGame(ctx Context, body GameRequest) (Game, error)
	GetGameByID(ctx Context, id string) (Game, error)
	ListGames(ctx Context) ([]Game, error)
}

// GameRepository é a interface que a camada de Repositório DEVE implementar.
type GameRepository interface {
	Save(ctx Context, game Game) (Game, error)
	FindByID(ctx Context, id string) (Game, error)
	FindAll(ctx Context) ([]Game, error)
	ExistsByName(ctx Context, name string) (bool, error)
}
