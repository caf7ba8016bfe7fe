package domain

import "time"

type ProductID int64

type Product struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Price    float64   `json:"price"`
	Rating   float64   `json:"rating"` // 0..5
	Image    string    `json:"image"`  // URL or empty
	Featured bool      `json:"featured"`
}

// CartLine is the add-time snapshot of a product plus its quantity.
// Later catalog edits never touch an existing line.
type CartLine struct {
	ID    ProductID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Qty   int       `json:"qty"`
}

type Cart []CartLine

func (c Cart) Index(id ProductID) int {
	for i, it := range c {
		if it.ID == id {
			return i
		}
	}
	return -1
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type CartChange struct {
	Session string `json:"-"`
	Items   Cart   `json:"items"`
	Count   int    `json:"count"`
}

type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZIP       string `json:"zip"`
}

type Receipt struct {
	ID       string    `json:"id"`
	Items    Cart      `json:"items"`
	Totals   Totals    `json:"totals"`
	Contact  Contact   `json:"contact"`
	PlacedAt time.Time `json:"placed_at"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)
