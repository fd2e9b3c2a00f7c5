package models

// Dish represents a dish offered by the restaurant.
type Dish struct {
	ID          int64  `json:"id"`
	DishType    string `json:"dishType"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Menu represents a restaurant menu.
type Menu struct {
	ID          int64  `json:"idMenu"`
	Description string `json:"description"`
}

// Sale represents a single sale. Date is an opaque token whose format is owned by the backend.
type Sale struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

// DishMenu places a dish on a menu at a price as of a date.
// Identity is the (MenuID, DishID) pair.
type DishMenu struct {
	MenuID int64   `json:"idMenu"`
	DishID int64   `json:"idDish"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
}

// SaleMenu records how many of a menu were included in a sale.
// Identity is the (MenuID, SaleID) pair.
type SaleMenu struct {
	MenuID   int64 `json:"idMenu"`
	SaleID   int64 `json:"idSale"`
	Quantity int   `json:"quantity"`
}
