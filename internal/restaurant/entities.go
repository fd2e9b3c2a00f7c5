package restaurant

import (
	"context"
	"net/url"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
	"github.com/bobmcallan/restaurant-mcp/internal/models"
)

// Confirmation messages returned after a successful delete.
const (
	DishDeleted         = "Dish deleted successfully"
	MenuDeleted         = "Menu deleted successfully"
	SaleDeleted         = "Sale deleted successfully"
	DishRemovedFromMenu = "Dish removed from menu successfully"
	MenuRemovedFromSale = "Menu removed from sale successfully"
)

// Service groups the typed clients that share one backend connection.
type Service struct {
	Dishes    *Dishes
	Menus     *Menus
	Sales     *Sales
	DishMenus *DishMenus
	SaleMenus *SaleMenus
}

// NewService builds every typed client over c.
func NewService(c *client.Client) *Service {
	return &Service{
		Dishes:    &Dishes{res: NewResource[models.Dish](c, DishesPath)},
		Menus:     &Menus{res: NewResource[models.Menu](c, MenusPath)},
		Sales:     &Sales{res: NewResource[models.Sale](c, SalesPath)},
		DishMenus: &DishMenus{res: NewResource[models.DishMenu](c, DishMenusPath)},
		SaleMenus: &SaleMenus{res: NewResource[models.SaleMenu](c, SaleMenusPath)},
	}
}

// --- Dishes ---

// Dishes is the client for /dishes.
type Dishes struct {
	res *Resource[models.Dish]
}

func (d *Dishes) List(ctx context.Context) ([]models.Dish, error) {
	return d.res.List(ctx)
}

func (d *Dishes) Get(ctx context.Context, id int64) (models.Dish, error) {
	return d.res.Get(ctx, id)
}

// Create sends only the descriptive fields; the backend assigns the id.
func (d *Dishes) Create(ctx context.Context, dishType, name, description string) (models.Dish, error) {
	return d.res.Create(ctx, map[string]interface{}{
		"dishType":    dishType,
		"name":        name,
		"description": description,
	})
}

func (d *Dishes) Update(ctx context.Context, dish models.Dish) (models.Dish, error) {
	return d.res.Update(ctx, dish)
}

func (d *Dishes) Delete(ctx context.Context, id int64) (string, error) {
	if err := d.res.Delete(ctx, url.Values{"id": {formatID(id)}}); err != nil {
		return "", err
	}
	return DishDeleted, nil
}

// --- Menus ---

// Menus is the client for /menus.
type Menus struct {
	res *Resource[models.Menu]
}

func (m *Menus) List(ctx context.Context) ([]models.Menu, error) {
	return m.res.List(ctx)
}

func (m *Menus) Get(ctx context.Context, idMenu int64) (models.Menu, error) {
	return m.res.Get(ctx, idMenu)
}

func (m *Menus) Create(ctx context.Context, description string) (models.Menu, error) {
	return m.res.Create(ctx, map[string]interface{}{"description": description})
}

func (m *Menus) Update(ctx context.Context, menu models.Menu) (models.Menu, error) {
	return m.res.Update(ctx, menu)
}

func (m *Menus) Delete(ctx context.Context, idMenu int64) (string, error) {
	if err := m.res.Delete(ctx, url.Values{"id": {formatID(idMenu)}}); err != nil {
		return "", err
	}
	return MenuDeleted, nil
}

// --- Sales ---

// Sales is the client for /sales.
type Sales struct {
	res *Resource[models.Sale]
}

func (s *Sales) List(ctx context.Context) ([]models.Sale, error) {
	return s.res.List(ctx)
}

func (s *Sales) Get(ctx context.Context, id int64) (models.Sale, error) {
	return s.res.Get(ctx, id)
}

func (s *Sales) Create(ctx context.Context, date string) (models.Sale, error) {
	return s.res.Create(ctx, map[string]interface{}{"date": date})
}

func (s *Sales) Update(ctx context.Context, sale models.Sale) (models.Sale, error) {
	return s.res.Update(ctx, sale)
}

func (s *Sales) Delete(ctx context.Context, id int64) (string, error) {
	if err := s.res.Delete(ctx, url.Values{"id": {formatID(id)}}); err != nil {
		return "", err
	}
	return SaleDeleted, nil
}

// --- Dish/menu relationships ---

// DishMenus is the client for /dish-menus, keyed by (idMenu, idDish).
type DishMenus struct {
	res *Resource[models.DishMenu]
}

func (d *DishMenus) List(ctx context.Context) ([]models.DishMenu, error) {
	return d.res.List(ctx)
}

func (d *DishMenus) Get(ctx context.Context, idMenu, idDish int64) (models.DishMenu, error) {
	return d.res.Get(ctx, idMenu, idDish)
}

// Add places a dish on a menu at the given price and date.
func (d *DishMenus) Add(ctx context.Context, dm models.DishMenu) (models.DishMenu, error) {
	return d.res.Create(ctx, dm)
}

func (d *DishMenus) Update(ctx context.Context, dm models.DishMenu) (models.DishMenu, error) {
	return d.res.Update(ctx, dm)
}

// Remove takes a dish off a menu. Query keys are lower-case on this endpoint.
func (d *DishMenus) Remove(ctx context.Context, idMenu, idDish int64) (string, error) {
	q := url.Values{"idmenu": {formatID(idMenu)}, "iddish": {formatID(idDish)}}
	if err := d.res.Delete(ctx, q); err != nil {
		return "", err
	}
	return DishRemovedFromMenu, nil
}

// --- Sale/menu relationships ---

// SaleMenus is the client for /SalesMenu, keyed by (idMenu, idSale).
type SaleMenus struct {
	res *Resource[models.SaleMenu]
}

func (s *SaleMenus) List(ctx context.Context) ([]models.SaleMenu, error) {
	return s.res.List(ctx)
}

// ListBySale returns the menus recorded against one sale.
func (s *SaleMenus) ListBySale(ctx context.Context, idSale int64) ([]models.SaleMenu, error) {
	return s.res.ListAt(ctx, "/sale/"+formatID(idSale))
}

func (s *SaleMenus) Get(ctx context.Context, idMenu, idSale int64) (models.SaleMenu, error) {
	return s.res.Get(ctx, idMenu, idSale)
}

// Add records a quantity of a menu against a sale. The create endpoint
// expects menuId/saleId rather than the idMenu/idSale names it returns.
func (s *SaleMenus) Add(ctx context.Context, idMenu, idSale int64, quantity int) (models.SaleMenu, error) {
	return s.res.Create(ctx, map[string]interface{}{
		"menuId":   idMenu,
		"saleId":   idSale,
		"quantity": quantity,
	})
}

func (s *SaleMenus) Update(ctx context.Context, sm models.SaleMenu) (models.SaleMenu, error) {
	return s.res.Update(ctx, sm)
}

func (s *SaleMenus) Remove(ctx context.Context, idMenu, idSale int64) (string, error) {
	q := url.Values{"idmenu": {formatID(idMenu)}, "idsale": {formatID(idSale)}}
	if err := s.res.Delete(ctx, q); err != nil {
		return "", err
	}
	return MenuRemovedFromSale, nil
}
