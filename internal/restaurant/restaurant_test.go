package restaurant

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/models"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant/restauranttest"
)

func newTestService(t *testing.T) (*Service, *restauranttest.Backend) {
	t.Helper()
	backend := restauranttest.NewBackend(t)
	c := client.New(backend.URL(), restauranttest.Username, restauranttest.Password, 0, common.NewSilentLogger())
	return NewService(c), backend
}

func TestDishes_ListThenGet(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	backend.SeedDish(models.Dish{DishType: "starter", Name: "Soup", Description: "Tomato"})
	backend.SeedDish(models.Dish{DishType: "main", Name: "Steak", Description: "Sirloin"})

	dishes, err := svc.Dishes.List(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	for _, d := range dishes {
		got, err := svc.Dishes.Get(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestDishes_CreateThenGet(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	created, err := svc.Dishes.Create(ctx, "dessert", "Tart", "Lemon")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	req := backend.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/dishes", req.Path)
	assert.Equal(t, map[string]interface{}{"dishType": "dessert", "name": "Tart", "description": "Lemon"}, req.Body)

	got, err := svc.Dishes.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestDishes_UpdateIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dish, err := svc.Dishes.Create(ctx, "main", "Pie", "Beef")
	require.NoError(t, err)
	dish.Description = "Chicken"

	first, err := svc.Dishes.Update(ctx, dish)
	require.NoError(t, err)
	second, err := svc.Dishes.Update(ctx, dish)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := svc.Dishes.Get(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken", got.Description)
}

func TestDishes_DeleteThenGetNotFound(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	dish := backend.SeedDish(models.Dish{Name: "Bread"})

	msg, err := svc.Dishes.Delete(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, DishDeleted, msg)

	req := backend.LastRequest()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/dishes", req.Path)
	assert.Equal(t, url.Values{"id": {"1"}}, req.Query)

	_, err = svc.Dishes.Get(ctx, dish.ID)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

// Scenario A
func TestMenus_CreateLunchSpecial(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	menu, err := svc.Menus.Create(ctx, "Lunch Special")
	require.NoError(t, err)
	assert.NotZero(t, menu.ID)
	assert.Equal(t, "Lunch Special", menu.Description)
	assert.Equal(t, map[string]interface{}{"description": "Lunch Special"}, backend.LastRequest().Body)

	got, err := svc.Menus.Get(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, menu, got)
}

func TestMenus_UpdateAndDelete(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	menu := backend.SeedMenu(models.Menu{Description: "Breakfast"})

	updated, err := svc.Menus.Update(ctx, models.Menu{ID: menu.ID, Description: "Brunch"})
	require.NoError(t, err)
	assert.Equal(t, "Brunch", updated.Description)
	assert.Equal(t, map[string]interface{}{"idMenu": float64(menu.ID), "description": "Brunch"}, backend.LastRequest().Body)

	msg, err := svc.Menus.Delete(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, MenuDeleted, msg)
	assert.Equal(t, url.Values{"id": {"1"}}, backend.LastRequest().Query)

	menus, err := svc.Menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestSales_Lifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sale, err := svc.Sales.Create(ctx, "2024-02-01")
	require.NoError(t, err)

	sale.Date = "2024-02-02"
	updated, err := svc.Sales.Update(ctx, sale)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-02", updated.Date)

	sales, err := svc.Sales.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Sale{updated}, sales)

	msg, err := svc.Sales.Delete(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, SaleDeleted, msg)

	_, err = svc.Sales.Get(ctx, sale.ID)
	assert.True(t, client.IsNotFound(err))
}

// Scenario B
func TestDishMenus_AddDishToMenu(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		backend.SeedMenu(models.Menu{Description: "menu"})
	}
	// Menus take ids 1-7, so the dish gets 8.
	dish := backend.SeedDish(models.Dish{Name: "Risotto"})

	dm, err := svc.DishMenus.Add(ctx, models.DishMenu{MenuID: 7, DishID: dish.ID, Price: 12.50, Date: "2024-01-15"})
	require.NoError(t, err)
	assert.Equal(t, models.DishMenu{MenuID: 7, DishID: dish.ID, Price: 12.50, Date: "2024-01-15"}, dm)

	req := backend.LastRequest()
	assert.Equal(t, "/dish-menus", req.Path)
	assert.Equal(t, map[string]interface{}{
		"idMenu": float64(7),
		"idDish": float64(dish.ID),
		"price":  12.5,
		"date":   "2024-01-15",
	}, req.Body)

	got, err := svc.DishMenus.Get(ctx, 7, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, dm, got)
	assert.Equal(t, "/dish-menus/7/8", backend.LastRequest().Path)
}

func TestDishMenus_UpdateAndRemove(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	backend.SeedDishMenu(models.DishMenu{MenuID: 7, DishID: 3, Price: 10, Date: "2024-01-01"})

	updated, err := svc.DishMenus.Update(ctx, models.DishMenu{MenuID: 7, DishID: 3, Price: 11.25, Date: "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, 11.25, updated.Price)
	assert.Equal(t, http.MethodPut, backend.LastRequest().Method)

	msg, err := svc.DishMenus.Remove(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, DishRemovedFromMenu, msg)
	assert.Equal(t, url.Values{"idmenu": {"7"}, "iddish": {"3"}}, backend.LastRequest().Query)

	_, err = svc.DishMenus.Get(ctx, 7, 3)
	assert.True(t, client.IsNotFound(err))
}

// Scenario C
func TestDishes_DeleteConflictSurfacedVerbatim(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	backend.Respond(http.MethodDelete, "/dishes", http.StatusConflict, "Dish 3 is still referenced by menu 7")

	msg, err := svc.Dishes.Delete(ctx, 3)
	require.Error(t, err)
	assert.Empty(t, msg)
	assert.True(t, client.IsConflict(err))
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "Dish 3 is still referenced by menu 7")
}

func TestDishes_DeleteConflictFromReference(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	menu := backend.SeedMenu(models.Menu{Description: "Dinner"})
	dish := backend.SeedDish(models.Dish{Name: "Fish"})
	backend.SeedDishMenu(models.DishMenu{MenuID: menu.ID, DishID: dish.ID, Price: 20})

	_, err := svc.Dishes.Delete(ctx, dish.ID)
	assert.True(t, client.IsConflict(err))

	_, err = svc.Dishes.Get(ctx, dish.ID)
	assert.NoError(t, err, "dish must survive a rejected delete")
}

// Scenario D
func TestSaleMenus_GetMissingIsNotFound(t *testing.T) {
	svc, backend := newTestService(t)

	_, err := svc.SaleMenus.Get(context.Background(), 99, 1)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	assert.Equal(t, "/SalesMenu/99/1", backend.LastRequest().Path)
}

// Scenario E
func TestDishes_EmptyListIsEmptySlice(t *testing.T) {
	svc, _ := newTestService(t)

	dishes, err := svc.Dishes.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dishes)
	assert.Empty(t, dishes)
}

func TestList_NullBodyIsEmptySlice(t *testing.T) {
	svc, backend := newTestService(t)
	backend.Respond(http.MethodGet, "/dish-menus", http.StatusOK, "null")

	items, err := svc.DishMenus.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSaleMenus_AddUsesCreateFieldNames(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	menu := backend.SeedMenu(models.Menu{Description: "Lunch"})
	sale := backend.SeedSale(models.Sale{Date: "2024-03-01"})

	sm, err := svc.SaleMenus.Add(ctx, menu.ID, sale.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, models.SaleMenu{MenuID: menu.ID, SaleID: sale.ID, Quantity: 4}, sm)

	body := backend.LastRequest().Body
	assert.Equal(t, float64(menu.ID), body["menuId"])
	assert.Equal(t, float64(sale.ID), body["saleId"])
	assert.Equal(t, float64(4), body["quantity"])
	assert.NotContains(t, body, "idMenu")
	assert.NotContains(t, body, "idSale")
}

func TestSaleMenus_ListBySaleUpdateRemove(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	backend.SeedSaleMenu(models.SaleMenu{MenuID: 1, SaleID: 5, Quantity: 2})
	backend.SeedSaleMenu(models.SaleMenu{MenuID: 2, SaleID: 5, Quantity: 1})
	backend.SeedSaleMenu(models.SaleMenu{MenuID: 1, SaleID: 6, Quantity: 3})

	all, err := svc.SaleMenus.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forSale, err := svc.SaleMenus.ListBySale(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "/SalesMenu/sale/5", backend.LastRequest().Path)
	assert.Equal(t, []models.SaleMenu{{MenuID: 1, SaleID: 5, Quantity: 2}, {MenuID: 2, SaleID: 5, Quantity: 1}}, forSale)

	none, err := svc.SaleMenus.ListBySale(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	updated, err := svc.SaleMenus.Update(ctx, models.SaleMenu{MenuID: 1, SaleID: 5, Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)

	msg, err := svc.SaleMenus.Remove(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, MenuRemovedFromSale, msg)
	assert.Equal(t, url.Values{"idmenu": {"1"}, "idsale": {"5"}}, backend.LastRequest().Query)
}

func TestService_BadCredentials(t *testing.T) {
	backend := restauranttest.NewBackend(t)
	c := client.New(backend.URL(), "admin", "wrong", 0, common.NewSilentLogger())
	svc := NewService(c)

	_, err := svc.Menus.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
}

func TestService_TransportFailure(t *testing.T) {
	c := client.New("http://127.0.0.1:1/api", "admin", "password", 0, common.NewSilentLogger())
	svc := NewService(c)

	_, err := svc.Sales.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrTransport))
}

func TestResource_GetIDPath(t *testing.T) {
	tests := []struct {
		ids  []int64
		want string
	}{
		{nil, ""},
		{[]int64{4}, "/4"},
		{[]int64{7, 3}, "/7/3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idPath(tt.ids...))
	}
}
