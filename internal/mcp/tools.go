package mcp

import (
	"context"
	"net/http"

	"github.com/bobmcallan/restaurant-mcp/internal/models"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

func pathID(name, desc string) CatalogParam {
	return CatalogParam{Name: name, Type: TypeInteger, Description: desc, Required: true, In: InPath}
}

func queryID(name, wire, desc string) CatalogParam {
	return CatalogParam{Name: name, Type: TypeInteger, Description: desc, Required: true, In: InQuery, Wire: wire}
}

func bodyParam(name, typ, desc string) CatalogParam {
	return CatalogParam{Name: name, Type: typ, Description: desc, Required: true, In: InBody}
}

// Catalog returns the tool table. Each call returns a fresh copy.
func Catalog() []CatalogTool {
	return []CatalogTool{
		// Dishes
		{
			Name:        "list_dishes",
			Description: "Get all dishes from the restaurant",
			Method:      http.MethodGet,
			Path:        restaurant.DishesPath,
			Result:      "[]Dish",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Dishes.List(ctx)
			},
		},
		{
			Name:        "get_dish",
			Description: "Get a specific dish by its ID",
			Method:      http.MethodGet,
			Path:        restaurant.DishesPath + "/{id}",
			Params:      []CatalogParam{pathID("id", "The dish ID")},
			Result:      "Dish",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Dishes.Get(ctx, a.id("id"))
			},
		},
		{
			Name:        "create_dish",
			Description: "Create a new dish with type, name, and description",
			Method:      http.MethodPost,
			Path:        restaurant.DishesPath,
			Params: []CatalogParam{
				bodyParam("dishType", TypeString, "The type of dish (e.g. starter, main, dessert)"),
				bodyParam("name", TypeString, "The name of the dish"),
				bodyParam("description", TypeString, "A description of the dish"),
			},
			Result: "Dish",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Dishes.Create(ctx, a.text("dishType"), a.text("name"), a.text("description"))
			},
		},
		{
			Name:        "update_dish",
			Description: "Update an existing dish's information",
			Method:      http.MethodPut,
			Path:        restaurant.DishesPath,
			Params: []CatalogParam{
				bodyParam("id", TypeInteger, "The dish ID"),
				bodyParam("dishType", TypeString, "The new type of dish"),
				bodyParam("name", TypeString, "The new name"),
				bodyParam("description", TypeString, "The new description"),
			},
			Result: "Dish",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Dishes.Update(ctx, models.Dish{
					ID:          a.id("id"),
					DishType:    a.text("dishType"),
					Name:        a.text("name"),
					Description: a.text("description"),
				})
			},
		},
		{
			Name:        "delete_dish",
			Description: "Delete a dish by its ID",
			Method:      http.MethodDelete,
			Path:        restaurant.DishesPath,
			Params:      []CatalogParam{queryID("id", "", "The dish ID")},
			Result:      "string",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Dishes.Delete(ctx, a.id("id"))
			},
		},

		// Menus
		{
			Name:        "list_menus",
			Description: "Get all menus from the restaurant",
			Method:      http.MethodGet,
			Path:        restaurant.MenusPath,
			Result:      "[]Menu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Menus.List(ctx)
			},
		},
		{
			Name:        "get_menu",
			Description: "Get a specific menu by its ID",
			Method:      http.MethodGet,
			Path:        restaurant.MenusPath + "/{idMenu}",
			Params:      []CatalogParam{pathID("idMenu", "The menu ID")},
			Result:      "Menu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Menus.Get(ctx, a.id("idMenu"))
			},
		},
		{
			Name:        "create_menu",
			Description: "Create a new menu with a description",
			Method:      http.MethodPost,
			Path:        restaurant.MenusPath,
			Params:      []CatalogParam{bodyParam("description", TypeString, "The menu description")},
			Result:      "Menu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Menus.Create(ctx, a.text("description"))
			},
		},
		{
			Name:        "update_menu",
			Description: "Update an existing menu's description",
			Method:      http.MethodPut,
			Path:        restaurant.MenusPath,
			Params: []CatalogParam{
				bodyParam("idMenu", TypeInteger, "The menu ID"),
				bodyParam("description", TypeString, "The new description"),
			},
			Result: "Menu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Menus.Update(ctx, models.Menu{ID: a.id("idMenu"), Description: a.text("description")})
			},
		},
		{
			Name:        "delete_menu",
			Description: "Delete a menu by its ID",
			Method:      http.MethodDelete,
			Path:        restaurant.MenusPath,
			Params:      []CatalogParam{queryID("idMenu", "id", "The menu ID")},
			Result:      "string",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Menus.Delete(ctx, a.id("idMenu"))
			},
		},

		// Sales
		{
			Name:        "list_sales",
			Description: "Get all sales from the restaurant",
			Method:      http.MethodGet,
			Path:        restaurant.SalesPath,
			Result:      "[]Sale",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Sales.List(ctx)
			},
		},
		{
			Name:        "get_sale",
			Description: "Get a specific sale by its ID",
			Method:      http.MethodGet,
			Path:        restaurant.SalesPath + "/{id}",
			Params:      []CatalogParam{pathID("id", "The sale ID")},
			Result:      "Sale",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Sales.Get(ctx, a.id("id"))
			},
		},
		{
			Name:        "create_sale",
			Description: "Create a new sale record",
			Method:      http.MethodPost,
			Path:        restaurant.SalesPath,
			Params:      []CatalogParam{bodyParam("date", TypeString, "The sale date")},
			Result:      "Sale",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Sales.Create(ctx, a.text("date"))
			},
		},
		{
			Name:        "update_sale",
			Description: "Update an existing sale's date",
			Method:      http.MethodPut,
			Path:        restaurant.SalesPath,
			Params: []CatalogParam{
				bodyParam("id", TypeInteger, "The sale ID"),
				bodyParam("date", TypeString, "The new sale date"),
			},
			Result: "Sale",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Sales.Update(ctx, models.Sale{ID: a.id("id"), Date: a.text("date")})
			},
		},
		{
			Name:        "delete_sale",
			Description: "Delete a sale by its ID",
			Method:      http.MethodDelete,
			Path:        restaurant.SalesPath,
			Params:      []CatalogParam{queryID("id", "", "The sale ID")},
			Result:      "string",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.Sales.Delete(ctx, a.id("id"))
			},
		},

		// Dish/menu relationships
		{
			Name:        "list_dish_menus",
			Description: "Get all dish-menu relationships",
			Method:      http.MethodGet,
			Path:        restaurant.DishMenusPath,
			Result:      "[]DishMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.DishMenus.List(ctx)
			},
		},
		{
			Name:        "get_dish_menu",
			Description: "Get a specific dish-menu relationship",
			Method:      http.MethodGet,
			Path:        restaurant.DishMenusPath + "/{idMenu}/{idDish}",
			Params: []CatalogParam{
				pathID("idMenu", "The menu ID"),
				pathID("idDish", "The dish ID"),
			},
			Result: "DishMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.DishMenus.Get(ctx, a.id("idMenu"), a.id("idDish"))
			},
		},
		{
			Name:        "add_dish_to_menu",
			Description: "Add a dish to a menu with price and date",
			Method:      http.MethodPost,
			Path:        restaurant.DishMenusPath,
			Params: []CatalogParam{
				bodyParam("idMenu", TypeInteger, "The menu ID"),
				bodyParam("idDish", TypeInteger, "The dish ID"),
				bodyParam("price", TypeNumber, "The price of the dish in this menu"),
				bodyParam("date", TypeString, "The date this dish was added to the menu"),
			},
			Result: "DishMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.DishMenus.Add(ctx, dishMenuFrom(a))
			},
		},
		{
			Name:        "update_dish_menu",
			Description: "Update a dish-menu relationship (price and/or date)",
			Method:      http.MethodPut,
			Path:        restaurant.DishMenusPath,
			Params: []CatalogParam{
				bodyParam("idMenu", TypeInteger, "The menu ID"),
				bodyParam("idDish", TypeInteger, "The dish ID"),
				bodyParam("price", TypeNumber, "The new price"),
				bodyParam("date", TypeString, "The new date"),
			},
			Result: "DishMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.DishMenus.Update(ctx, dishMenuFrom(a))
			},
		},
		{
			Name:        "remove_dish_from_menu",
			Description: "Remove a dish from a menu",
			Method:      http.MethodDelete,
			Path:        restaurant.DishMenusPath,
			Params: []CatalogParam{
				queryID("idMenu", "idmenu", "The menu ID"),
				queryID("idDish", "iddish", "The dish ID"),
			},
			Result: "string",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.DishMenus.Remove(ctx, a.id("idMenu"), a.id("idDish"))
			},
		},

		// Sale/menu relationships
		{
			Name:        "list_sale_menus",
			Description: "Get all sale-menu relationships",
			Method:      http.MethodGet,
			Path:        restaurant.SaleMenusPath,
			Result:      "[]SaleMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.SaleMenus.List(ctx)
			},
		},
		{
			Name:        "list_sale_menus_by_sale",
			Description: "Get all menus for a specific sale",
			Method:      http.MethodGet,
			Path:        restaurant.SaleMenusPath + "/sale/{idSale}",
			Params:      []CatalogParam{pathID("idSale", "The sale ID")},
			Result:      "[]SaleMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.SaleMenus.ListBySale(ctx, a.id("idSale"))
			},
		},
		{
			Name:        "get_sale_menu",
			Description: "Get a specific sale-menu relationship",
			Method:      http.MethodGet,
			Path:        restaurant.SaleMenusPath + "/{idMenu}/{idSale}",
			Params: []CatalogParam{
				pathID("idMenu", "The menu ID"),
				pathID("idSale", "The sale ID"),
			},
			Result: "SaleMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.SaleMenus.Get(ctx, a.id("idMenu"), a.id("idSale"))
			},
		},
		{
			Name:        "add_menu_to_sale",
			Description: "Add a menu to a sale with quantity",
			Method:      http.MethodPost,
			Path:        restaurant.SaleMenusPath,
			Params: []CatalogParam{
				{Name: "idMenu", Type: TypeInteger, Description: "The menu ID", Required: true, In: InBody, Wire: "menuId"},
				{Name: "idSale", Type: TypeInteger, Description: "The sale ID", Required: true, In: InBody, Wire: "saleId"},
				bodyParam("quantity", TypeInteger, "The quantity of this menu in the sale"),
			},
			Result: "SaleMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.SaleMenus.Add(ctx, a.id("idMenu"), a.id("idSale"), a.count("quantity"))
			},
		},
		{
			Name:        "update_sale_menu",
			Description: "Update the quantity of a menu in a sale",
			Method:      http.MethodPut,
			Path:        restaurant.SaleMenusPath,
			Params: []CatalogParam{
				bodyParam("idMenu", TypeInteger, "The menu ID"),
				bodyParam("idSale", TypeInteger, "The sale ID"),
				bodyParam("quantity", TypeInteger, "The new quantity"),
			},
			Result: "SaleMenu",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.SaleMenus.Update(ctx, models.SaleMenu{
					MenuID:   a.id("idMenu"),
					SaleID:   a.id("idSale"),
					Quantity: a.count("quantity"),
				})
			},
		},
		{
			Name:        "remove_menu_from_sale",
			Description: "Remove a menu from a sale",
			Method:      http.MethodDelete,
			Path:        restaurant.SaleMenusPath,
			Params: []CatalogParam{
				queryID("idMenu", "idmenu", "The menu ID"),
				queryID("idSale", "idsale", "The sale ID"),
			},
			Result: "string",
			call: func(ctx context.Context, s *restaurant.Service, a arguments) (interface{}, error) {
				return s.SaleMenus.Remove(ctx, a.id("idMenu"), a.id("idSale"))
			},
		},
	}
}

func dishMenuFrom(a arguments) models.DishMenu {
	return models.DishMenu{
		MenuID: a.id("idMenu"),
		DishID: a.id("idDish"),
		Price:  a.number("price"),
		Date:   a.text("date"),
	}
}
