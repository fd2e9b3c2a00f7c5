// Package restaurant provides typed clients for the restaurant REST API.
package restaurant

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
)

// Collection paths, relative to the API base URL.
const (
	DishesPath    = "/dishes"
	MenusPath     = "/menus"
	SalesPath     = "/sales"
	DishMenusPath = "/dish-menus"
	SaleMenusPath = "/SalesMenu"
)

// Resource performs the five collection operations for one entity type.
type Resource[T any] struct {
	client *client.Client
	path   string
}

// NewResource binds a resource to a collection path.
func NewResource[T any](c *client.Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches every element of the collection in backend order.
// An empty collection yields an empty, non-nil slice.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.listAt(ctx, r.path)
}

// ListAt fetches a sub-collection such as "/sale/4".
func (r *Resource[T]) ListAt(ctx context.Context, subpath string) ([]T, error) {
	return r.listAt(ctx, r.path+subpath)
}

func (r *Resource[T]) listAt(ctx context.Context, path string) ([]T, error) {
	items := []T{}
	if err := r.client.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches one element. ids form the path segments after the collection,
// e.g. Get(ctx, 7, 3) requests {collection}/7/3.
func (r *Resource[T]) Get(ctx context.Context, ids ...int64) (T, error) {
	var item T
	if err := r.client.Get(ctx, r.path+idPath(ids...), &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Create posts body to the collection and returns the entity the backend stored.
func (r *Resource[T]) Create(ctx context.Context, body interface{}) (T, error) {
	var item T
	if err := r.client.Post(ctx, r.path, body, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update puts body to the collection and returns the entity the backend stored.
func (r *Resource[T]) Update(ctx context.Context, body interface{}) (T, error) {
	var item T
	if err := r.client.Put(ctx, r.path, body, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Delete removes the element identified by query. Any response body is discarded.
func (r *Resource[T]) Delete(ctx context.Context, query url.Values) error {
	return r.client.Delete(ctx, r.path, query)
}

func idPath(ids ...int64) string {
	var p string
	for _, id := range ids {
		p += "/" + formatID(id)
	}
	return p
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
