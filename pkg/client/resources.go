package client

import (
	"context"
	"fmt"
	"net/http"
)

// Resource provides the uniform CRUD surface shared by the record-store
// entities. All calls run through the session transport.
type Resource[T any] struct {
	client *Client
	path   string
}

func newResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// Destinations returns the destinations resource.
func (c *Client) Destinations() *Resource[Destination] {
	return newResource[Destination](c, "/api/destinations")
}

// Guides returns the guides resource.
func (c *Client) Guides() *Resource[Guide] {
	return newResource[Guide](c, "/api/guides")
}

// Customers returns the customers resource.
func (c *Client) Customers() *Resource[Customer] {
	return newResource[Customer](c, "/api/customers")
}

// Tours returns the tours resource.
func (c *Client) Tours() *Resource[Tour] {
	return newResource[Tour](c, "/api/tours")
}

// Bookings returns the bookings resource.
func (c *Client) Bookings() *Resource[Booking] {
	return newResource[Booking](c, "/api/bookings")
}

// List fetches all entities.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.doJSON(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one entity by id.
func (r *Resource[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates an entity and returns the stored version.
func (r *Resource[T]) Create(ctx context.Context, item *T) (*T, error) {
	var created T
	if err := r.client.doJSON(ctx, http.MethodPost, r.path, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces an entity and returns the stored version.
func (r *Resource[T]) Update(ctx context.Context, id uint, item *T) (*T, error) {
	var updated T
	if err := r.client.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an entity.
func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	return r.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil, nil)
}
