package menu

import "context"

// Repository persists menus. Getters return (nil, nil) when the menu does
// not exist or was deleted.
type Repository interface {
	Create(ctx context.Context, menu *Menu) error
	GetByID(ctx context.Context, id uint) (*Menu, error)
	GetBySID(ctx context.Context, sid string) (*Menu, error)
	ListByChef(ctx context.Context, chefID uint, page, pageSize int) ([]*Menu, int64, error)
	Update(ctx context.Context, menu *Menu) error
	Delete(ctx context.Context, id uint) error
}
