package menu

import "errors"

var (
	ErrMenuNotFound        = errors.New("menu not found")
	ErrNotMenuOwner        = errors.New("menu belongs to another chef")
	ErrInvalidMenu         = errors.New("invalid menu")
	ErrInvalidScheduleItem = errors.New("invalid schedule item")
)
