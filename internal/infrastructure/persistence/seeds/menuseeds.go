// Package seeds loads demo data through the regular use cases so seeded rows
// pass the same validation as API input.
package seeds

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	"github.com/tiffin-inc/tiffin/internal/application/menu/usecases"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

type menuSeedFile struct {
	Menus []menuSeed `yaml:"menus"`
}

type menuSeed struct {
	ChefID      uint           `yaml:"chef_id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Schedule    []scheduleSeed `yaml:"schedule"`
}

type scheduleSeed struct {
	Day         string  `yaml:"day"`
	MealType    string  `yaml:"meal_type"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       *string `yaml:"price"`
}

// MenuCreator is satisfied by usecases.CreateMenuUseCase.
type MenuCreator interface {
	Execute(ctx context.Context, cmd usecases.CreateMenuCommand) (*dto.MenuDTO, error)
}

// SeedMenus creates every menu in the YAML document read from r and returns
// the created SIDs in file order. It stops at the first invalid menu.
func SeedMenus(ctx context.Context, r io.Reader, creator MenuCreator) ([]string, error) {
	var file menuSeedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode menu seeds: %w", err)
	}

	sids := make([]string, 0, len(file.Menus))
	for i, seed := range file.Menus {
		schedule, err := seed.items()
		if err != nil {
			return sids, fmt.Errorf("menu %d (%s): %w", i, seed.Title, err)
		}

		created, err := creator.Execute(ctx, usecases.CreateMenuCommand{
			ChefID:      seed.ChefID,
			Role:        constants.RoleChef,
			Title:       seed.Title,
			Description: seed.Description,
			Schedule:    schedule,
		})
		if err != nil {
			return sids, fmt.Errorf("menu %d (%s): %w", i, seed.Title, err)
		}
		sids = append(sids, created.ID)
	}

	return sids, nil
}

func (s menuSeed) items() ([]dto.ScheduleItemInput, error) {
	items := make([]dto.ScheduleItemInput, 0, len(s.Schedule))
	for _, item := range s.Schedule {
		in := dto.ScheduleItemInput{
			Day:         item.Day,
			MealType:    item.MealType,
			Name:        item.Name,
			Description: item.Description,
		}
		if item.Price != nil {
			price, err := decimal.NewFromString(*item.Price)
			if err != nil {
				return nil, fmt.Errorf("invalid price %q for %s %s", *item.Price, item.Day, item.MealType)
			}
			in.Price = &price
		}
		items = append(items, in)
	}
	return items, nil
}
