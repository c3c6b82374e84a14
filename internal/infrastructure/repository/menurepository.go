package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/mappers"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/id"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type MenuRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MenuMapper
	logger logger.Interface
}

func NewMenuRepository(db *gorm.DB, logger logger.Interface) menu.Repository {
	return &MenuRepositoryImpl{
		db:     db,
		mapper: mappers.NewMenuMapper(),
		logger: logger,
	}
}

func (r *MenuRepositoryImpl) Create(ctx context.Context, m *menu.Menu) error {
	model, err := r.mapper.ToModel(m)
	if err != nil {
		r.logger.Errorw("failed to map menu entity to model", "error", err)
		return fmt.Errorf("failed to map menu entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create menu in database", "chef_id", model.ChefID, "error", err)
		return fmt.Errorf("failed to create menu: %w", err)
	}

	if err := m.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set menu ID: %w", err)
	}
	return nil
}

func (r *MenuRepositoryImpl) GetByID(ctx context.Context, id uint) (*menu.Menu, error) {
	return r.first(ctx, "id = ?", id)
}

// GetBySID returns nil for unknown and malformed SIDs alike.
func (r *MenuRepositoryImpl) GetBySID(ctx context.Context, sid string) (*menu.Menu, error) {
	if id.ValidateMenuID(sid) != nil {
		return nil, nil
	}
	return r.first(ctx, "sid = ?", sid)
}

func (r *MenuRepositoryImpl) first(ctx context.Context, cond string, arg any) (*menu.Menu, error) {
	var model models.MenuModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get menu", "key", arg, "error", err)
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map menu model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map menu: %w", err)
	}
	return entity, nil
}

func (r *MenuRepositoryImpl) ListByChef(ctx context.Context, chefID uint, page, pageSize int) ([]*menu.Menu, int64, error) {
	var (
		list  []*models.MenuModel
		total int64
	)

	query := db.GetTxFromContext(ctx, r.db).Model(&models.MenuModel{}).Where("chef_id = ?", chefID)
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count menus", "chef_id", chefID, "error", err)
		return nil, 0, fmt.Errorf("failed to count menus: %w", err)
	}

	if err := query.Order("id ASC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list menus", "chef_id", chefID, "error", err)
		return nil, 0, fmt.Errorf("failed to list menus: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map menus: %w", err)
	}
	return entities, total, nil
}

// Update overwrites the menu. Menus are edited by their single owner, so
// the last write wins.
func (r *MenuRepositoryImpl) Update(ctx context.Context, m *menu.Menu) error {
	model, err := r.mapper.ToModel(m)
	if err != nil {
		r.logger.Errorw("failed to map menu entity to model", "id", m.ID(), "error", err)
		return fmt.Errorf("failed to map menu entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.MenuModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"description": model.Description,
			"schedule":    model.Schedule,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update menu", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update menu: %w", result.Error)
	}
	// RowsAffected may be 0 when nothing changed, so it is not checked.
	return nil
}

// Delete soft-deletes the menu; getters stop returning it.
func (r *MenuRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.MenuModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete menu", "id", id, "error", err)
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	r.logger.Infow("menu deleted", "id", id)
	return nil
}
