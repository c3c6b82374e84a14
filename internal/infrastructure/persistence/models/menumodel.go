package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

// MenuModel is the persistence model for chef menus. The weekly schedule is
// stored as a JSON array of ScheduleItemRecord.
type MenuModel struct {
	ID          uint           `gorm:"primarykey"`
	SID         string         `gorm:"column:sid;uniqueIndex;not null;size:50;comment:menu_xxx"`
	ChefID      uint           `gorm:"not null;index:idx_menu_chef"`
	Title       string         `gorm:"not null;size:200"`
	Description string         `gorm:"type:text"`
	Schedule    datatypes.JSON `gorm:"not null"`
	Version     int            `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// ScheduleItemRecord is one element of MenuModel.Schedule. Price is kept as
// a string so decimals survive the JSON round trip; nil means missing.
type ScheduleItemRecord struct {
	Day         string  `json:"day"`
	MealType    string  `json:"meal_type"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       *string `json:"price"`
}

func (MenuModel) TableName() string {
	return constants.TableMenus
}

func (m *MenuModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
