package menu

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
)

func validSchedule() []ScheduleItem {
	return []ScheduleItem{
		NewScheduleItem(vo.Monday, vo.Breakfast, "Poha", "", decimal.NewFromInt(100)),
		NewScheduleItem(vo.Monday, vo.Lunch, "Dal rice", "", decimal.NewFromInt(150)),
	}
}

func TestNewMenu(t *testing.T) {
	m, err := NewMenu(7, "  Home food  ", "**fresh**", validSchedule())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(m.SID(), "menu_"))
	assert.Equal(t, uint(7), m.ChefID())
	assert.Equal(t, "Home food", m.Title())
	assert.Equal(t, 1, m.Version())
	assert.Len(t, m.Schedule(), 2)
	assert.True(t, m.IsOwnedBy(7))
	assert.False(t, m.IsOwnedBy(8))
}

func TestNewMenu_Validation(t *testing.T) {
	negative := validSchedule()
	negative[1].Price = decimal.NewNullDecimal(decimal.NewFromInt(-1))

	missingPrice := validSchedule()
	missingPrice[0].Price = decimal.NullDecimal{}

	badDay := validSchedule()
	badDay[0].Day = "Someday"

	noName := validSchedule()
	noName[0].Name = " "

	tests := []struct {
		name     string
		chefID   uint
		title    string
		schedule []ScheduleItem
		wantErr  error
	}{
		{"missing chef", 0, "t", validSchedule(), ErrInvalidMenu},
		{"missing title", 1, "", validSchedule(), ErrInvalidMenu},
		{"empty schedule", 1, "t", nil, ErrInvalidMenu},
		{"negative price", 1, "t", negative, ErrInvalidScheduleItem},
		{"missing price", 1, "t", missingPrice, ErrInvalidScheduleItem},
		{"invalid day", 1, "t", badDay, ErrInvalidScheduleItem},
		{"missing item name", 1, "t", noName, ErrInvalidScheduleItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMenu(tt.chefID, tt.title, "", tt.schedule)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewMenu_KeepsDuplicateItems(t *testing.T) {
	schedule := append(validSchedule(), NewScheduleItem(vo.Monday, vo.Lunch, "Rajma", "", decimal.NewFromInt(180)))

	m, err := NewMenu(1, "t", "", schedule)
	require.NoError(t, err)
	assert.Len(t, m.Schedule(), 3)
}

func TestMenu_ScheduleIsCopied(t *testing.T) {
	m, err := NewMenu(1, "t", "", validSchedule())
	require.NoError(t, err)

	s := m.Schedule()
	s[0].Name = "changed"
	assert.Equal(t, "Poha", m.Schedule()[0].Name)
}

func TestMenu_UpdateDetails(t *testing.T) {
	m, err := NewMenu(1, "Old", "old desc", validSchedule())
	require.NoError(t, err)

	m.UpdateDetails("", "")
	assert.Equal(t, "Old", m.Title())
	assert.Equal(t, 1, m.Version())

	m.UpdateDetails("New", "")
	assert.Equal(t, "New", m.Title())
	assert.Equal(t, "old desc", m.Description())
	assert.Equal(t, 2, m.Version())
}

func TestMenu_ReplaceSchedule(t *testing.T) {
	m, err := NewMenu(1, "t", "", validSchedule())
	require.NoError(t, err)

	err = m.ReplaceSchedule([]ScheduleItem{
		NewScheduleItem(vo.Friday, vo.Dinner, "Biryani", "", decimal.NewFromInt(300)),
	})
	require.NoError(t, err)
	assert.Len(t, m.Schedule(), 1)
	assert.Equal(t, 2, m.Version())

	err = m.ReplaceSchedule(nil)
	assert.ErrorIs(t, err, ErrInvalidMenu)
	assert.Len(t, m.Schedule(), 1)
}

func TestReconstructMenu_AllowsMalformedPrices(t *testing.T) {
	schedule := []ScheduleItem{{Day: vo.Monday, MealType: vo.Lunch, Name: "x"}}

	m, err := ReconstructMenu(3, "menu_abc", 2, "t", "", schedule, 4, time.Now(), time.Now())
	require.NoError(t, err)
	assert.False(t, m.Schedule()[0].Price.Valid)

	_, err = ReconstructMenu(0, "menu_abc", 2, "t", "", schedule, 4, time.Now(), time.Now())
	assert.Error(t, err)
}

func TestMenu_SetID(t *testing.T) {
	m, err := NewMenu(1, "t", "", validSchedule())
	require.NoError(t, err)

	require.NoError(t, m.SetID(10))
	assert.Equal(t, uint(10), m.ID())
	assert.Error(t, m.SetID(11))
}
