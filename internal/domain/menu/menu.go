package menu

import (
	"fmt"
	"strings"
	"time"

	"github.com/tiffin-inc/tiffin/internal/shared/id"
)

// Menu is a chef's weekly schedule of priced meals.
type Menu struct {
	id          uint
	sid         string
	chefID      uint
	title       string
	description string
	schedule    []ScheduleItem
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewMenu validates and creates a menu owned by chefID. Duplicate
// (day, meal type) items are kept as given.
func NewMenu(chefID uint, title, description string, schedule []ScheduleItem) (*Menu, error) {
	if chefID == 0 {
		return nil, fmt.Errorf("%w: chef ID is required", ErrInvalidMenu)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidMenu)
	}
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}

	sid, err := id.NewMenuID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate menu ID: %w", err)
	}

	now := time.Now().UTC()
	return &Menu{
		sid:         sid,
		chefID:      chefID,
		title:       title,
		description: description,
		schedule:    copySchedule(schedule),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructMenu rebuilds a menu from persistence without validating the
// schedule, so that malformed stored prices surface during pricing.
func ReconstructMenu(
	id uint,
	sid string,
	chefID uint,
	title, description string,
	schedule []ScheduleItem,
	version int,
	createdAt, updatedAt time.Time,
) (*Menu, error) {
	if id == 0 {
		return nil, fmt.Errorf("menu ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("menu SID is required")
	}
	if chefID == 0 {
		return nil, fmt.Errorf("chef ID is required")
	}

	return &Menu{
		id:          id,
		sid:         sid,
		chefID:      chefID,
		title:       title,
		description: description,
		schedule:    copySchedule(schedule),
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (m *Menu) ID() uint {
	return m.id
}

func (m *Menu) SID() string {
	return m.sid
}

func (m *Menu) ChefID() uint {
	return m.chefID
}

func (m *Menu) Title() string {
	return m.title
}

func (m *Menu) Description() string {
	return m.description
}

// Schedule returns a copy of the schedule items.
func (m *Menu) Schedule() []ScheduleItem {
	return copySchedule(m.schedule)
}

func (m *Menu) Version() int {
	return m.version
}

func (m *Menu) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Menu) UpdatedAt() time.Time {
	return m.updatedAt
}

// SetID sets the menu ID (only for persistence layer use)
func (m *Menu) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("menu ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("menu ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Menu) IsOwnedBy(chefID uint) bool {
	return m.chefID == chefID
}

// UpdateDetails replaces title and description when they are non-empty.
func (m *Menu) UpdateDetails(title, description string) {
	changed := false
	if t := strings.TrimSpace(title); t != "" && t != m.title {
		m.title = t
		changed = true
	}
	if description != "" && description != m.description {
		m.description = description
		changed = true
	}
	if changed {
		m.touch()
	}
}

// ReplaceSchedule swaps the whole schedule. Existing subscriptions pick up
// the new prices on their next renewal.
func (m *Menu) ReplaceSchedule(schedule []ScheduleItem) error {
	if err := validateSchedule(schedule); err != nil {
		return err
	}
	m.schedule = copySchedule(schedule)
	m.touch()
	return nil
}

func (m *Menu) touch() {
	m.version++
	m.updatedAt = time.Now().UTC()
}

func validateSchedule(schedule []ScheduleItem) error {
	if len(schedule) == 0 {
		return fmt.Errorf("%w: schedule must contain at least one item", ErrInvalidMenu)
	}
	for idx, item := range schedule {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("schedule[%d]: %w", idx, err)
		}
	}
	return nil
}

func copySchedule(schedule []ScheduleItem) []ScheduleItem {
	if schedule == nil {
		return nil
	}
	out := make([]ScheduleItem, len(schedule))
	copy(out, schedule)
	return out
}
