package valueobjects

import (
	"fmt"
	"strings"
	"time"

	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

type SubscriptionType string

const (
	TypeWeekly  SubscriptionType = "weekly"
	TypeMonthly SubscriptionType = "monthly"
)

func ParseSubscriptionType(s string) (SubscriptionType, error) {
	t := SubscriptionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid subscription type: %q", s)
	}
	return t, nil
}

func (t SubscriptionType) IsValid() bool {
	return t == TypeWeekly || t == TypeMonthly
}

func (t SubscriptionType) String() string {
	return string(t)
}

// NextEnd returns the end of the period that follows from: seven days for
// weekly, one calendar month (clamped to month end) for monthly.
func (t SubscriptionType) NextEnd(from time.Time) time.Time {
	if t == TypeMonthly {
		return biztime.AddMonths(from, 1)
	}
	return biztime.AddDays(from, 7)
}
