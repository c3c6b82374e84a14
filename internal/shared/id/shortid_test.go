package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuIDAndSubscriptionID(t *testing.T) {
	menuID, err := NewMenuID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(menuID, "menu_"))
	assert.Len(t, menuID, len("menu_")+DefaultLength)
	assert.NoError(t, ValidateMenuID(menuID))

	subID, err := NewSubscriptionID()
	require.NoError(t, err)
	assert.NoError(t, ValidateSubscriptionID(subID))
	assert.Error(t, ValidateMenuID(subID))
}

func TestValidateSubscriptionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "sub_abc123XYZ", false},
		{"short but valid", "sub_x", false},
		{"wrong prefix", "menu_abc123", true},
		{"no underscore", "subabc", true},
		{"empty short id", "sub_", true},
		{"bad characters", "sub_abc-123", true},
		{"nested underscore", "sub_a_b", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubscriptionID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGenerate(t *testing.T) {
	s, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s, err := Generate(DefaultLength)
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "duplicate id %s", s)
		seen[s] = struct{}{}
	}
}
