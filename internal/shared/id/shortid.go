// Package id issues the public identifiers handed out by the API, e.g.
// "menu_4fQk9ZrT2mXa". Numeric primary keys never leave the service.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	PrefixMenu         = "menu"
	PrefixSubscription = "sub"

	// DefaultLength is the number of random characters after the prefix.
	DefaultLength = 12

	base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var base62Len = big.NewInt(int64(len(base62)))

// Generate returns n random base62 characters from crypto/rand.
func Generate(n int) (string, error) {
	if n <= 0 {
		n = DefaultLength
	}
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		i, err := rand.Int(rand.Reader, base62Len)
		if err != nil {
			return "", fmt.Errorf("id: read random: %w", err)
		}
		sb.WriteByte(base62[i.Int64()])
	}
	return sb.String(), nil
}

func newPrefixed(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func NewMenuID() (string, error) {
	return newPrefixed(PrefixMenu)
}

func NewSubscriptionID() (string, error) {
	return newPrefixed(PrefixSubscription)
}

func ValidateMenuID(s string) error {
	return validate(s, PrefixMenu)
}

func ValidateSubscriptionID(s string) error {
	return validate(s, PrefixSubscription)
}

// validate checks the prefix and the charset only. Length is not enforced so
// hand-written seed IDs stay valid.
func validate(s, prefix string) error {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return fmt.Errorf("id %q: expected prefix %s_", s, prefix)
	}
	if rest == "" {
		return fmt.Errorf("id %q: empty", s)
	}
	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(base62, rest[i]) < 0 {
			return fmt.Errorf("id %q: invalid character %q", s, rest[i])
		}
	}
	return nil
}
