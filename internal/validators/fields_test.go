package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPincodeValid(t *testing.T) {
	valid := []string{"1234", "560001", "1234567890", " 560001 "}
	for _, p := range valid {
		assert.True(t, IsPincodeValid(p), p)
	}

	invalid := []string{"", "123", "12345678901", "56 001", "5600a", "-5600"}
	for _, p := range invalid {
		assert.False(t, IsPincodeValid(p), p)
	}
}

func TestIsUsernameValid(t *testing.T) {
	valid := []string{"bob", "alice_99", "Jan.Novak", "a-b-c", strings.Repeat("x", 50)}
	for _, u := range valid {
		assert.True(t, IsUsernameValid(u), u)
	}

	invalid := []string{"", "ab", "has space", "semi;colon", "p@ss", strings.Repeat("x", 51)}
	for _, u := range invalid {
		assert.False(t, IsUsernameValid(u), u)
	}
}
