package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKnownEntities(t *testing.T) {
	for _, entity := range All() {
		parsed, ok := Parse(string(entity))
		assert.True(t, ok, string(entity))
		assert.Equal(t, entity, parsed)
	}
}

func TestParseRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "product", "PRODUCTS", "Cash_Movements", "orders", "login"} {
		_, ok := Parse(name)
		assert.False(t, ok, name)
	}
}
