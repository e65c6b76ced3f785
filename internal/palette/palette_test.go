package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenewark/arklights/internal/brightness"
)

func TestColorOf(t *testing.T) {
	assert.Equal(t, brightness.Color{R: 0xFF}, ColorOf(0), "C is red")
	assert.Equal(t, brightness.Color{B: 0xFE}, ColorOf(11), "B is near-blue")
}

func TestName(t *testing.T) {
	assert.Equal(t, "C", Name(0))
	assert.Equal(t, "Db", Name(1))
	assert.Equal(t, "B", Name(11))
}
