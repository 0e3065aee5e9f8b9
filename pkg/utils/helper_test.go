package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  ADA@Example.COM "))
	assert.Equal(t, "ada@example.com", NormalizeEmail("ada@example.com"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 10, CalculateOffset(2, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("sw0rdfish")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("sw0rdfish", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
