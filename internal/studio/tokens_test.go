package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBudgetFor(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{800, 300},
		{1200, 450},
		{1600, 600},
		{1000, 300},
		{0, 300},
		{-800, 300},
		{1601, 300},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenBudgetFor(tt.length), "length %d", tt.length)
	}
}
