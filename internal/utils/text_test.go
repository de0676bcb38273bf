package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  TRIM 1 \t", "TRIM 1"},
		{"empty", "   ", ""},
		{"composes decomposed accents", "Soudure défaut", "Soudure défaut"},
		{"keeps inner spacing", "CHASSIS  2", "CHASSIS  2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeValues(t *testing.T) {
	got := NormalizeValues([]string{" RED", "BLUE", "", "RED ", "café", "café"})
	assert.Equal(t, []string{"RED", "BLUE", "caf\u00e9"}, got)

	assert.Empty(t, NormalizeValues(nil))
}
