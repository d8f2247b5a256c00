package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "full-width postal code", input: "１５０−００４３", expected: "150-0043"},
		{name: "full-width hyphen", input: "１５０－００４３", expected: "150-0043"},
		{name: "already ascii", input: "150-0043", expected: "150-0043"},
		{name: "address keeps kanji", input: "渋谷区道玄坂２丁目２４−１", expected: "渋谷区道玄坂2丁目24-1"},
		{name: "prolonged sound mark untouched", input: "センター", expected: "センター"},
		{name: "full-width letters untouched", input: "ＡＢＣビル", expected: "ＡＢＣビル"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDigits(tt.input))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1500043", DigitsOnly("〒１５０−００４３"))
	assert.Equal(t, "1500043", DigitsOnly(" 150 0043 "))
	assert.Equal(t, "", DigitsOnly("abc"))
}
