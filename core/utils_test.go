package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"João", "joao"},
		{"ANDRÉ", "andre"},
		{"Conceição", "conceicao"},
		{"karate", "karate"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldString(tt.in), "FoldString(%q)", tt.in)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("João Silva", "joao"))
	assert.True(t, ContainsFold("joao silva", "JOÃO"))
	assert.True(t, ContainsFold("Beatriz", "EAT"))
	assert.False(t, ContainsFold("Beatriz", "joão"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "11987654321", DigitsOnly("(11) 98765-4321"))
	assert.Equal(t, "12345678901", DigitsOnly("123.456.789-01"))
	assert.Equal(t, "", DigitsOnly("sem dígitos aqui? não!"))
}

func TestContainsDigits(t *testing.T) {
	assert.True(t, ContainsDigits("(11) 98765-4321", "8765"))
	assert.False(t, ContainsDigits("(11) 98765-4321", "0000"))
	// an empty needle never matches; it would match every record
	assert.False(t, ContainsDigits("(11) 98765-4321", ""))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "João", CleanString("  João  "))
	assert.Equal(t, "joão", CleanString("  João  ", true))
}
