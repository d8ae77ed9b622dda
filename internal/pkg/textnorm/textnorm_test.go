package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Operário", "operario"},
		{"  SINALEIRO ", "sinaleiro"},
		{"Técnico Manutenção", "tecnico manutencao"},
		{"Saída Antecipada", "saida antecipada"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestIn(t *testing.T) {
	roles := []string{"Operário", "Sinaleiro"}
	assert.True(t, In("operario", roles))
	assert.True(t, In("SINALEIRO", roles))
	assert.False(t, In("Gerente", roles))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("João da Conceição", "conceicao"))
	assert.False(t, Contains("João", "maria"))
}
