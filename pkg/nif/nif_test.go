package nif_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/pkg/nif"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		kind    nif.Kind
		wantErr bool
	}{
		{"DNI válido", "12345678Z", nif.KindDNI, false},
		{"DNI con puntos y guion", "12.345.678-z", nif.KindDNI, false},
		{"DNI letra incorrecta", "12345678A", nif.KindDNI, true},
		{"NIE válido", "X1234567L", nif.KindNIE, false},
		{"NIE letra incorrecta", "X1234567T", nif.KindNIE, true},
		{"CIF sociedad limitada", "B12345674", nif.KindCIF, false},
		{"CIF sociedad limitada control erróneo", "B12345670", nif.KindCIF, true},
		{"CIF organismo público con letra", "Q2826000H", nif.KindCIF, false},
		{"longitud inválida", "1234", "", true},
		{"prefijo desconocido", "I12345678", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := nif.Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestComputeDNILetter(t *testing.T) {
	l, err := nif.ComputeDNILetter("12345678")
	require.NoError(t, err)
	assert.Equal(t, byte('Z'), l)

	_, err = nif.ComputeDNILetter("1234")
	assert.Error(t, err)
}
