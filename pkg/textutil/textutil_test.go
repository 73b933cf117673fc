package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/pkg/textutil"
)

func TestFold(t *testing.T) {
	assert.Equal(t, textutil.Fold("Juan Pérez"), textutil.Fold("JUAN PEREZ"))
	assert.Equal(t, "cedula", textutil.Fold(" Cédula "))
	assert.Equal(t, "pinguino", textutil.Fold("Pingüino"))
}

func TestContains(t *testing.T) {
	assert.True(t, textutil.Contains("Servicios Públicos", "publicos"))
	assert.True(t, textutil.Contains("Constructora S.A.S", ""), "consulta vacía coincide")
	assert.False(t, textutil.Contains("Arriendo", "nomina"))
}

func TestDecodeLegacy_Windows1252(t *testing.T) {
	// "Nómina" en Windows-1252: ó = 0xF3
	raw := []byte{'N', 0xF3, 'm', 'i', 'n', 'a'}
	out, err := textutil.DecodeLegacy(raw)
	require.NoError(t, err)
	assert.Equal(t, "Nómina", string(out))
}

func TestDecodeLegacy_UTF8ConBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Cédula")...)
	out, err := textutil.DecodeLegacy(raw)
	require.NoError(t, err)
	assert.Equal(t, "Cédula", string(out))
}
