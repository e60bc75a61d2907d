package quoting

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func TestNextDocumentNumber_SinColision(t *testing.T) {
	exists := func(string) (bool, error) { return false, nil }

	number, err := nextDocumentNumber(quotationPrefix, fixedNow, 41, exists)
	require.NoError(t, err)
	assert.Equal(t, "QT-2026-0042", number, "secuencia del año + 1, con padding a 4 dígitos")
}

// TestNextDocumentNumber_ReintentoAcotado: ante colisiones avanza la
// secuencia, con un máximo de intentos fijo (sin recursión sin fondo).
func TestNextDocumentNumber_ReintentoAcotado(t *testing.T) {
	taken := map[string]bool{
		"PR-2026-0005": true,
		"PR-2026-0006": true,
	}
	var calls int
	exists := func(n string) (bool, error) {
		calls++
		return taken[n], nil
	}

	number, err := nextDocumentNumber(proposalPrefix, fixedNow, 4, exists)
	require.NoError(t, err)
	assert.Equal(t, "PR-2026-0007", number, "salta los números ya tomados")
	assert.Equal(t, 3, calls)
}

// TestNextDocumentNumber_FallbackTimestamp: agotados los intentos, el número
// cae a un identificador por timestamp — la generación siempre termina.
func TestNextDocumentNumber_FallbackTimestamp(t *testing.T) {
	var calls int
	exists := func(string) (bool, error) {
		calls++
		return true, nil // todo candidato está tomado
	}

	number, err := nextDocumentNumber(quotationPrefix, fixedNow, 0, exists)
	require.NoError(t, err)
	assert.Equal(t, maxNumberAttempts, calls, "el reintento está acotado")
	assert.True(t, strings.HasPrefix(number, "QT-2026-"), "conserva prefijo y año")
	assert.Equal(t, fmt.Sprintf("QT-2026-%d", fixedNow.UnixNano()), number,
		"el fallback es determinista respecto del reloj inyectado")
}

func TestNextDocumentNumber_PropagaErrorDelRepositorio(t *testing.T) {
	bang := errors.New("conexión perdida")
	exists := func(string) (bool, error) { return false, bang }

	_, err := nextDocumentNumber(quotationPrefix, fixedNow, 0, exists)
	assert.ErrorIs(t, err, bang)
}
