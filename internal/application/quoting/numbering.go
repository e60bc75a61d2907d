package quoting

import (
	"fmt"
	"time"
)

// maxNumberAttempts acota el reintento ante colisiones de número. Superado el
// límite se usa un identificador basado en timestamp, que por construcción no
// colisiona con la secuencia: la generación siempre termina.
const maxNumberAttempts = 5

// Prefijos de numeración por tipo de documento.
const (
	quotationPrefix = "QT"
	proposalPrefix  = "PR"
)

// nextDocumentNumber genera el siguiente número con formato
// <prefijo>-<año>-<secuencia de 4 dígitos>. seq es la cantidad de documentos
// ya emitidos en el año; exists consulta si un candidato ya está tomado
// (documentos creados en paralelo o numeración importada).
func nextDocumentNumber(prefix string, now time.Time, seq int, exists func(string) (bool, error)) (string, error) {
	year := now.Year()
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%d-%04d", prefix, year, seq+attempt)
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("verificar número %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	// Fallback: identificador por timestamp, único en la práctica y fuera del
	// espacio de la secuencia de 4 dígitos.
	return fmt.Sprintf("%s-%d-%d", prefix, year, now.UnixNano()), nil
}
