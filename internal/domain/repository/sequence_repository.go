package repository

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain/numbering"
)

// SequenceRepository contadores de numeración por familia (tabla document_sequences).
type SequenceRepository interface {
	// LockCounter bloquea el contador de la familia y devuelve el último valor emitido.
	// found=false si la familia aún no tiene fila.
	LockCounter(ctx context.Context, family numbering.Family) (last int64, found bool, err error)
	// InitCounter crea la fila con last; si otra transacción la creó antes no hace nada.
	InitCounter(ctx context.Context, family numbering.Family, last int64) error
	SaveCounter(ctx context.Context, family numbering.Family, last int64) error
	// LastIssued identificador del documento más reciente de la familia, para sembrar el contador.
	LastIssued(ctx context.Context, family numbering.Family) (id string, found bool, err error)
}
