// Package sequence emite los consecutivos de documentos (PO, PINV, SO, INV).
package sequence

import (
	"context"
	"fmt"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// Sequencer asigna el siguiente número de una familia con el contador bloqueado
// (SELECT ... FOR UPDATE) para que dos transacciones nunca obtengan el mismo valor.
type Sequencer struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewSequencer construye el emisor de consecutivos.
func NewSequencer(txRunner TxRunner, log *logger.Logger) *Sequencer {
	return &Sequencer{txRunner: txRunner, log: log.Component("sequence")}
}

// Next reserva el siguiente número en su propia transacción. Sirve para pruebas y
// herramientas; los documentos usan NextInTx para que número y documento se
// confirmen juntos (si la transacción aborta, el número no se consume).
func (s *Sequencer) Next(ctx context.Context, family numbering.Family) (string, error) {
	var id string
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		id, err = s.NextInTx(ctx, tx, family)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// NextInTx reserva el siguiente número dentro de la transacción del llamador.
// La primera vez que se usa una familia el contador se siembra con el último
// documento existente; si ese identificador no se puede interpretar devuelve
// MalformedSequenceError en lugar de adivinar.
func (s *Sequencer) NextInTx(ctx context.Context, tx repository.Tx, family numbering.Family) (string, error) {
	if !family.Valid() {
		return "", fmt.Errorf("%w: familia de documento %q", domain.ErrInvalidInput, family)
	}
	seqs := tx.Sequences()

	last, found, err := seqs.LockCounter(ctx, family)
	if err != nil {
		return "", err
	}
	if !found {
		seed, err := s.seed(ctx, seqs, family)
		if err != nil {
			return "", err
		}
		// Si otra transacción creó la fila primero, InitCounter no hace nada y el
		// segundo bloqueo lee el valor ya confirmado por ella.
		if err := seqs.InitCounter(ctx, family, seed); err != nil {
			return "", err
		}
		if last, found, err = seqs.LockCounter(ctx, family); err != nil {
			return "", err
		}
		if !found {
			return "", fmt.Errorf("contador %s no disponible tras inicializarlo", family)
		}
	}

	next := last + 1
	if err := seqs.SaveCounter(ctx, family, next); err != nil {
		return "", err
	}
	id := numbering.Format(family, next)
	s.log.Debug().Str("family", string(family)).Str("number", id).Msg("consecutivo asignado")
	return id, nil
}

func (s *Sequencer) seed(ctx context.Context, seqs repository.SequenceRepository, family numbering.Family) (int64, error) {
	lastID, found, err := seqs.LastIssued(ctx, family)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	n, err := numbering.Parse(family, lastID)
	if err != nil {
		s.log.Error().Err(err).Str("family", string(family)).Msg("no se puede sembrar el contador")
		return 0, err
	}
	return n, nil
}
