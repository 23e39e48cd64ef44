package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// Tabla y columna que guardan el número de cada familia de documentos.
var familySource = map[numbering.Family]struct{ table, column string }{
	numbering.FamilyPurchaseOrder:   {"purchase_orders", "order_number"},
	numbering.FamilyPurchaseInvoice: {"purchase_invoices", "invoice_number"},
	numbering.FamilySaleOrder:       {"sale_orders", "order_number"},
	numbering.FamilySalesInvoice:    {"invoices", "invoice_number"},
}

// SequenceRepo contadores en document_sequences(family PK, last_value).
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// LockCounter SELECT ... FOR UPDATE sobre la fila de la familia.
func (r *SequenceRepo) LockCounter(ctx context.Context, family numbering.Family) (int64, bool, error) {
	var last int64
	err := r.q.QueryRow(ctx,
		`SELECT last_value FROM document_sequences WHERE family = $1 FOR UPDATE`, string(family),
	).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lock sequence %s: %w", family, err)
	}
	return last, true, nil
}

// InitCounter inserta la fila; ON CONFLICT la deja intacta si otra transacción ganó.
func (r *SequenceRepo) InitCounter(ctx context.Context, family numbering.Family, last int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO document_sequences (family, last_value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (family) DO NOTHING`, string(family), last,
	)
	if err != nil {
		return fmt.Errorf("init sequence %s: %w", family, err)
	}
	return nil
}

func (r *SequenceRepo) SaveCounter(ctx context.Context, family numbering.Family, last int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE document_sequences SET last_value = $2, updated_at = now() WHERE family = $1`, string(family), last,
	)
	if err != nil {
		return fmt.Errorf("save sequence %s: %w", family, err)
	}
	return nil
}

// lastIssuedQuery mayor identificador emitido. Con prefijo y relleno fijos, a igual
// longitud el orden de texto coincide con el numérico; más dígitos = número mayor.
func lastIssuedQuery(table, column string) string {
	return fmt.Sprintf(`SELECT %[2]s FROM %[1]s ORDER BY length(%[2]s) DESC, %[2]s DESC LIMIT 1`, table, column)
}

// LastIssued identificador más alto emitido en la familia.
func (r *SequenceRepo) LastIssued(ctx context.Context, family numbering.Family) (string, bool, error) {
	src, ok := familySource[family]
	if !ok {
		return "", false, fmt.Errorf("familia desconocida %q", family)
	}
	var id string
	if err := r.q.QueryRow(ctx, lastIssuedQuery(src.table, src.column)).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("last issued %s: %w", family, err)
	}
	return id, true, nil
}
