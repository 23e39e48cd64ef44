package inventory

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

// StockCountReference referencia de los movimientos que genera un conteo físico.
const StockCountReference = "STOCK-COUNT"

// StockCountUseCase concilia un conteo físico contra el stock registrado.
// Cada fila se aplica en su propia transacción: una fila fallida no revierte las demás.
type StockCountUseCase struct {
	txRunner TxRunner
	ledger   *StockLedger
	parser   CountSheetParser
	log      *logger.Logger
}

// NewStockCountUseCase construye el caso de uso de importación de conteos.
func NewStockCountUseCase(txRunner TxRunner, ledger *StockLedger, parser CountSheetParser, log *logger.Logger) *StockCountUseCase {
	return &StockCountUseCase{txRunner: txRunner, ledger: ledger, parser: parser, log: log.Component("stock_count")}
}

// Import lee el archivo y aplica, por fila: contado > actual => in de la diferencia;
// contado < actual => adjustment de la diferencia; igual => sin movimiento.
func (uc *StockCountUseCase) Import(ctx context.Context, r io.Reader, actor string) (*dto.StockCountResult, error) {
	rows, err := uc.parser.ParseStockCount(r)
	if err != nil {
		return nil, err
	}
	res := &dto.StockCountResult{Rows: make([]dto.StockCountRowResult, 0, len(rows))}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		out := uc.applyRow(ctx, row, actor)
		switch out.Status {
		case dto.StockCountApplied:
			res.Applied++
		case dto.StockCountUnchanged:
			res.Unchanged++
		default:
			res.Failed++
		}
		res.Rows = append(res.Rows, out)
	}
	uc.log.Info().Int("applied", res.Applied).Int("unchanged", res.Unchanged).Int("failed", res.Failed).Msg("conteo físico importado")
	return res, nil
}

func (uc *StockCountUseCase) applyRow(ctx context.Context, row CountRow, actor string) dto.StockCountRowResult {
	out := dto.StockCountRowResult{Row: row.Line, SKU: row.SKU, Counted: row.Counted}
	fail := func(err error) dto.StockCountRowResult {
		out.Status = dto.StockCountFailed
		out.Error = err.Error()
		out.MovementType, out.Quantity, out.MovementID = "", 0, ""
		return out
	}
	if row.Err != nil {
		return fail(row.Err)
	}
	if row.Counted < 0 {
		return fail(fmt.Errorf("cantidad contada negativa: %d", row.Counted))
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		found, err := tx.Products().GetBySKU(ctx, row.SKU)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("sku %q no existe", row.SKU)
		}
		// la diferencia se calcula sobre la fila bloqueada, no sobre la lectura por SKU
		product, err := tx.Products().GetForUpdate(ctx, found.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("sku %q no existe", row.SKU)
		}
		out.Previous = product.StockQuantity
		diff := row.Counted - product.StockQuantity
		if diff == 0 {
			return nil
		}
		in := MovementInput{
			ProductID: product.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  diff,
			Reference: StockCountReference,
			Notes:     fmt.Sprintf("conteo físico fila %d", row.Line),
			Actor:     actor,
		}
		if diff < 0 {
			in.Type = entity.MovementTypeAdjustment
			in.Quantity = -diff
		}
		mov, err := uc.ledger.ApplyInTx(ctx, tx, in)
		if err != nil {
			return err
		}
		out.MovementType, out.Quantity, out.MovementID = string(mov.Type), mov.Quantity, mov.ID
		return nil
	})
	if err != nil {
		return fail(err)
	}
	if out.MovementID == "" {
		out.Status = dto.StockCountUnchanged
	} else {
		out.Status = dto.StockCountApplied
	}
	return out
}
