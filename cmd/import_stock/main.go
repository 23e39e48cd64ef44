// import_stock aplica un conteo físico (.xlsx) al libro de stock.
//
//	go run ./cmd/import_stock -file conteo.xlsx -actor bodega-1
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/mini-erp/internal/bootstrap"
	"github.com/jhoicas/mini-erp/pkg/config"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

func main() {
	file := flag.String("file", "", "ruta del archivo .xlsx con columnas sku y cantidad")
	actor := flag.String("actor", "import-stock", "usuario que registra los movimientos")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "uso: import_stock -file conteo.xlsx [-actor usuario]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *file, *actor); err != nil {
		log.Error().Err(err).Str("file", *file).Msg("importación fallida")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, path, actor string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := bootstrap.NewServices(store, cfg, log).StockCount.Import(ctx, f, actor)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d filas con error", res.Failed)
	}
	return nil
}
