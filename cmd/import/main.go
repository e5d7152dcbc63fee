// Comando import: importa planillas desde disco sin levantar el servidor HTTP.
//
//	import [-reset] archivo1.xlsx [archivo2.xlsx ...]
//
// Imprime el resultado del lote en JSON y termina con código 1 si algún archivo falló.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/ventas-analytics/internal/application/importer"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/store"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/xlsx"
	"github.com/jhoicas/ventas-analytics/pkg/config"
	"github.com/jhoicas/ventas-analytics/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "borrar ventas y clientes antes de importar")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "uso: %s [-reset] archivo.xlsx [...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	if *reset {
		if err := st.Sales.ClearAll(ctx); err != nil {
			log.Fatal().Err(err).Msg("borrar datos")
		}
		log.Info().Msg("datos borrados")
	}

	imp := importer.New(xlsx.NewGridLoader(), st.Customers, st.Sales, importer.Options{
		ProductMarker:     cfg.Import.ProductMarker,
		NameMarker:        cfg.Import.NameMarker,
		CustomerHeaderRow: cfg.Import.CustomerHeaderRow,
	}, log)

	sources := make([]importer.Source, 0, flag.NArg())
	for _, path := range flag.Args() {
		sources = append(sources, importer.FileSource(path))
	}
	resp := imp.ImportFiles(ctx, sources)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Error().Err(err).Msg("escribir resultado")
	}
	if resp.Failed > 0 {
		st.Close()
		os.Exit(1)
	}
}
