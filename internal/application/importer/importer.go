// Package importer orquesta la importación por lotes: cada archivo se clasifica por
// nombre (ventas o registro de clientes), se parsea y se persiste antes del siguiente.
// Un archivo que falla queda registrado en su resultado sin afectar a los demás.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/domain/salesfile"
	"github.com/jhoicas/ventas-analytics/pkg/logger"
)

// GridLoader convierte los bytes de una planilla en una cuadrícula.
type GridLoader interface {
	Load(r io.Reader, filename string) (*salesfile.Grid, error)
}

// Options parámetros de parseo. Marcadores vacíos usan los predeterminados;
// CustomerHeaderRow es base 0 y un valor negativo usa salesfile.DefaultCustomerHeaderRow.
type Options struct {
	ProductMarker     string
	NameMarker        string
	CustomerHeaderRow int
	Now               func() time.Time
}

// Source un archivo a importar. Open se llama una sola vez, justo antes de procesarlo.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource fuente respaldada por un archivo en disco.
func FileSource(path string) Source {
	return Source{Name: path, Open: func() (io.ReadCloser, error) { return os.Open(path) }}
}

// BytesSource fuente en memoria (p. ej. una parte multipart ya leída).
func BytesSource(name string, data []byte) Source {
	return Source{Name: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

// Importer caso de uso de importación.
type Importer struct {
	loader    GridLoader
	customers repository.CustomerRepository
	sales     repository.SalesRepository
	salesP    *salesfile.SalesParser
	custP     *salesfile.CustomerParser
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

// New construye el importador.
func New(
	loader GridLoader,
	customers repository.CustomerRepository,
	sales repository.SalesRepository,
	opts Options,
	log *logger.Logger,
) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	markers := salesfile.DefaultMarkers
	if opts.NameMarker != "" {
		markers.ArticleName = opts.NameMarker
	}
	return &Importer{
		loader:    loader,
		customers: customers,
		sales:     sales,
		salesP: salesfile.NewSalesParser(salesfile.SalesParserOptions{
			Markers:       markers,
			ProductMarker: opts.ProductMarker,
			Now:           now,
		}),
		custP: salesfile.NewCustomerParser(opts.CustomerHeaderRow),
		log:   log.Component("importer"),
		now:   now,
		newID: func() string { return uuid.NewString() },
	}
}

// ImportFiles procesa las fuentes en orden, una por una.
func (im *Importer) ImportFiles(ctx context.Context, sources []Source) *dto.ImportResponse {
	resp := &dto.ImportResponse{Files: make([]dto.ImportFileResult, 0, len(sources))}
	for _, src := range sources {
		res := im.ImportFile(ctx, src)
		if res.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Files = append(resp.Files, res)
	}
	return resp
}

// ImportFile procesa una sola fuente y devuelve su resultado; nunca entra en pánico por datos.
func (im *Importer) ImportFile(ctx context.Context, src Source) dto.ImportFileResult {
	name := filepath.Base(src.Name)
	kind := salesfile.DetectKind(name)
	res := dto.ImportFileResult{File: name, Kind: string(kind), ImportID: im.newID()}

	err := ctx.Err()
	if err == nil {
		switch kind {
		case salesfile.KindCustomers:
			err = im.importCustomers(ctx, src, name, &res)
		default:
			err = im.importSales(ctx, src, name, &res)
		}
	}

	ev := im.log.Info()
	if err != nil {
		res.Error = err.Error()
		ev = im.log.Error().Err(err)
	} else {
		res.OK = true
	}
	ev.Str("file", name).
		Str("kind", res.Kind).
		Str("import_id", res.ImportID).
		Int("records", res.Records).
		Int("customers", res.Customers).
		Interface("skipped", res.Skipped).
		Msg("archivo procesado")
	return res
}

func (im *Importer) load(src Source, name string) (*salesfile.Grid, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, &domain.UnreadableFileError{File: name, Err: err}
	}
	defer rc.Close()
	return im.loader.Load(rc, name)
}

func (im *Importer) importSales(ctx context.Context, src Source, name string, res *dto.ImportFileResult) error {
	grid, err := im.load(src, name)
	if err != nil {
		return err
	}
	parsed := im.salesP.Parse(grid, name)
	res.Period = parsed.Period.Format("2006-01-02")
	res.Skipped = skippedCounts(parsed)
	if !parsed.HeaderFound {
		im.log.Warn().Str("file", name).Msg("no se encontró la cabecera Kundnr.; archivo sin registros")
	}

	importedAt := im.now().UTC()
	for _, rec := range parsed.Records {
		rec.ImportID = res.ImportID
		rec.ImportedAt = importedAt
	}
	if err := im.sales.Append(ctx, parsed.Records, name); err != nil {
		return fmt.Errorf("guardar ventas de %s: %w", name, err)
	}
	res.Records = len(parsed.Records)
	return nil
}

func (im *Importer) importCustomers(ctx context.Context, src Source, name string, res *dto.ImportFileResult) error {
	grid, err := im.load(src, name)
	if err != nil {
		if errors.Is(err, domain.ErrUnreadableFile) {
			return &domain.MalformedCustomerFileError{File: name, Reason: "contenedor ilegible", Err: err}
		}
		return err
	}
	customers, err := im.custP.Parse(grid, name)
	if err != nil {
		return err
	}
	if err := im.customers.Upsert(ctx, customers); err != nil {
		return fmt.Errorf("guardar clientes de %s: %w", name, err)
	}
	res.Customers = len(customers)
	return nil
}

func skippedCounts(r *salesfile.SalesResult) map[string]int {
	counts := r.Skipped()
	if len(counts) == 0 {
		return nil
	}
	out := make(map[string]int, len(counts))
	for reason, n := range counts {
		out[string(reason)] = n
	}
	return out
}
