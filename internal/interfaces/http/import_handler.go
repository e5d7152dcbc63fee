package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/importer"
)

// ImportHandler recibe planillas por multipart y las importa en lote.
type ImportHandler struct {
	im       *importer.Importer
	maxBytes int64
}

// NewImportHandler construye el handler. maxMB <= 0 desactiva el límite por archivo.
func NewImportHandler(im *importer.Importer, maxMB int) *ImportHandler {
	return &ImportHandler{im: im, maxBytes: int64(maxMB) << 20}
}

// Upload godoc
// @Summary      Importar planillas de ventas o clientes
// @Description  Campo multipart "files" (uno o varios). Cada archivo se reporta por separado;
//               un archivo fallido no aborta el lote.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se esperaba multipart/form-data"})
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo files requerido"})
	}

	resp := &dto.ImportResponse{Files: make([]dto.ImportFileResult, 0, len(files))}
	for _, fh := range files {
		var res dto.ImportFileResult
		if h.maxBytes > 0 && fh.Size > h.maxBytes {
			res = dto.ImportFileResult{File: fh.Filename, Error: fmt.Sprintf("archivo supera %d MB", h.maxBytes>>20)}
		} else if data, rerr := readPart(fh); rerr != nil {
			res = dto.ImportFileResult{File: fh.Filename, Error: rerr.Error()}
		} else {
			res = h.im.ImportFile(c.UserContext(), importer.BytesSource(fh.Filename, data))
		}
		if res.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Files = append(resp.Files, res)
	}
	return c.JSON(resp)
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
