package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/auth"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/importer"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
	infraai "github.com/jhoicas/ventas-analytics/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/ventas-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlite"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/xlsx"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/ventas-analytics/internal/interfaces/http"
)

const (
	adminPassword  = "clave-admin"
	viewerPassword = "clave-viewer"
)

// newAPI arma la API completa sobre una base SQLite temporal.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ventas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	salesRepo := sqlite.NewSalesRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)
	settingsUC := usecase.NewSettingsUseCase(sqlite.NewSettingRepository(db))
	dashboardUC := appanalytics.NewDashboardUseCase(salesRepo, customerRepo)

	hash := func(p string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.MinCost)
		require.NoError(t, err)
		return string(h)
	}
	authUC := auth.NewAuthUseCase(
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		auth.Credentials{Username: "admin", PasswordHash: hash(adminPassword), Role: auth.RoleAdmin},
		auth.Credentials{Username: "viewer", PasswordHash: hash(viewerPassword), Role: auth.RoleViewer},
	)

	app := fiber.New()
	app.Get("/health", apphttp.Health("ventas-analytics"))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: authUC,
		Importer: importer.New(xlsx.NewGridLoader(), customerRepo, salesRepo,
			importer.Options{CustomerHeaderRow: -1}, nil),
		DashboardUC: dashboardUC,
		SettingsUC:  settingsUC,
		AIUC: usecase.NewAIUseCase(dashboardUC, settingsUC, infraai.NewFactory("m", "m"), usecase.AIConfig{
			DefaultProvider: usecase.ProviderGemini,
			Timeout:         time.Second,
		}),
		ReportUC:    usecase.NewReportUseCase(dashboardUC),
		PDF:         infrapdf.NewMarotoPDFGenerator(),
		XML:         xmlexport.NewExporter(),
		MaxUploadMB: 5,
		JWTSecret:   testJWTSecret,
	})
	return app
}

func login(t *testing.T, app *fiber.App, user, pass string) string {
	t.Helper()
	body, _ := json.Marshal(dto.TokenRequest{Username: user, Password: pass})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return "Bearer " + out.Token
}

func call(t *testing.T, app *fiber.App, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return buf.Bytes()
}

// uploadBody arma un multipart con un campo "files" por archivo.
func uploadBody(t *testing.T, files map[string][]byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func importFixtures(t *testing.T, app *fiber.App, token string) dto.ImportResponse {
	t.Helper()
	sales := workbook(t, [][]interface{}{
		{"Kundnr.", "Kundnamn"},
		{"1007", nil},
		{nil, 42, "Silent Socks wool", 3, nil, nil, 15, nil, 120},
		{nil, "Totalt", nil, 3},
		{"9001", nil},
		{nil, "E00043", "Silent Socks grey", 1, nil, nil, 5, nil, 40},
	})
	customers := workbook(t, [][]interface{}{
		{"Kundlista"}, {"Utskriven 2025-04-01"}, {"-"}, {"-"}, {"-"},
		{"Kundnummer", "Namn", "Land", "Kundgrupp"},
		{"1007", "Alfa AB", "SE", "Retail"},
	})
	body, ct := uploadBody(t, map[string][]byte{
		"Statistik Silent socks 250331.xlsx": sales,
		"Kundlista 2025.xlsx":                customers,
		"roto.xlsx":                          []byte("no es un zip"),
	})
	resp := call(t, app, http.MethodPost, "/api/imports", token, body, ct)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestHealth_Responde200(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestToken_CredencialesInvalidas(t *testing.T) {
	app := newAPI(t)
	body, _ := json.Marshal(dto.TokenRequest{Username: "admin", Password: "mala"})
	resp := call(t, app, http.MethodPost, "/api/auth/token", "", bytes.NewReader(body), "application/json")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestImportYTablero_FlujoCompleto(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin", adminPassword)

	imp := importFixtures(t, app, admin)
	assert.Equal(t, 2, imp.Succeeded, "ventas y clientes deben importarse")
	assert.Equal(t, 1, imp.Failed, "el archivo roto se reporta sin abortar el lote")

	resp := call(t, app, http.MethodGet, "/api/sales", admin, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.SalesListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, 2, list.Page.Total)

	byCustomer := map[string]dto.SalesRowDTO{}
	for _, it := range list.Items {
		byCustomer[it.CustomerNumber] = it
	}
	alfa := byCustomer["1007"]
	require.NotNil(t, alfa.CustomerName, "la venta debe unirse con el registro de clientes")
	assert.Equal(t, "Alfa AB", *alfa.CustomerName)
	assert.Equal(t, "2025-03-31", alfa.Date)
	assert.Nil(t, byCustomer["9001"].CustomerName, "cliente sin registro queda sin nombre")
	assert.Equal(t, "E00043", byCustomer["9001"].ArticleID)
	assert.Equal(t, "E00042", alfa.ArticleID)

	resp2 := call(t, app, http.MethodGet, "/api/sales/summary?customer_type=business", admin, nil, "")
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	var sum dto.SalesSummaryDTO
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&sum))
	assert.Equal(t, 1, sum.KPI.Records)
	assert.Equal(t, "120", sum.KPI.TotalSales.String())

	resp3 := call(t, app, http.MethodGet, "/api/customers/count", admin, nil, "")
	defer resp3.Body.Close()
	var cnt dto.CustomerCountResponse
	require.NoError(t, json.NewDecoder(resp3.Body).Decode(&cnt))
	assert.Equal(t, 1, cnt.Count)
}

func TestSales_FiltroFechaInvalida(t *testing.T) {
	app := newAPI(t)
	viewer := login(t, app, "viewer", viewerPassword)
	resp := call(t, app, http.MethodGet, "/api/sales?from=31-03-2025", viewer, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestViewer_NoPuedeImportarNiBorrar(t *testing.T) {
	app := newAPI(t)
	viewer := login(t, app, "viewer", viewerPassword)

	resp := call(t, app, http.MethodDelete, "/api/data", viewer, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, ct := uploadBody(t, map[string][]byte{"x.xlsx": []byte("x")})
	resp2 := call(t, app, http.MethodPost, "/api/imports", viewer, body, ct)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)

	resp3 := call(t, app, http.MethodGet, "/api/settings/gemini_api_key", viewer, nil, "")
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp3.StatusCode)
}

func TestClearAll_VaciaVentasYClientes(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin", adminPassword)
	importFixtures(t, app, admin)

	resp := call(t, app, http.MethodDelete, "/api/data", admin, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp2 := call(t, app, http.MethodGet, "/api/sales", admin, nil, "")
	defer resp2.Body.Close()
	var list dto.SalesListResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&list))
	assert.Equal(t, 0, list.Page.Total)
}

func TestImport_SinArchivos(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin", adminPassword)
	body, ct := uploadBody(t, map[string][]byte{})
	resp := call(t, app, http.MethodPost, "/api/imports", admin, body, ct)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettings_GuardaYEnmascara(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin", adminPassword)

	resp := call(t, app, http.MethodPut, "/api/settings/gemini_api_key", admin,
		strings.NewReader(`{"value":"AIzaSyABCDEFGHIJ1234"}`), "application/json")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var s dto.SettingDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.True(t, s.Masked)
	assert.Equal(t, "AIza...1234", s.Value)

	resp2 := call(t, app, http.MethodDelete, "/api/settings/gemini_api_key", admin, nil, "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp2.StatusCode)

	resp3 := call(t, app, http.MethodGet, "/api/settings/gemini_api_key", admin, nil, "")
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestAISummary_SinKeyRetorna503(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin", adminPassword)
	importFixtures(t, app, admin)

	resp := call(t, app, http.MethodPost, "/api/ai/summary", admin, strings.NewReader(`{}`), "application/json")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "AI_UNAVAILABLE")
}

func TestAISummary_SinDatosRetorna404(t *testing.T) {
	app := newAPI(t)
	viewer := login(t, app, "viewer", viewerPassword)
	resp := call(t, app, http.MethodPost, "/api/ai/summary", viewer, nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReports_PDFyXML(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin", adminPassword)
	importFixtures(t, app, admin)

	resp := call(t, app, http.MethodGet, "/api/reports/sales.xml?country=SE", admin, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xml")
	xmlBody, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(xmlBody), "Country: SE")

	resp2 := call(t, app, http.MethodGet, "/api/reports/sales.pdf", admin, nil, "")
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	pdfBody, _ := io.ReadAll(resp2.Body)
	assert.True(t, bytes.HasPrefix(pdfBody, []byte("%PDF")))
}
