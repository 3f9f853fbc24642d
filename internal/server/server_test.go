package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Farmab/outgoing/internal/auth"
	"github.com/Farmab/outgoing/internal/config"
	"github.com/Farmab/outgoing/internal/storage"
	"github.com/Farmab/outgoing/internal/store"
)

type testEnv struct {
	app      *fiber.App
	token    string
	dataPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		HTTPPort:         "8080",
		DataPath:         filepath.Join(t.TempDir(), "outgoing_data.csv"),
		JWTSecret:        strings.Repeat("s", 32),
		OperatorUsername: "abdulsalam",
		OperatorPassword: "2025",
		CORSOrigins:      "http://localhost:5173",
	}
	log := zerolog.New(nil).Level(zerolog.Disabled)

	operator, err := auth.NewOperator(cfg.OperatorUsername, cfg.OperatorPassword)
	require.NoError(t, err)

	adapter := storage.NewCSVAdapter(cfg.DataPath, log)
	records := store.NewRecordStore(log)
	records.Restore(adapter.Load())
	cat := store.NewCatalog(log)

	env := &testEnv{
		app:      New(cfg, operator, cat, records, adapter, log),
		dataPath: cfg.DataPath,
	}

	resp := env.request(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "abdulsalam",
		"password": "2025",
	}, http.StatusOK)
	env.token = resp["token"].(string)
	require.NotEmpty(t, env.token)
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request, wantStatus int) *http.Response {
	t.Helper()
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode)
	return resp
}

func (e *testEnv) request(t *testing.T, method, target string, body interface{}, wantStatus int) map[string]interface{} {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp := e.do(t, req, wantStatus)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else if len(raw) > 0 {
		out["_list"] = mustList(t, raw)
	}
	return out
}

func mustList(t *testing.T, raw []byte) []interface{} {
	t.Helper()
	var list []interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func recordBody(date, product, branch string, quantity, unitPrice float64) fiber.Map {
	return fiber.Map{
		"date":       date,
		"product":    product,
		"branch":     branch,
		"unit":       "kg",
		"quantity":   quantity,
		"unit_price": unitPrice,
		"currency":   "IQD",
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""
	env.request(t, http.MethodPost, "/api/auth/login", fiber.Map{"username": "abdulsalam", "password": "wrong"}, http.StatusUnauthorized)
	env.request(t, http.MethodPost, "/api/auth/login", fiber.Map{"username": "someone", "password": "2025"}, http.StatusUnauthorized)
}

func TestDataRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""
	env.request(t, http.MethodGet, "/api/records", nil, http.StatusUnauthorized)
}

func TestRecordLifecycle(t *testing.T) {
	env := newTestEnv(t)

	created := env.request(t, http.MethodPost, "/api/records",
		recordBody("2024-05-01", "Vanilla", "Branch A", 10, 2.5), http.StatusCreated)
	record := created["record"].(map[string]interface{})
	assert.Equal(t, "25", record["total_price"])
	assert.Nil(t, created["warning"])

	// every mutation flushes the data file
	contents, err := os.ReadFile(env.dataPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Vanilla")

	listed := env.request(t, http.MethodGet, "/api/records", nil, http.StatusOK)
	list := listed["_list"].([]interface{})
	require.Len(t, list, 1)
	id := int(record["id"].(float64))

	updated := env.request(t, http.MethodPut, fmt.Sprintf("/api/records/%d", id),
		recordBody("2024-05-02", "Chocolate", "Branch B", 3, 4), http.StatusOK)
	assert.Equal(t, "12", updated["record"].(map[string]interface{})["total_price"])

	summaryResp := env.request(t, http.MethodGet, "/api/records/summary", nil, http.StatusOK)
	rows := summaryResp["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "12", summaryResp["grand_total_display"])
	assert.Equal(t, "12", summaryResp["filtered_total_display"])

	env.request(t, http.MethodDelete, fmt.Sprintf("/api/records/%d", id), nil, http.StatusOK)
	listed = env.request(t, http.MethodGet, "/api/records", nil, http.StatusOK)
	assert.Empty(t, listed["_list"])
}

func TestRecordValidationRejected(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/records",
		recordBody("2024-05-01", "Vanilla", "Branch A", -1, 2), http.StatusBadRequest)
	assert.Equal(t, "quantity", resp["field"])

	resp = env.request(t, http.MethodPost, "/api/records",
		recordBody("01/05/2024", "Vanilla", "Branch A", 1, 2), http.StatusBadRequest)
	assert.Equal(t, "date", resp["field"])
}

func TestUpdateUnknownRecord(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, http.MethodPut, "/api/records/99",
		recordBody("2024-05-01", "Vanilla", "Branch A", 1, 1), http.StatusNotFound)
}

func TestSummaryFilters(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/records", recordBody("2024-05-01", "Vanilla", "Branch A", 10, 2), http.StatusCreated)
	env.request(t, http.MethodPost, "/api/records", recordBody("2024-06-01", "Chocolate", "Branch B", 5, 3), http.StatusCreated)

	resp := env.request(t, http.MethodGet, "/api/records/summary?branch=Branch+A", nil, http.StatusOK)
	require.Len(t, resp["rows"].([]interface{}), 1)
	assert.Equal(t, "20", resp["filtered_total_display"])
	assert.Equal(t, "35", resp["grand_total_display"], "grand total ignores the filter")

	resp = env.request(t, http.MethodGet, "/api/records/summary?from=2024-06-01&to=2024-06-30", nil, http.StatusOK)
	require.Len(t, resp["rows"].([]interface{}), 1)
	assert.Equal(t, "15", resp["filtered_total_display"])
}

func TestBranchRegistration(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/branches", fiber.Map{"name": "Branch A"}, http.StatusCreated)
	resp := env.request(t, http.MethodPost, "/api/branches", fiber.Map{"name": "Branch A"}, http.StatusConflict)
	assert.Contains(t, resp["error"], "already exists")
}

func TestDefaultUnitLookup(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/products", fiber.Map{"name": "Vanilla", "category": "ice cream", "unit": "kg"}, http.StatusCreated)

	resp := env.request(t, http.MethodGet, "/api/products/Vanilla/unit", nil, http.StatusOK)
	assert.Equal(t, "kg", resp["unit"])

	env.request(t, http.MethodGet, "/api/products/Pistachio/unit", nil, http.StatusNotFound)
}

func importRequest(t *testing.T, header []string, rows [][]string) *http.Request {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	xlsx, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "products.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportProducts(t *testing.T) {
	env := newTestEnv(t)

	req := importRequest(t, []string{"product", "default type", "unit"}, [][]string{
		{"Vanilla", "ice cream", "kg"},
		{"Chocolate", "ice cream", "carton"},
	})
	resp := env.do(t, req, http.StatusOK)
	resp.Body.Close()

	listed := env.request(t, http.MethodGet, "/api/products", nil, http.StatusOK)
	assert.Len(t, listed["_list"], 2)
}

func TestImportProductsSchemaError(t *testing.T) {
	env := newTestEnv(t)

	req := importRequest(t, []string{"Product", "Unit"}, [][]string{{"Vanilla", "kg"}})
	resp := env.do(t, req, http.StatusUnprocessableEntity)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, []interface{}{"default type"}, payload["missing"])

	listed := env.request(t, http.MethodGet, "/api/products", nil, http.StatusOK)
	assert.Empty(t, listed["_list"], "import is all-or-nothing")
}

func TestExports(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, http.MethodPost, "/api/records", recordBody("2024-05-01", "Vanilla", "Branch A", 10, 2.5), http.StatusCreated)

	req := httptest.NewRequest(http.MethodGet, "/api/export/records.xlsx", nil)
	resp := env.do(t, req, http.StatusOK)
	defer resp.Body.Close()
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ice_cream_outgoing.xlsx")

	req = httptest.NewRequest(http.MethodGet, "/api/export/summary.pdf", nil)
	resp = env.do(t, req, http.StatusOK)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
