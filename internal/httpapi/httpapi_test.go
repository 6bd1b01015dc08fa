package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jask/fleetledger/internal/config"
	"github.com/jask/fleetledger/internal/database"
	"github.com/jask/fleetledger/internal/database/repository"
	"github.com/jask/fleetledger/internal/ledger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*gin.Engine, *ledger.Ledger) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	dbCfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "api.db")}
	require.NoError(t, database.RunMigrations(dbCfg))
	db, dialect, err := database.Connect(ctx, dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db, dialect))

	l := ledger.New(repository.NewTransactionRepo(db, dialect), repository.NewVehicleRepo(db, dialect),
		ledger.Options{Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, l.LoadReference(ctx))
	require.NoError(t, l.Load(ctx))

	cfg := config.Config{Export: config.ExportConfig{Layout: "split"}}
	return NewRouter(l, cfg), l
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type viewBody struct {
	Rows []struct {
		ID          int64   `json:"id"`
		Amount      string  `json:"amount"`
		Type        string  `json:"type"`
		Description *string `json:"description"`
		Vehicle     *int64  `json:"vehicle"`
		State       string  `json:"state"`
	} `json:"rows"`
	Totals  map[string]string `json:"totals"`
	Filters map[string]string `json:"filters"`
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) viewBody {
	t.Helper()
	var v viewBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTransactionLifecycle(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/api/transactions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var added struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	require.Equal(t, "Not Yet Paid", added.Status)

	path := "/api/transactions/" + itoa(added.ID)
	w = do(t, r, http.MethodPatch, path, map[string]string{"field": "amount", "value": "100"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/transactions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var second struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	path2 := "/api/transactions/" + itoa(second.ID)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPatch, path2, map[string]string{"field": "amount", "value": "40"}).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPatch, path2, map[string]string{"field": "type", "value": "Expense"}).Code)

	v := decodeView(t, do(t, r, http.MethodGet, "/api/transactions", nil))
	require.Len(t, v.Rows, 2)
	require.Equal(t, second.ID, v.Rows[0].ID)
	require.Equal(t, "synced", v.Rows[0].State)
	require.Equal(t, "100", v.Totals["income"])
	require.Equal(t, "40", v.Totals["expense"])
	require.Equal(t, "60", v.Totals["balance"])

	w = do(t, r, http.MethodDelete, path2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodDelete, path2, nil)
	require.Equal(t, http.StatusOK, w.Code, "deleting twice is fine")

	v = decodeView(t, do(t, r, http.MethodPost, "/api/refresh", nil))
	require.Len(t, v.Rows, 1)
}

func TestEditErrors(t *testing.T) {
	r, l := newTestServer(t)
	added, err := l.Add(context.Background())
	require.NoError(t, err)
	path := "/api/transactions/" + itoa(added.ID)

	w := do(t, r, http.MethodPatch, "/api/transactions/999", map[string]string{"field": "amount", "value": "1"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPatch, path, map[string]string{"field": "colour", "value": "red"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, path, map[string]string{"field": "status", "value": "Paid"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, path, map[string]string{"field": "amount"})
	require.Equal(t, http.StatusBadRequest, w.Code, "value is required")

	w = do(t, r, http.MethodPatch, "/api/transactions/abc", map[string]string{"field": "amount", "value": "1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// the database refuses an unknown vehicle
	w = do(t, r, http.MethodPatch, path, map[string]string{"field": "vehicle", "value": "77"})
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), "error")
	row, _ := l.Row(added.ID)
	require.Equal(t, int64(1), *row.Vehicle)
}

func TestFilters(t *testing.T) {
	r, l := newTestServer(t)
	ctx := context.Background()
	a, err := l.Add(ctx)
	require.NoError(t, err)
	_, err = l.Add(ctx)
	require.NoError(t, err)
	require.NoError(t, l.Edit(ctx, a.ID, ledger.FieldDescription, "Diesel refill"))

	v := decodeView(t, do(t, r, http.MethodPut, "/api/filters/description", map[string]string{"value": "diesel"}))
	require.Len(t, v.Rows, 1)
	require.Equal(t, "diesel", v.Filters["description"])

	v = decodeView(t, do(t, r, http.MethodPut, "/api/filters/amount", map[string]string{"value": "abc"}))
	require.Len(t, v.Rows, 1, "garbage amount leaves the column unconstrained")
	require.Equal(t, "", v.Filters["amount"])

	w := do(t, r, http.MethodPut, "/api/filters/status", map[string]string{"value": "Pending"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	v = decodeView(t, do(t, r, http.MethodDelete, "/api/filters", nil))
	require.Len(t, v.Rows, 2)
}

func TestReferenceAndExport(t *testing.T) {
	r, l := newTestServer(t)
	_, err := l.Add(context.Background())
	require.NoError(t, err)

	w := do(t, r, http.MethodGet, "/api/reference", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ref struct {
		Vehicles []ledger.VehicleOption `json:"vehicles"`
		Types    []string               `json:"types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ref))
	require.Len(t, ref.Vehicles, 2)
	require.Equal(t, []string{"Income", "Expense"}, ref.Types)

	w = do(t, r, http.MethodGet, "/api/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "budget_template.csv")
	require.Equal(t, "Date,Description,Category,Income,Expense\n,\"\",\"Income\",0,", w.Body.String())

	w = do(t, r, http.MethodGet, "/api/export.csv?layout=legacy", nil)
	require.Equal(t, "Date,Description,Category,Income,Expense\n,\"\",\"Income\",0,Income", w.Body.String())

	w = do(t, r, http.MethodGet, "/api/export.csv?layout=wide", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
