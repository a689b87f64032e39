package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"eduscale-server-go/internal/apikey"
	"eduscale-server-go/internal/middleware"
	"eduscale-server-go/internal/registry"
	"eduscale-server-go/pkg/model"
)

const testAdminToken = "test-admin-token"

func newTestServer(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sdb := sqlx.NewDb(db, "sqlmock")

	regions := NewRegionHandler(registry.NewRegionService(sdb))
	schools := NewSchoolHandler(registry.NewSchoolService(sdb))
	keys := NewAPIKeyHandler(apikey.NewAPIKeyService(sdb))

	router := SetupRouter(regions, schools, keys, RouterOptions{
		AdminAuth: middleware.AdminAuth(testAdminToken),
	})
	return router, mock
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRegion_ReturnsEmptyOK(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO region \(id, name, legal_address, main_contact\)`).
		WithArgs("Praha", "Mariánské nám. 2", "contact@praha.eu").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := doRequest(t, router, http.MethodPost, "/regions",
		`{"name":"Praha","legal_address":"Mariánské nám. 2","main_contact":"contact@praha.eu"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateRegion_MissingFieldsInsertEmptyStrings(t *testing.T) {
	router, mock := newTestServer(t)

	// No validation layer: an absent name binds as "".
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO region \(id, name, legal_address\)`).
		WithArgs("", "Mariánské nám. 2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := doRequest(t, router, http.MethodPost, "/regions",
		`{"legal_address":"Mariánské nám. 2"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateRegion_StorageFailureRollsBackAndReturns500(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO region`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	rec := doRequest(t, router, http.MethodPost, "/regions",
		`{"name":"Praha","legal_address":"x"}`, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetRegions_EmptyTableReturnsEmptyArray(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectQuery(`FROM region`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "legal_address", "main_contact"}))

	rec := doRequest(t, router, http.MethodGet, "/regions", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestGetRegion_RoundTripFields(t *testing.T) {
	router, mock := newTestServer(t)

	id := "6f1c8f0a-0001-4000-8000-000000000001"
	mock.ExpectQuery(`FROM region\s+WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "legal_address", "main_contact"}).
			AddRow(id, "Praha", "Mariánské nám. 2", ""))

	rec := doRequest(t, router, http.MethodGet, "/regions/"+id, "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var region model.Region
	if err := json.Unmarshal(rec.Body.Bytes(), &region); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if region.ID != id || region.Name != "Praha" {
		t.Errorf("unexpected region %+v", region)
	}

	// main_contact is present even when empty.
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if _, ok := raw["main_contact"]; !ok {
		t.Error("main_contact missing from response object")
	}
}

func TestGetRegion_NotFoundReturns404EmptyBody(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectQuery(`FROM region\s+WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "legal_address", "main_contact"}))

	rec := doRequest(t, router, http.MethodGet, "/regions/nope", "", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestGetRegions_StorageFailureReturns500(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectQuery(`FROM region`).
		WillReturnError(errors.New("connection refused"))

	rec := doRequest(t, router, http.MethodGet, "/regions", "", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestCreateRegion_ConcurrentCreatesAllSucceed(t *testing.T) {
	router, mock := newTestServer(t)
	mock.MatchExpectationsInOrder(false)

	const n = 5
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO region`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := doRequest(t, router, http.MethodPost, "/regions",
				fmt.Sprintf(`{"name":"Region %d","legal_address":"Address %d"}`, i, i), nil)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d: status = %d, want 200", i, code)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
