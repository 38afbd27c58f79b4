package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-manager/internal/mocks"
	"github.com/Raymond9734/customer-manager/internal/models"
	"github.com/Raymond9734/customer-manager/internal/queue"
	"github.com/Raymond9734/customer-manager/internal/service"
	"github.com/Raymond9734/customer-manager/internal/tracing"
)

type stubDatabase struct {
	err error
}

func (d stubDatabase) Health(context.Context) error {
	return d.err
}

// memoryRepository is an in-memory CustomerRepository used to drive the
// handler and service together.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]models.CustomerRecord
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: map[int64]models.CustomerRecord{}}
}

func (m *memoryRepository) List(context.Context) ([]*models.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*models.CustomerRecord{}
	for id := int64(1); id <= m.nextID; id++ {
		if r, ok := m.records[id]; ok {
			out = append(out, &r)
		}
	}
	return out, nil
}

func (m *memoryRepository) GetByID(_ context.Context, id int64) (*models.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg("customer not found")
	}
	return &r, nil
}

func (m *memoryRepository) Create(_ context.Context, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	r := *record
	r.ID = m.nextID
	m.records[r.ID] = r
	return &r, nil
}

func (m *memoryRepository) Update(_ context.Context, id int64, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return nil, models.ErrNotFoundWithMsg("customer not found")
	}
	r := *record
	r.ID = id
	m.records[id] = r
	return &r, nil
}

func (m *memoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return models.ErrNotFoundWithMsg("customer not found")
	}
	delete(m.records, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(svc service.CustomerService) http.Handler {
	return NewRouter(RouterConfig{
		CustomerService: svc,
		DB:              stubDatabase{},
		Queue:           queue.NewNoopClient(discardLogger()),
		Tracer:          tracing.NewNoopTracer(),
		AllowedOrigins:  []string{"http://localhost:3000"},
		Logger:          discardLogger(),
	})
}

func newInMemoryRouter() http.Handler {
	logger := discardLogger()
	svc := service.NewCustomerService(newMemoryRepository(), queue.NewNoopClient(logger), tracing.NewNoopTracer(), logger)
	return newTestRouter(svc)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

const anaJSON = `{"firstName":"Ana","lastName":"Popescu","address":"1 Main St","email":"ana@example.com","mobileNumber":"555-1111"}`

func TestCustomerLifecycle(t *testing.T) {
	router := newInMemoryRouter()

	rec := do(t, router, http.MethodPost, "/api/v1/customers", anaJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.CustomerRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "/api/v1/customers/1", rec.Header().Get("Location"))

	rec = do(t, router, http.MethodGet, rec.Header().Get("Location"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.CustomerRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created, fetched)
	assert.Equal(t, "Ana", fetched.FirstName)
	assert.Equal(t, "Popescu", fetched.LastName)
	assert.Equal(t, "555-1111", *fetched.MobileNumber)
	assert.Nil(t, fetched.HomeNumber)

	rec = do(t, router, http.MethodPut, "/api/v1/customers/1",
		`{"id":1,"firstName":"Ana","lastName":"Popescu","address":"2 Side St","email":"ana@example.com","homeNumber":"555-0000"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.CustomerRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "2 Side St", listed[0].Address)
	assert.Nil(t, listed[0].MobileNumber)

	rec = do(t, router, http.MethodDelete, "/api/v1/customers/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/customers/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.CodeNotFound, decodeError(t, rec).Code)
}

func TestListCustomers_EmptyIsArray(t *testing.T) {
	router := newInMemoryRouter()

	rec := do(t, router, http.MethodGet, "/api/v1/customers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateCustomer_ValidationErrors(t *testing.T) {
	router := newInMemoryRouter()

	rec := do(t, router, http.MethodPost, "/api/v1/customers",
		`{"firstName":"Ana9","lastName":"Popescu","address":"1 Main St","email":"ana@example.com","homeNumber":"","workNumber":"","mobileNumber":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, models.CodeInvalidInput, detail.Code)
	require.Len(t, detail.Violations, 2)
	assert.Equal(t, models.Violation{Field: "firstName", Message: "Names should only contain letters."}, detail.Violations[0])
	assert.Equal(t, models.Violation{Field: "contactNumbers", Message: "At least one contact number must be provided."}, detail.Violations[1])

	rec = do(t, router, http.MethodGet, "/api/v1/customers", "")
	assert.JSONEq(t, `[]`, rec.Body.String(), "nothing may be stored after a rejected create")
}

func TestUpdateCustomer_Errors(t *testing.T) {
	router := newInMemoryRouter()
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/customers", anaJSON).Code)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "id mismatch",
			path:       "/api/v1/customers/1",
			body:       `{"id":2,"firstName":"Ana","lastName":"Popescu","address":"1 Main St","email":"ana@example.com","mobileNumber":"1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeIDMismatch,
		},
		{
			name:       "omitted body id",
			path:       "/api/v1/customers/1",
			body:       anaJSON,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeIDMismatch,
		},
		{
			name:       "missing customer",
			path:       "/api/v1/customers/99",
			body:       `{"id":99,"firstName":"Ana","lastName":"Popescu","address":"1 Main St","email":"ana@example.com","mobileNumber":"1"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   models.CodeNotFound,
		},
		{
			name:       "invalid json",
			path:       "/api/v1/customers/1",
			body:       `{"firstName":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_JSON",
		},
		{
			name:       "invalid id",
			path:       "/api/v1/customers/abc",
			body:       anaJSON,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ID",
		},
		{
			name:       "validation failure",
			path:       "/api/v1/customers/1",
			body:       `{"id":1,"firstName":"Ana","lastName":"Popescu","address":"1 Main St","email":"nope","mobileNumber":"1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestDeleteCustomer_Missing(t *testing.T) {
	router := newInMemoryRouter()

	rec := do(t, router, http.MethodDelete, "/api/v1/customers/5", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCustomer_InvalidID(t *testing.T) {
	router := newInMemoryRouter()

	for _, path := range []string{"/api/v1/customers/0", "/api/v1/customers/-4", "/api/v1/customers/x"} {
		rec := do(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestHandleError_InfrastructureFailureIsHidden(t *testing.T) {
	svc := mocks.NewCustomerService(t)
	svc.On("List", mock.Anything).Return(nil, errors.New("pq: password authentication failed")).Once()

	rec := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/customers", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", detail.Code)
	assert.NotContains(t, detail.Message, "password")
}

func TestHandleError_Conflict(t *testing.T) {
	svc := mocks.NewCustomerService(t)
	svc.On("Create", mock.Anything, mock.Anything).
		Return(nil, models.ErrConflictWithMsg("failed to create customer: duplicate key")).
		Once()

	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/v1/customers", anaJSON)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	svc := mocks.NewCustomerService(t)
	svc.On("GetByID", mock.Anything, int64(1)).Run(func(mock.Arguments) { panic("boom") }).Once()

	rec := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/customers/1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newInMemoryRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	logger := discardLogger()

	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(stubDatabase{}, queue.NewNoopClient(logger), logger)
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(stubDatabase{err: errors.New("down")}, nil, logger)
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "unhealthy", resp.Services["database"])
		assert.Equal(t, "not_configured", resp.Services["queue"])
	})
}

func TestUIHandler(t *testing.T) {
	router := newInMemoryRouter()

	rec := do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/app.js")

	rec = do(t, router, http.MethodGet, "/static/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/customers")
}
