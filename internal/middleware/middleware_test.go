package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Session), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTraceID_Generates(t *testing.T) {
	r := gin.New()
	r.Use(TraceID())
	var seen string
	r.GET("/", func(c *gin.Context) { seen = GetTraceID(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(TraceIDHeader))
}

func TestTraceID_ReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(TraceID())
	r.GET("/", func(c *gin.Context) {})

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(TraceIDHeader))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(TraceID(), RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "GET", record["method"])
	assert.Equal(t, "/missing", record["path"])
	assert.Equal(t, float64(404), record["status"])
	assert.Equal(t, w.Header().Get(TraceIDHeader), record["trace_id"])
}

func TestSession(t *testing.T) {
	auth := &MockAuthenticator{}
	jane := domain.Session{User: &domain.User{Email: "jane@x.com", Name: "jane"}, TokenID: "id"}
	auth.On("Authenticate", mock.Anything, "good").Return(jane, nil)
	auth.On("Authenticate", mock.Anything, "bad").Return(domain.AnonymousSession(), domain.ErrUnauthenticated)

	r := gin.New()
	r.Use(Session(auth))
	var got domain.Session
	r.GET("/", func(c *gin.Context) { got = GetSession(c) })

	tests := []struct {
		header string
		authed bool
	}{
		{header: "Bearer good", authed: true},
		{header: "Bearer bad", authed: false},
		{header: "Basic good", authed: false},
		{header: "", authed: false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tt.authed, got.IsAuthenticated(), tt.header)
	}
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := CORS([]string{"http://localhost:5173"})(ok)

	req := httptest.NewRequest(http.MethodGet, "/destinations", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/destinations", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
