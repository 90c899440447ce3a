package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func errorEngine() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery(), ErrorHandler())
	r.GET("/panico", func(c *gin.Context) { panic("boom") })
	r.GET("/falha", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection refused")) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestErrorHandler_OcultaDetalhes(t *testing.T) {
	r := errorEngine()
	for _, path := range []string{"/panico", "/falha"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"detail":"Erro interno do servidor"}`, w.Body.String(), path)
	}
}

func TestRequestID_PropagaOuGera(t *testing.T) {
	r := errorEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://painel.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://painel.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://painel.test", w.Header().Get("Access-Control-Allow-Origin"))
}
