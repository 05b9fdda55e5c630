package search

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// invalid queries must be rejected before the engine is touched, so the
// handler runs against a nil engine here
func performClarify(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/search/clarify", ClarifyHandler(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestClarifyRejectsMissingQuery(t *testing.T) {
	w := performClarify(t, "/search/clarify")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestClarifyRejectsWhitespaceQuery(t *testing.T) {
	w := performClarify(t, "/search/clarify?query=%20%20%20")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for whitespace-only query, got %d", w.Code)
	}
}

func TestClarifyRejectsOverlongQuery(t *testing.T) {
	w := performClarify(t, "/search/clarify?query="+strings.Repeat("a", 101))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for overlong query, got %d", w.Code)
	}
}
