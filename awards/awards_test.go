package awards

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestGetAwardRejectsInvalidID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/awards/not-a-hex-id", nil)
	w := httptest.NewRecorder()

	GetAward(w, r, httprouter.Params{{Key: "id", Value: "not-a-hex-id"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
