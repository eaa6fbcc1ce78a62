package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func TestReadBodyFieldsRestoresBodyForBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := []byte(`{"status": "confirmed", "notes": "bring sunscreen"}`)
	req := httptest.NewRequest("PATCH", "/api/bookings/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	fields, err := readBodyFields(c)
	if err != nil {
		t.Fatalf("readBodyFields returned error: %v", err)
	}
	if _, ok := fields["status"]; !ok {
		t.Fatal("expected status key to be present")
	}
	if _, ok := fields["notes"]; !ok {
		t.Fatal("expected notes key to be present")
	}

	var req2 BookingUpdateRequest
	if err := c.ShouldBindBodyWith(&req2, binding.JSON); err != nil {
		t.Fatalf("bind after readBodyFields failed: %v", err)
	}
	if req2.Status == nil || *req2.Status != "confirmed" {
		t.Fatalf("expected status=confirmed after rebind, got %+v", req2)
	}
}

func TestReadBodyFieldsRejectsEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest("PATCH", "/api/bookings/1", bytes.NewReader(nil))
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	if _, err := readBodyFields(c); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("FirstName"); got != "firstName" {
		t.Fatalf("expected firstName, got %s", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
