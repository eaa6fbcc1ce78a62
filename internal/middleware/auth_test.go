package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cleopatra/internal/models"
)

func newAuthTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func TestAuthGuardRejectsAnonymous(t *testing.T) {
	c, w := newAuthTestContext(t)

	RequireAuth()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardAllowsAuthenticated(t *testing.T) {
	c, _ := newAuthTestContext(t)
	c.Set("userId", primitive.NewObjectID())
	c.Set("userRole", models.RoleCustomer)

	RequireAuth()(c)

	assert.False(t, c.IsAborted())
}

func TestAuthGuardRejectsInsufficientRole(t *testing.T) {
	c, w := newAuthTestContext(t)
	c.Set("userId", primitive.NewObjectID())
	c.Set("userRole", models.RoleCustomer)

	RequireAdmin()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireStaffAcceptsStaffAndAdmin(t *testing.T) {
	for _, role := range []string{models.RoleStaff, models.RoleAdmin} {
		c, _ := newAuthTestContext(t)
		c.Set("userId", primitive.NewObjectID())
		c.Set("userRole", role)

		RequireStaff()(c)

		assert.False(t, c.IsAborted(), "role %s should pass", role)
	}
}

func TestRequireStaffRejectsCustomer(t *testing.T) {
	c, w := newAuthTestContext(t)
	c.Set("userId", primitive.NewObjectID())
	c.Set("userRole", models.RoleCustomer)

	RequireStaff()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthGuardUnauthenticatedBeatsRoleCheck(t *testing.T) {
	c, w := newAuthTestContext(t)

	RequireAdmin()(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
