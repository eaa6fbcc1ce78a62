package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cleopatra/internal/models"
	"cleopatra/internal/session"
)

func TestResolveInjectsIdentityFromCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Hour, time.Hour)
	defer store.Close()

	userID := primitive.NewObjectID()
	token, err := session.NewToken()
	require.NoError(t, err)
	require.NoError(t, store.Create(t.Context(), token, &session.Session{
		UserID:    userID.Hex(),
		Role:      models.RoleStaff,
		CreatedAt: time.Now(),
	}))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	Resolve(store)(c)

	got, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, got)
	assert.Equal(t, models.RoleStaff, UserRole(c))
}

func TestResolveLeavesAnonymousWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Hour, time.Hour)
	defer store.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	Resolve(store)(c)

	_, ok := UserID(c)
	assert.False(t, ok)
	assert.False(t, c.IsAborted())
}

func TestResolveIgnoresUnknownToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Hour, time.Hour)
	defer store.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-token"})

	Resolve(store)(c)

	_, ok := UserID(c)
	assert.False(t, ok)
}
