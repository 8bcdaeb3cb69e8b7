package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yasyhadav121/codecrack/internal/config"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open("file:middleware_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	database.DB = db
	database.DB.AutoMigrate(&models.User{})
}

func protectedRouter(admin bool) *gin.Engine {
	r := gin.New()
	group := r.Group("/", UserMiddleware())
	if admin {
		group = r.Group("/", UserMiddleware(), AdminMiddleware())
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
	})
	return r
}

func TestUserMiddleware_MissingToken(t *testing.T) {
	setupAuthTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	protectedRouter(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserMiddleware_InvalidToken(t *testing.T) {
	setupAuthTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	protectedRouter(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserMiddleware_BearerHeader(t *testing.T) {
	setupAuthTest(t)
	database.DB.Create(&models.User{ID: "bearer-user", EmailID: "bearer@example.com", Role: models.RoleUser})

	token, err := utils.GenerateToken("bearer-user", "user")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bearer-user")
}

func TestUserMiddleware_Cookie(t *testing.T) {
	setupAuthTest(t)
	database.DB.Create(&models.User{ID: "cookie-user", EmailID: "cookie@example.com", Role: models.RoleUser})

	token, err := utils.GenerateToken("cookie-user", "user")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	protectedRouter(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserMiddleware_DeletedUser(t *testing.T) {
	setupAuthTest(t)

	// Valid signature, but the account no longer exists.
	token, err := utils.GenerateToken("ghost-user", "user")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware_RejectsNonAdmin(t *testing.T) {
	setupAuthTest(t)
	database.DB.Create(&models.User{ID: "plain-user", EmailID: "plain@example.com", Role: models.RoleUser})

	token, err := utils.GenerateToken("plain-user", "user")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	setupAuthTest(t)
	database.DB.Create(&models.User{ID: "admin-user", EmailID: "admin@example.com", Role: models.RoleAdmin})

	token, err := utils.GenerateToken("admin-user", "admin")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
