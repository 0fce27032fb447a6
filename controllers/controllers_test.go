package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/knchan0x/fullstack-open-bloglist/middleware"
	"github.com/knchan0x/fullstack-open-bloglist/models"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

// newTestDB opens an isolated in-memory database migrated to the app schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Blog{}))
	return db
}

// newTestRouter wires the middleware chain and routes the way routes.SetupRouter
// does, minus the file logger and rate limiter that only matter in production.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorTranslator())
	r.Use(middleware.TokenExtractor())

	blogController := NewBlogController(db)
	userController := NewUserController(db)
	loginController := NewLoginController(db)
	statsController := NewStatsController(db)

	api := r.Group("/api")
	api.POST("/login", loginController.Login)
	api.POST("/logout", loginController.Logout)
	api.POST("/users", userController.Register)
	api.GET("/users", userController.ListUsers)
	api.GET("/users/:id", userController.GetUser)

	blogs := api.Group("/blogs")
	blogs.GET("", blogController.ListBlogs)
	blogs.GET("/stats", statsController.GetBlogStats)
	blogs.GET("/:id", blogController.GetBlog)

	owned := blogs.Group("", middleware.UserExtractor(db))
	owned.POST("", blogController.CreateBlog)
	owned.PUT("/:id", blogController.UpdateBlog)
	owned.DELETE("/:id", blogController.DeleteBlog)

	r.NoRoute(middleware.UnknownEndpoint())
	return r
}

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	root   models.User
	other  models.User
	blogs  []models.Blog
}

// newFixture seeds two users, one blog owned by each, and returns the wired router.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	// Each fixture starts from a fresh database; make sure a shared cache
	// (when a local Redis happens to be running) cannot serve stale bodies.
	utils.InvalidateBlogCache()

	rootHash, err := utils.HashPassword("sekret")
	require.NoError(t, err)
	root := models.User{Username: "root", Name: "Superuser", PasswordHash: rootHash}
	require.NoError(t, db.Create(&root).Error)

	otherHash, err := utils.HashPassword("hunter2")
	require.NoError(t, err)
	other := models.User{Username: "mchan", Name: "Michael Chan", PasswordHash: otherHash}
	require.NoError(t, db.Create(&other).Error)

	seed := []models.Blog{
		{UserID: root.ID, Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		{UserID: other.ID, Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "https://homepages.cwi.nl/~storm/teaching/reader/Dijkstra68.pdf", Likes: 5},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	return &fixture{
		db:     db,
		router: newTestRouter(db),
		root:   root,
		other:  other,
		blogs:  seed,
	}
}

func (f *fixture) bearer(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Username, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *fixture) blogCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Blog{}).Count(&count).Error)
	return count
}

// request performs an in-process HTTP request and returns the recorder.
func (f *fixture) request(t *testing.T, method, path string, body any, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
