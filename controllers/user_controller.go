package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/models"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

// UserController handles account registration and public user listings.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func userJSON(user models.User) gin.H {
	blogs := make([]gin.H, 0, len(user.Blogs))
	for _, blog := range user.Blogs {
		blogs = append(blogs, gin.H{
			"id":     blog.ID,
			"title":  blog.Title,
			"author": blog.Author,
			"url":    blog.URL,
			"likes":  blog.Likes,
		})
	}
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"name":     user.Name,
		"blogs":    blogs,
	}
}

// Register creates a local account with a bcrypt password hash.
func (u *UserController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	username := utils.Sanitize(req.Username)
	if len(username) < 3 {
		utils.Fail(ctx, http.StatusBadRequest, "username must be at least 3 characters long")
		return
	}
	if len(req.Password) < 3 {
		utils.Fail(ctx, http.StatusBadRequest, "password must be at least 3 characters long")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	user := models.User{
		Username:     username,
		Name:         utils.Sanitize(req.Name),
		PasswordHash: hash,
	}
	// The unique index is the only duplicate check, so two concurrent
	// registrations of the same name cannot slip past a read-then-write probe.
	if err := u.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(ctx, http.StatusBadRequest, "expected `username` to be unique")
			return
		}
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, userJSON(user))
}

// ListUsers returns all users with their owned blogs populated.
func (u *UserController) ListUsers(ctx *gin.Context) {
	var users []models.User
	if err := u.db.Preload("Blogs").Order("id").Find(&users).Error; err != nil {
		_ = ctx.Error(err)
		return
	}

	payload := make([]gin.H, 0, len(users))
	for _, user := range users {
		payload = append(payload, userJSON(user))
	}
	ctx.JSON(http.StatusOK, payload)
}

// GetUser returns one user by id with owned blogs populated.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var user models.User
	if err := u.db.Preload("Blogs").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "user not found")
			return
		}
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, userJSON(user))
}
