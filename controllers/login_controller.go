package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/config"
	"github.com/knchan0x/fullstack-open-bloglist/middleware"
	"github.com/knchan0x/fullstack-open-bloglist/models"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

// LoginController exchanges credentials for session tokens and revokes them on logout.
type LoginController struct {
	db *gorm.DB
}

// NewLoginController creates a LoginController.
func NewLoginController(db *gorm.DB) *LoginController {
	return &LoginController{db: db}
}

// Login verifies credentials and issues a signed token with the configured expiry.
func (l *LoginController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	var user models.User
	if err := l.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Fail(ctx, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Fail(ctx, http.StatusUnauthorized, "invalid username or password")
		return
	}

	ttl := time.Duration(config.Get().TokenTTLSeconds) * time.Second
	token, err := utils.GenerateToken(user.ID, user.Username, ttl)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"name":     user.Name,
	})
}

// Logout revokes the presented token until its natural expiry.
func (l *LoginController) Logout(ctx *gin.Context) {
	token, ok := middleware.TokenFrom(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "token invalid")
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	expiresAt := time.Now().Add(time.Duration(config.Get().TokenTTLSeconds) * time.Second)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
