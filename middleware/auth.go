package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/models"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

const (
	// ContextTokenKey stores the raw bearer token inside the Gin context.
	ContextTokenKey = "token"
	// ContextUserKey stores the resolved user record inside the Gin context.
	ContextUserKey = "current_user"
)

// TokenExtractor records the bearer token from the Authorization header, when
// one is present. It never rejects a request: verification is the user
// extractor's job, and most read routes never look at the token at all.
func TokenExtractor() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token != "" {
				ctx.Set(ContextTokenKey, token)
			}
		}
		ctx.Next()
	}
}

// UserExtractor verifies the extracted token and attaches the matching user
// record to the context. It is applied only to routes with ownership semantics.
// A request without a token passes through unauthenticated; handlers decide
// whether that is acceptable. Verification failures are pushed to the error
// translator, which answers 401 with the right token-expired/invalid body.
func UserExtractor(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := TokenFrom(ctx)
		if !ok {
			ctx.Next()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.AbortFail(ctx, http.StatusUnauthorized, "token invalid")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			_ = ctx.Error(err)
			ctx.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				_ = ctx.Error(err)
				ctx.Abort()
				return
			}
			// Token was valid but the account is gone; the ownership checks
			// downstream reject the request with 401.
		} else {
			ctx.Set(ContextUserKey, user)
		}

		ctx.Next()
	}
}

// TokenFrom returns the bearer token recorded by TokenExtractor.
func TokenFrom(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextTokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok && token != ""
}

// CurrentUser returns the user attached by UserExtractor.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
