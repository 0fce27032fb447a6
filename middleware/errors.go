package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

// ErrorTranslator maps errors collected during the request to a status code and
// the uniform {"error": ...} body. Handlers answer their own ownership and
// presence failures; everything else is pushed onto the context with ctx.Error
// and lands here, so no failure is ever silently dropped and no internal detail
// leaks to the caller.
func ErrorTranslator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		last := ctx.Errors.Last()
		if last == nil || ctx.Writer.Written() {
			return
		}

		err := last.Err
		switch {
		case errors.Is(err, utils.ErrInvalidID):
			utils.Fail(ctx, http.StatusBadRequest, "incorrect id")
		case errors.Is(err, utils.ErrTokenExpired):
			utils.Fail(ctx, http.StatusUnauthorized, "token expired")
		case errors.Is(err, utils.ErrTokenInvalid):
			utils.Fail(ctx, http.StatusUnauthorized, "token invalid")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Fail(ctx, http.StatusNotFound, "resource not found")
		default:
			if utils.Sugar != nil {
				utils.Sugar.Errorw("unhandled request error",
					"method", ctx.Request.Method,
					"path", ctx.Request.URL.Path,
					"error", err,
				)
			}
			utils.Fail(ctx, http.StatusInternalServerError, "internal server error")
		}
	}
}

// UnknownEndpoint answers requests that matched no route.
func UnknownEndpoint() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		utils.Fail(ctx, http.StatusNotFound, "unknown endpoint")
	}
}
