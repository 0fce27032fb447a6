package utils

import "github.com/gin-gonic/gin"

// Fail writes the uniform error body {"error": "<message>"} with the given status.
// Every user-visible failure goes through here so no handler can leak internals.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// AbortFail writes the error body and stops the remaining handler chain.
func AbortFail(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{"error": message})
}
