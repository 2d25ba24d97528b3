// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/middleware"
)

// callerID returns the authenticated account id placed in the context by the
// auth middleware.
func callerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get(middleware.ContextAccountID)
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requestMeta collects the audit fields for the current request.
func requestMeta(ctx *gin.Context) services.RequestMeta {
	meta := services.RequestMeta{
		IPAddress: ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}
	if id, ok := callerID(ctx); ok {
		meta.AccountID = id.String()
	}
	return meta
}
