package controller

import (
	"net/http"

	"github.com/ULMS-DEV/exam-service/internal/apperror"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/gin-gonic/gin"
)

// WriteError maps a service error onto the HTTP response. Taxonomy codes get
// their dedicated status; anything else is an internal error.
func WriteError(ctx *gin.Context, err error) {
	code, ok := apperror.CodeOf(err)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
		return
	}
	switch code {
	case apperror.CodeInvalidArgument:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case apperror.CodeNotFound:
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case apperror.CodePermissionDenied:
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
	}
}
