package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/fetchkit/errors"
)

// RespondWithError renders err as an error envelope. An *apperrors.AppError
// anywhere in the chain sets the status and code; anything else becomes a
// 500 INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus == 0 {
		appErr.HTTPStatus = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

func respondNotFound(c *gin.Context) {
	RespondWithError(c, apperrors.NotFound(c.Request.URL.Path))
}
