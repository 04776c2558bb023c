package handler

import (
	"errors"
	"net/http"

	domainContact "contact-keeper/internal/domain/contact"
	domainUser "contact-keeper/internal/domain/user"
	"contact-keeper/internal/logger"
	"contact-keeper/internal/middleware"
	appErrors "contact-keeper/pkg/errors"
	"contact-keeper/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrInvalidOTP),
		errors.Is(err, appErrors.ErrUserInactive),
		errors.Is(err, domainUser.ErrUserInactive),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, appErrors.ErrContactNotFound),
		errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainContact.ErrContactNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrRateLimited):
		utils.ErrorResponse(c, http.StatusTooManyRequests, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
