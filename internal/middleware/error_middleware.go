package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to standard HTTP responses. Controllers
// call it for every error coming out of the service layer so the mapping
// lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	// Preserve wrapped context messages where present
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		detail = detail.WithDetails(customErr.Message)
	}

	c.JSON(statusFor(err), dto.NewErrorResponse(detail))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSelectionSize),
		errors.Is(err, apperrors.ErrUnknownCourse),
		errors.Is(err, apperrors.ErrDuplicateInstructor),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInvalidAdminCode),
		errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrInstructorNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorDetailFor(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSelectionSize):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidSelectionSize, apperrors.ErrInvalidSelectionSize.Error())
	case errors.Is(err, apperrors.ErrUnknownCourse):
		return dto.NewErrorDetail(dto.ErrorCodeUnknownCourse, apperrors.ErrUnknownCourse.Error())
	case errors.Is(err, apperrors.ErrDuplicateInstructor):
		return dto.NewErrorDetail(dto.ErrorCodeDuplicateInstructor, apperrors.ErrDuplicateInstructor.Error())
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		return dto.NewErrorDetail(dto.ErrorCodeAlreadyEnrolled, apperrors.ErrAlreadyEnrolled.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, apperrors.ErrInvalidCredentials.Error())
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrInvalidAdminCode):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidAdminCode, apperrors.ErrInvalidAdminCode.Error())
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, apperrors.ErrEmailAlreadyExists.Error())
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.ErrAccountNotFound.Error())
	case errors.Is(err, apperrors.ErrInstructorNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.ErrInstructorNotFound.Error())
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.ErrCourseNotFound.Error())
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflict")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
