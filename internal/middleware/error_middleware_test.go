package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

func performHandledError(t *testing.T, err error) (*httptest.ResponseRecorder, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, &resp
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrInvalidSelectionSize, http.StatusBadRequest, dto.ErrorCodeInvalidSelectionSize},
		{apperrors.ErrUnknownCourse, http.StatusBadRequest, dto.ErrorCodeUnknownCourse},
		{apperrors.ErrDuplicateInstructor, http.StatusBadRequest, dto.ErrorCodeDuplicateInstructor},
		{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{apperrors.ErrInvalidAdminCode, http.StatusForbidden, dto.ErrorCodeInvalidAdminCode},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrAccountNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		w, resp := performHandledError(t, tc.err)
		assert.Equal(t, tc.status, w.Code, "err=%v", tc.err)
		require.NotNil(t, resp.Error, "err=%v", tc.err)
		assert.Equal(t, tc.code, resp.Error.Code, "err=%v", tc.err)
	}
}

func TestHandleAPIErrorMatchesWrappedErrors(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrUnknownCourse, "course 42 missing")

	w, resp := performHandledError(t, wrapped)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeUnknownCourse, resp.Error.Code)
}
