package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/internal/service"
	"github.com/stroy1click/confirmation-service/pkg/i18nx"
	"github.com/stroy1click/confirmation-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type confirmationCodesServiceMock struct {
	mock.Mock
}

func (m *confirmationCodesServiceMock) Create(ctx context.Context, purpose domain.Purpose, email string) error {
	args := m.Called(ctx, purpose, email)
	return args.Error(0)
}

func (m *confirmationCodesServiceMock) Recreate(ctx context.Context, purpose domain.Purpose, email string) error {
	args := m.Called(ctx, purpose, email)
	return args.Error(0)
}

func (m *confirmationCodesServiceMock) VerifyEmail(ctx context.Context, email string, code int) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *confirmationCodesServiceMock) UpdatePassword(ctx context.Context, input service.UpdatePasswordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func newTestRouter(t *testing.T, codes *confirmationCodesServiceMock) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	translator, err := i18nx.NewTranslator()
	require.NoError(t, err)

	handler := NewHandler(&service.Services{ConfirmationCodes: codes}, translator)

	router := gin.New()
	handler.Init(router.Group("/api"))
	return router
}

func doRequest(router *gin.Engine, path string, body string, lang string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) Problem {
	t.Helper()

	var p Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestCreateConfirmationCode(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Create", mock.Anything, domain.PurposeEmailVerification, "user@example.com").Return(nil)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes",
		`{"type":"EMAIL","email":"user@example.com"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
	codes.AssertExpectations(t)
}

func TestCreateConfirmationCode_AlreadySent(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Create", mock.Anything, domain.PurposeEmailVerification, "user@example.com").
		Return(service.ErrCodeAlreadySent)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes",
		`{"type":"EMAIL","email":"user@example.com"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	p := decodeProblem(t, w)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.NotEmpty(t, p.Title)
	assert.NotEmpty(t, p.Detail)
}

func TestCreateConfirmationCode_UserNotFound(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Create", mock.Anything, domain.PurposePasswordReset, "nobody@example.com").
		Return(domain.ErrUserNotFound)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes",
		`{"type":"PASSWORD","email":"nobody@example.com"}`, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, decodeProblem(t, w).Status)
}

func TestCreateConfirmationCode_ServiceUnavailable(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Create", mock.Anything, domain.PurposeEmailVerification, "user@example.com").
		Return(domain.ErrServiceUnavailable)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes",
		`{"type":"EMAIL","email":"user@example.com"}`, "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateConfirmationCode_InvalidBody(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	router := newTestRouter(t, codes)

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"SMS","email":"user@example.com"}`},
		{"bad email", `{"type":"EMAIL","email":"not-an-email"}`},
		{"missing email", `{"type":"EMAIL"}`},
		{"malformed json", `{"type":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "/api/v1/confirmation-codes", tt.body, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, http.StatusBadRequest, decodeProblem(t, w).Status)
		})
	}

	codes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateConfirmationCode_Localized(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Create", mock.Anything, domain.PurposeEmailVerification, "user@example.com").
		Return(service.ErrCodeAlreadySent)

	router := newTestRouter(t, codes)

	en := decodeProblem(t, doRequest(router, "/api/v1/confirmation-codes",
		`{"type":"EMAIL","email":"user@example.com"}`, "en"))
	ru := decodeProblem(t, doRequest(router, "/api/v1/confirmation-codes",
		`{"type":"EMAIL","email":"user@example.com"}`, "ru"))

	assert.NotEqual(t, en.Detail, ru.Detail)
}

func TestRecreateConfirmationCode(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Recreate", mock.Anything, domain.PurposeEmailVerification, "user@example.com").Return(nil)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/regeneration",
		`{"type":"EMAIL","email":"user@example.com"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	codes.AssertExpectations(t)
}

func TestRecreateConfirmationCode_WithoutExistingCode(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("Recreate", mock.Anything, domain.PurposePasswordReset, "user@example.com").
		Return(service.ErrRecreateWithoutCode)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/regeneration",
		`{"type":"PASSWORD","email":"user@example.com"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmail(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("VerifyEmail", mock.Anything, "user@example.com", 2345678).Return(nil)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/email/verify",
		`{"email":"user@example.com","code":2345678}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	codes.AssertExpectations(t)
}

func TestVerifyEmail_CodeOutOfRange(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/email/verify",
		`{"email":"user@example.com","code":123}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	codes.AssertNotCalled(t, "VerifyEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyEmail_CodeNotValid(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("VerifyEmail", mock.Anything, "user@example.com", 2345678).
		Return(service.ErrCodeNotValid)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/email/verify",
		`{"email":"user@example.com","code":2345678}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmail_CodeNotFound(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("VerifyEmail", mock.Anything, "user@example.com", 2345678).
		Return(service.ErrCodeNotFound)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/email/verify",
		`{"email":"user@example.com","code":2345678}`, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePassword(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("UpdatePassword", mock.Anything, service.UpdatePasswordInput{
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
		Email:           "user@example.com",
		Code:            2345678,
	}).Return(nil)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/password-reset",
		`{"newPassword":"new-password-1","confirmPassword":"new-password-1","codeVerificationRequest":{"email":"user@example.com","code":2345678}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	codes.AssertExpectations(t)
}

func TestUpdatePassword_Mismatch(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	codes.On("UpdatePassword", mock.Anything, mock.Anything).
		Return(service.ErrPasswordMismatch)

	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/password-reset",
		`{"newPassword":"new-password-1","confirmPassword":"other-password-1","codeVerificationRequest":{"email":"user@example.com","code":2345678}}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePassword_ShortPassword(t *testing.T) {
	codes := new(confirmationCodesServiceMock)
	router := newTestRouter(t, codes)

	w := doRequest(router, "/api/v1/confirmation-codes/password-reset",
		`{"newPassword":"short","confirmPassword":"short","codeVerificationRequest":{"email":"user@example.com","code":2345678}}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	codes.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}
