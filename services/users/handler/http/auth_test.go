package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/piresc/mfs/internal/pkg/password"
	"github.com/piresc/mfs/services/users/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUserUC := mocks.NewMockUserUC(ctrl)
	authHandler := NewAuthHandler(mockUserUC)

	c, rec := newJSONContext(http.MethodPost, "/register",
		`{"email":"a@x.com","pin":"1234","number":"01712345678","name":"Alice","_id":"forged"}`)

	mockUserUC.EXPECT().
		Register(gomock.Any(), &models.RegisterRequest{
			Email:   "a@x.com",
			Number:  "01712345678",
			Pin:     "1234",
			Profile: map[string]interface{}{"name": "Alice"},
		}).
		Return(&models.InsertResult{Acknowledged: true, InsertedID: "665f1c2e9b1e8a3d4c5b6a79"}, nil)

	err := authHandler.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"insertedId":"665f1c2e9b1e8a3d4c5b6a79"}`, rec.Body.String())
}

func TestRegister_BadRequests(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{name: "Malformed JSON", body: `{invalid_json}`, expectedMessage: "Invalid request payload"},
		{name: "Not an object", body: `["a@x.com"]`, expectedMessage: "Invalid request payload"},
		{name: "Pin is not a string", body: `{"email":"a@x.com","pin":1234}`, expectedMessage: "Invalid request payload"},
		{name: "Missing email and pin", body: `{"name":"Alice"}`, expectedMessage: "email and pin are required"},
		{name: "Missing pin", body: `{"email":"a@x.com"}`, expectedMessage: "pin is required"},
		{name: "Missing email", body: `{"pin":"1234"}`, expectedMessage: "email is required"},
		{name: "Pin longer than bcrypt accepts", body: `{"email":"a@x.com","pin":"` + strings.Repeat("7", 80) + `"}`, expectedMessage: "pin is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			authHandler := NewAuthHandler(mocks.NewMockUserUC(ctrl))

			c, rec := newJSONContext(http.MethodPost, "/register", tt.body)

			err := authHandler.Register(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expectedMessage, decodeMessage(t, rec))
		})
	}
}

func TestRegister_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name            string
		ucErr           error
		expectedStatus  int
		expectedMessage string
	}{
		{name: "Duplicate email", ucErr: models.ErrUserAlreadyExists, expectedStatus: http.StatusBadRequest, expectedMessage: "User already exists"},
		{name: "Pin rejected by hasher", ucErr: fmt.Errorf("failed to hash pin: %w", password.ErrSecretTooLong), expectedStatus: http.StatusBadRequest, expectedMessage: "pin is too long"},
		{name: "Store unavailable", ucErr: models.ErrStoreUnavailable, expectedStatus: http.StatusServiceUnavailable, expectedMessage: "Service unavailable"},
		{name: "Unexpected", ucErr: assert.AnError, expectedStatus: http.StatusInternalServerError, expectedMessage: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUserUC := mocks.NewMockUserUC(ctrl)
			authHandler := NewAuthHandler(mockUserUC)

			c, rec := newJSONContext(http.MethodPost, "/register", `{"email":"a@x.com","pin":"1234"}`)

			mockUserUC.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, tt.ucErr)

			err := authHandler.Register(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedMessage, decodeMessage(t, rec))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUserUC := mocks.NewMockUserUC(ctrl)
	authHandler := NewAuthHandler(mockUserUC)

	c, rec := newJSONContext(http.MethodPost, "/login", `{"id":"a@x.com","pin":"1234"}`)

	mockUserUC.EXPECT().
		Login(gomock.Any(), "a@x.com", "1234").
		Return(&models.AuthResponse{
			Token: "signed.jwt.token",
			User: &models.User{
				ID:      "665f1c2e9b1e8a3d4c5b6a79",
				Email:   "a@x.com",
				Pin:     "$2a$10$hash",
				Profile: map[string]interface{}{"name": "Alice"},
			},
		}, nil)

	err := authHandler.Login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "signed.jwt.token", response.Token)
	assert.Equal(t, "a@x.com", response.User["email"])
	assert.Equal(t, "Alice", response.User["name"])
	assert.Equal(t, "665f1c2e9b1e8a3d4c5b6a79", response.User["_id"])
	assert.NotContains(t, response.User, "pin")
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		ucErr           error
		callsUseCase    bool
		expectedStatus  int
		expectedMessage string
	}{
		{name: "Malformed JSON", body: `{`, expectedStatus: http.StatusBadRequest, expectedMessage: "Invalid request payload"},
		{name: "Missing id", body: `{"pin":"1234"}`, expectedStatus: http.StatusBadRequest, expectedMessage: "id is required"},
		{name: "Missing both", body: `{}`, expectedStatus: http.StatusBadRequest, expectedMessage: "id and pin are required"},
		{name: "Unknown user", body: `{"id":"nobody@x.com","pin":"1234"}`, ucErr: models.ErrUserNotFound, callsUseCase: true, expectedStatus: http.StatusBadRequest, expectedMessage: "User not found"},
		{name: "Wrong pin", body: `{"id":"a@x.com","pin":"0000"}`, ucErr: models.ErrInvalidCredentials, callsUseCase: true, expectedStatus: http.StatusBadRequest, expectedMessage: "Invalid credentials"},
		{name: "Store unavailable", body: `{"id":"a@x.com","pin":"1234"}`, ucErr: models.ErrStoreUnavailable, callsUseCase: true, expectedStatus: http.StatusServiceUnavailable, expectedMessage: "Service unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUserUC := mocks.NewMockUserUC(ctrl)
			authHandler := NewAuthHandler(mockUserUC)

			c, rec := newJSONContext(http.MethodPost, "/login", tt.body)

			if tt.callsUseCase {
				mockUserUC.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.ucErr)
			}

			err := authHandler.Login(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedMessage, decodeMessage(t, rec))
		})
	}
}
