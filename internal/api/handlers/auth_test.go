package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/members-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().
		WithEmail("member@example.com").
		Build(t, ts.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    "member@example.com",
				"password": password,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				raw, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				testutil.AssertNoPasswordField(t, raw)

				var result testutil.LoginResponse
				require.NoError(t, json.Unmarshal(raw, &result))
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, user.UUID, result.User.UUID)
				assert.Equal(t, "member@example.com", result.User.Email)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    "member@example.com",
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			request: map[string]string{
				"email":    "ghost@example.com",
				"password": password,
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed email",
			request: map[string]string{
				"email":    "not-an-email",
				"password": password,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_LoginBodyTooLarge(t *testing.T) {
	ts := testutil.NewTestServer(t)

	huge := strings.Repeat("a", 200*1024)
	body, _ := json.Marshal(map[string]string{
		"email":    "member@example.com",
		"password": huge,
	})

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusRequestEntityTooLarge, "too large")
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminToken := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	_, memberToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	testutil.NewUserBuilder().WithEmail("existing@example.com").Build(t, ts.DB)

	valid := map[string]string{
		"name":     "New Member",
		"email":    "new@example.com",
		"password": "password123",
	}

	tests := []struct {
		name           string
		token          string
		request        map[string]string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "admin registers a user",
			token:          adminToken,
			request:        valid,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "regular user is forbidden",
			token:          memberToken,
			request:        valid,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no token",
			request:        valid,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:  "duplicate email",
			token: adminToken,
			request: map[string]string{
				"name":     "Duplicate",
				"email":    "existing@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "email already in use",
		},
		{
			name:  "short password",
			token: adminToken,
			request: map[string]string{
				"name":     "Shorty",
				"email":    "shorty@example.com",
				"password": "123",
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/auth/register"), tt.request, tt.token)
			resp := testutil.Do(t, req)

			if tt.expectedMsg != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedMsg)
				return
			}
			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
		})
	}
}
