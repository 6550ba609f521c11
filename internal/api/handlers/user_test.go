package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userListResponse struct {
	Users       []domain.PublicUser `json:"users"`
	TotalCount  int64               `json:"totalCount"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
}

func TestUserHandler_GetProfile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().WithName("Profile Owner").BuildAndAuthenticate(t, ts)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/users/profile"), nil, token)
	resp := testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	testutil.AssertNoPasswordField(t, raw)
	assert.Contains(t, string(raw), user.UUID.String())
	assert.Contains(t, string(raw), "Profile Owner")
}

func TestUserHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminToken := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	_, memberToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	for i := 0; i < 19; i++ {
		testutil.NewUserBuilder().Build(t, ts.DB)
	}

	tests := []struct {
		name           string
		token          string
		query          string
		expectedStatus int
		wantRows       int
		wantPages      int
	}{
		{name: "first page of users", token: adminToken, query: "?page=1&role=user", expectedStatus: http.StatusOK, wantRows: 15, wantPages: 2},
		{name: "second page of users", token: adminToken, query: "?page=2&role=user", expectedStatus: http.StatusOK, wantRows: 5, wantPages: 2},
		{name: "defaults to page one", token: adminToken, query: "?role=adm", expectedStatus: http.StatusOK, wantRows: 1, wantPages: 1},
		{name: "no role filter", token: adminToken, query: "", expectedStatus: http.StatusOK, wantRows: 15, wantPages: 2},
		{name: "bad page", token: adminToken, query: "?page=zero", expectedStatus: http.StatusBadRequest},
		{name: "bad role", token: adminToken, query: "?role=owner", expectedStatus: http.StatusBadRequest},
		{name: "regular user", token: memberToken, query: "", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/users"+tt.query), nil, tt.token)
			resp := testutil.Do(t, req)
			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result userListResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Len(t, result.Users, tt.wantRows)
			assert.Equal(t, tt.wantPages, result.TotalPages)
		})
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminToken := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	member, memberToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	other, _ := testutil.NewUserBuilder().Build(t, ts.DB)

	tests := []struct {
		name           string
		token          string
		request        map[string]interface{}
		expectedStatus int
		check          func(*testing.T)
	}{
		{
			name:           "member renames self",
			token:          memberToken,
			request:        map[string]interface{}{"name": "Renamed Member"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T) {
				stored, err := ts.Services.User.FindByPublicID(t.Context(), member.UUID)
				require.NoError(t, err)
				assert.Equal(t, "Renamed Member", stored.Name)
				assert.Equal(t, member.PasswordHash, stored.PasswordHash)
			},
		},
		{
			name:           "member names own uuid explicitly",
			token:          memberToken,
			request:        map[string]interface{}{"uuid": member.UUID.String(), "name": "Still Me"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "member edits someone else",
			token:          memberToken,
			request:        map[string]interface{}{"uuid": other.UUID.String(), "name": "Hijacked"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "member promotes self",
			token:          memberToken,
			request:        map[string]interface{}{"role": "adm"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "invalid email",
			token:          memberToken,
			request:        map[string]interface{}{"email": "nope"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "admin promotes another user",
			token:          adminToken,
			request:        map[string]interface{}{"uuid": other.UUID.String(), "role": "adm"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T) {
				stored, err := ts.Services.User.FindByPublicID(t.Context(), other.UUID)
				require.NoError(t, err)
				assert.Equal(t, domain.RoleAdmin, stored.Role)
			},
		},
		{
			name:           "admin edits missing user",
			token:          adminToken,
			request:        map[string]interface{}{"uuid": uuid.New().String(), "name": "Nobody"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "email taken by another user",
			token:          memberToken,
			request:        map[string]interface{}{"email": other.Email},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/users/profile"), tt.request, tt.token)
			resp := testutil.Do(t, req)
			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestUserHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminToken := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	_, memberToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	victim, _ := testutil.NewUserBuilder().Build(t, ts.DB)

	tests := []struct {
		name           string
		token          string
		target         string
		expectedStatus int
	}{
		{name: "regular user", token: memberToken, target: victim.UUID.String(), expectedStatus: http.StatusForbidden},
		{name: "admin deletes", token: adminToken, target: victim.UUID.String(), expectedStatus: http.StatusOK},
		{name: "already deleted", token: adminToken, target: victim.UUID.String(), expectedStatus: http.StatusNotFound},
		{name: "not a uuid", token: adminToken, target: "12345", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := ts.APIURL(fmt.Sprintf("/users/%s", tt.target))
			req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, url, nil, tt.token)
			testutil.AssertStatusCode(t, testutil.Do(t, req), tt.expectedStatus)
		})
	}
}
