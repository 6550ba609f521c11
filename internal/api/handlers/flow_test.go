package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/service"
	"github.com/dom/members-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, created, err := ts.Services.Auth.SeedAdmin(t.Context(), service.RegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "admin-password",
	})
	require.NoError(t, err)
	require.True(t, created)

	adminToken := testutil.Login(t, ts, "admin@example.com", "admin-password")
	_, memberToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Admin creates a module
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/modules"), map[string]interface{}{
		"title":       "Course basics",
		"description": "The basics of the course",
		"cover_url":   "https://cdn.example.com/basics.png",
	}, adminToken)
	resp := testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var module domain.Module
	testutil.AssertJSONResponse(t, resp, &module)

	// Admin adds a lesson to it
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/lessons"), map[string]interface{}{
		"title":       "Welcome",
		"description": "Welcome to the course",
		"video":       "https://player.example.com/welcome",
		"platform":    "Panda",
		"moduleId":    module.ID,
	}, adminToken)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var lesson domain.Lesson
	testutil.AssertJSONResponse(t, resp, &lesson)

	lessonsURL := ts.APIURL(fmt.Sprintf("/modules/%d/lessons", module.ID))

	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, lessonsURL, nil, memberToken)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var lessons []domain.Lesson
	testutil.AssertJSONResponse(t, resp, &lessons)
	assert.Len(t, lessons, 1)

	// A regular user cannot delete content
	req = testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/lessons/%d", lesson.ID)), nil, memberToken)
	testutil.AssertStatusCode(t, testutil.Do(t, req), http.StatusForbidden)

	req = testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/modules/%d", module.ID)), nil, adminToken)
	testutil.AssertStatusCode(t, testutil.Do(t, req), http.StatusOK)

	// The module is gone, so are its lessons
	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, lessonsURL, nil, adminToken)
	testutil.AssertStatusCode(t, testutil.Do(t, req), http.StatusNotFound)

	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL(fmt.Sprintf("/lessons/%d", lesson.ID)), nil, adminToken)
	testutil.AssertStatusCode(t, testutil.Do(t, req), http.StatusNotFound)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.BaseURL() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	metrics, err := http.Get(ts.BaseURL() + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	testutil.AssertStatusCode(t, metrics, http.StatusOK)
}

func TestBrowserHeaders(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.BaseURL() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))

	req, err := http.NewRequest(http.MethodOptions, ts.APIURL("/modules"), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	preflight := testutil.Do(t, req)
	testutil.AssertStatusCode(t, preflight, http.StatusOK)
	assert.Equal(t, "*", preflight.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, preflight.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}
