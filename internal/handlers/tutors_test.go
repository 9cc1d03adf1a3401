package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ptsportal/api/internal/models"
	"ptsportal/api/internal/security"
)

func TestCreateTutorAsAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tutors",
		strings.NewReader(`{"email":"New_Tutor@dlsu.edu.ph","firstName":"Juan","lastName":"Dela Cruz","idNumber":12112345}`))
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.users.created, 1)

	created := env.users.created[0]
	require.Equal(t, "new_tutor@dlsu.edu.ph", created.Email, "email is normalized before storage")
	require.Equal(t, models.UserTypeMember, created.UserType)
	require.True(t, created.Membership)
	require.NotEmpty(t, created.ID)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, created.ID, body["_id"])
}

func TestCreateTutorWithProvisionToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	hash, err := security.HashProvisionToken("batch-import-token")
	require.NoError(t, err)
	env.cfg.Security.ProvisionTokenHash = hash

	req := httptest.NewRequest(http.MethodPost, "/api/tutors",
		strings.NewReader(`{"email":"tutor@dlsu.edu.ph","firstName":"Juan","lastName":"Dela Cruz"}`))
	req.Header.Set("X-Provision-Token", "batch-import-token")
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.users.created, 1)
}

func TestCreateTutorRejectsBadProvisionToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	hash, err := security.HashProvisionToken("batch-import-token")
	require.NoError(t, err)
	env.cfg.Security.ProvisionTokenHash = hash

	req := httptest.NewRequest(http.MethodPost, "/api/tutors",
		strings.NewReader(`{"email":"tutor@dlsu.edu.ph","firstName":"Juan","lastName":"Dela Cruz"}`))
	req.Header.Set("X-Provision-Token", "guessed-token")
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Empty(t, env.users.created)
}

func TestCreateTutorDuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.users.users["u-1"] = models.User{ID: "u-1", Email: "tutor@dlsu.edu.ph"}

	req := httptest.NewRequest(http.MethodPost, "/api/tutors",
		strings.NewReader(`{"email":"tutor@dlsu.edu.ph","firstName":"Juan","lastName":"Dela Cruz"}`))
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Empty(t, env.users.created)
}

func TestListTutorsDerivesStatus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.users.users["u-1"] = models.User{ID: "u-1", Email: "a@dlsu.edu.ph", Membership: true, Reset: true}

	req := httptest.NewRequest(http.MethodGet, "/api/tutors", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "Pending", body[0]["status"], "pending renewal overrides the membership flag")
}

func TestDeleteTutorCascadesSchedule(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	schedule := "s-1"
	env.users.users["u-1"] = models.User{ID: "u-1", Email: "tutor@dlsu.edu.ph", ScheduleID: &schedule}

	req := httptest.NewRequest(http.MethodDelete, "/api/tutors/u-1", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	w := env.do(req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, []string{"u-1"}, env.users.deleted)
	require.Contains(t, env.tutees.calls, "schedule:s-1")
}

func TestDeleteTutorWithoutSchedule(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.users.users["u-1"] = models.User{ID: "u-1", Email: "tutor@dlsu.edu.ph"}

	req := httptest.NewRequest(http.MethodDelete, "/api/tutors/u-1", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	w := env.do(req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, []string{"u-1"}, env.users.deleted)
	require.Empty(t, env.tutees.calls)
}

func TestDeleteTutorNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/tutors/missing", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	w := env.do(req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTutorMethodNotAllowed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/tutors/u-1", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))
	w := env.do(req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "DELETE", w.Header().Get("Allow"))
}
