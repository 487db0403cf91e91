package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servquick/household-services/internal/models"
)

func TestLoginAdmin(t *testing.T) {
	r, _ := newTestServer(t)

	cl := newClient(t, r)
	w := cl.login("admin", testAdminPassword, "admin")
	require.Equal(t, http.StatusOK, w.Code)

	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "admin", user["role"])

	// The session cookie now opens the protected root.
	home := cl.get("/")
	require.Equal(t, http.StatusOK, home.Code)
	assert.Equal(t, "/admin/dashboard", decode(t, home)["dashboard"])
}

func TestLoginUnknownUser(t *testing.T) {
	r, _ := newTestServer(t)

	w := newClient(t, r).login("nobody", "whatever", "customer")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user_not_found", errorCode(t, w))
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestServer(t)
	signupCustomer(t, r, "alice")

	w := newClient(t, r).login("alice", "wrong-password", "customer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))
}

func TestLoginRoleMismatch(t *testing.T) {
	r, _ := newTestServer(t)
	signupCustomer(t, r, "alice")

	// Correct password, wrong role picker. Indistinguishable from a bad
	// password on purpose.
	w := newClient(t, r).login("alice", "secret123", "professional")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))
}

func TestLoginInvalidRole(t *testing.T) {
	r, _ := newTestServer(t)

	w := newClient(t, r).login("admin", testAdminPassword, "superuser")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_role", errorCode(t, w))
}

func TestLoginBlockedUser(t *testing.T) {
	r, db := newTestServer(t)
	signupCustomer(t, r, "alice")

	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "alice").
		Update("is_blocked", true).Error)

	// Blocked wins over wrong password too.
	w := newClient(t, r).login("alice", "wrong-password", "customer")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "account_blocked", errorCode(t, w))
}

func TestLoginUnapprovedProfessional(t *testing.T) {
	r, _ := newTestServer(t)
	signupProfessional(t, r, "bob", "Plumbing")

	w := newClient(t, r).login("bob", "secret123", "professional")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "pending_approval", errorCode(t, w))

	approveProfessional(t, r, "bob")

	w = newClient(t, r).login("bob", "secret123", "professional")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogout(t *testing.T) {
	r, _ := newTestServer(t)

	cl := newClient(t, r)
	require.Equal(t, http.StatusOK, cl.login("admin", testAdminPassword, "admin").Code)
	require.Equal(t, http.StatusOK, cl.get("/logout").Code)

	w := cl.get("/")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "not_authenticated", errorCode(t, w))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	r, _ := newTestServer(t)
	cl := newClient(t, r)

	for _, path := range []string{"/", "/dashboard", "/profile", "/admin/dashboard"} {
		w := cl.get(path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRoleEnforcement(t *testing.T) {
	r, _ := newTestServer(t)
	signupCustomer(t, r, "alice")

	cl := newClient(t, r)
	require.Equal(t, http.StatusOK, cl.login("alice", "secret123", "customer").Code)

	w := cl.get("/admin/dashboard")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorCode(t, w))

	w = cl.get("/professional/dashboard")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBlockTakesEffectMidSession(t *testing.T) {
	r, db := newTestServer(t)
	signupCustomer(t, r, "alice")

	cl := newClient(t, r)
	require.Equal(t, http.StatusOK, cl.login("alice", "secret123", "customer").Code)
	require.Equal(t, http.StatusOK, cl.get("/dashboard").Code)

	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "alice").
		Update("is_blocked", true).Error)

	w := cl.get("/dashboard")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "account_blocked", errorCode(t, w))
}
