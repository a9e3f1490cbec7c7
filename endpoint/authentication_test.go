package endpoint

import (
	"net/http"
	"testing"

	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) model.User {
	t.Helper()
	require.NoError(t, model.SeedRoles(db))

	salt, err := util.GenerateSalt()
	require.NoError(t, err)
	hashed, err := util.HashPasswordArgon2(password, salt)
	require.NoError(t, err)

	user := model.User{
		Name:         "Admin",
		Email:        email,
		Password:     hashed,
		PasswordSalt: salt,
		RoleID:       1,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginSuccess(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedAdmin(t, db, "admin@oficiossde.com", "password123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/login",
		requestPath:  "/login",
		handler:      Login,
		body:         map[string]string{"email": "admin@oficiossde.com", "password": "password123"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "Admin", data["role"])

	// A session row backs the returned token
	var session model.Session
	require.NoError(t, db.Where("session_token = ?", data["token"]).First(&session).Error)
}

func TestLoginInvalidPassword(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedAdmin(t, db, "admin@oficiossde.com", "password123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/login",
		requestPath:  "/login",
		handler:      Login,
		body:         map[string]string{"email": "admin@oficiossde.com", "password": "wrong"},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, response["msg"], "Invalid email or password")
}

func TestLoginLockoutAfterFailedAttempts(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := seedAdmin(t, db, "admin@oficiossde.com", "password123")

	spec := requestSpec{
		method:       http.MethodPost,
		registerPath: "/login",
		requestPath:  "/login",
		handler:      Login,
		body:         map[string]string{"email": "admin@oficiossde.com", "password": "wrong"},
	}
	w, _, err := doRequestWithHandler(r, spec)
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
	for i := 0; i < 4; i++ {
		w, _, err = performRequest(r, spec)
		require.NoError(t, err)
		assertStatus(t, w, http.StatusBadRequest)
	}

	var locked model.User
	require.NoError(t, db.First(&locked, user.ID).Error)
	assert.Equal(t, 5, locked.FailedAttempts)
	require.NotNil(t, locked.LockedUntil)

	// Even the correct password is rejected while the lock holds
	spec.body = map[string]string{"email": "admin@oficiossde.com", "password": "password123"}
	w, response, err := performRequest(r, spec)
	require.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, response["msg"], "locked")
}

func TestLogout(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedAdmin(t, db, "admin@oficiossde.com", "password123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/login",
		requestPath:  "/login",
		handler:      Login,
		body:         map[string]string{"email": "admin@oficiossde.com", "password": "password123"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)
	token := response["data"].(map[string]interface{})["token"].(string)

	w, response, err = doRequestWithHandler(r, requestSpec{
		method:       http.MethodDelete,
		registerPath: "/logout",
		requestPath:  "/logout",
		handler:      Logout,
		headers:      map[string]string{"session-token": token},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var count int64
	db.Model(&model.Session{}).Where("session_token = ?", token).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestValidateToken(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedAdmin(t, db, "admin@oficiossde.com", "password123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodPost,
		registerPath: "/login",
		requestPath:  "/login",
		handler:      Login,
		body:         map[string]string{"email": "admin@oficiossde.com", "password": "password123"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)
	token := response["data"].(map[string]interface{})["token"].(string)

	w, response, err = doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/token/validate",
		requestPath:  "/token/validate",
		handler:      ValidateToken,
		headers:      map[string]string{"session-token": token},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, response)

	// Garbage tokens are rejected
	w, _, err = performRequest(r, requestSpec{
		method:      http.MethodGet,
		requestPath: "/token/validate",
		headers:     map[string]string{"session-token": "garbage"},
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusUnauthorized)
}
