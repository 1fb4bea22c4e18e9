// Copyright (c) 2026 Inkwell. All rights reserved.

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeeWithRafay/inkwell/internal/platform/constants"
	"github.com/CodeeWithRafay/inkwell/internal/users/auth"
)

// newTestRouter wires a real service (on in-memory fakes) behind the HTTP
// handler, exactly as the server composes it.
func newTestRouter(t *testing.T) (*chi.Mux, *serviceFixture) {
	t.Helper()

	fixture := newServiceFixture(t)
	router := chi.NewRouter()
	auth.NewHandler(fixture.service).RegisterRoutes(router)

	return router, fixture
}

func postJSON(t *testing.T, router http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

var validRegisterBody = map[string]string{
	"username":        "rafay123",
	"name":            "Rafay",
	"email":           "rafay@inkwell.dev",
	"password":        "Abcdef12",
	"confirmPassword": "Abcdef12",
}

/*
TestHandler_Register_Success checks the 201 contract: {user, auth:true} in
the body, no token in the body, and both HTTP-only cookies set.
*/
func TestHandler_Register_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["auth"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rafay123", user["username"])
	assert.Equal(t, "rafay@inkwell.dev", user["email"])
	assert.NotEmpty(t, user["_id"])

	// Tokens travel only as cookies.
	assert.NotContains(t, body, "accessToken")
	assert.NotContains(t, body, "refreshToken")

	cookies := recorder.Result().Cookies()
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		cookie := findCookie(cookies, name)
		require.NotNil(t, cookie, name)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, int(constants.AuthCookieMaxAge.Seconds()), cookie.MaxAge)
	}
}

/*
TestHandler_Register_ValidationFailure sends a weak password and a mismatched
confirmation, expecting a 400 with field details.
*/
func TestHandler_Register_ValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/register", map[string]string{
		"username":        "ab", // too short
		"name":            "Rafay",
		"email":           "not-an-email",
		"password":        "weak",
		"confirmPassword": "different",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.NotEmpty(t, body["details"])
}

/*
TestHandler_Register_DuplicateEmail expects 409 with the exact message.
*/
func TestHandler_Register_DuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, router, "/register", validRegisterBody).Code)

	duplicate := map[string]string{}
	for key, value := range validRegisterBody {
		duplicate[key] = value
	}
	duplicate["username"] = "othername"

	recorder := postJSON(t, router, "/register", duplicate)
	require.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "Email Already Registered", decodeBody(t, recorder)["message"])
}

/*
TestHandler_Login_Success checks the 200 contract and fresh cookies.
*/
func TestHandler_Login_Success(t *testing.T) {
	router, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/register", validRegisterBody).Code)

	recorder := postJSON(t, router, "/login", map[string]string{
		"username": "rafay123",
		"password": "Abcdef12",
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["auth"])
	assert.NotNil(t, body["user"])

	cookies := recorder.Result().Cookies()
	assert.NotNil(t, findCookie(cookies, constants.AccessTokenCookieName))
	assert.NotNil(t, findCookie(cookies, constants.RefreshTokenCookieName))
}

/*
TestHandler_Login_WrongPassword expects 401 with the exact message.
*/
func TestHandler_Login_WrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/register", validRegisterBody).Code)

	recorder := postJSON(t, router, "/login", map[string]string{
		"username": "rafay123",
		"password": "Wrongpass1",
	})

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Invalid Password", decodeBody(t, recorder)["message"])
}

/*
TestHandler_Logout clears both cookies and returns {user:null, auth:false},
even when no session cookie is presented.
*/
func TestHandler_Logout(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/logout", map[string]string{})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Nil(t, body["user"])
	assert.Equal(t, false, body["auth"])

	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		cookie := findCookie(recorder.Result().Cookies(), name)
		require.NotNil(t, cookie, name)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
}

/*
TestHandler_Logout_RevokesRefresh performs a full register → logout →
refresh cycle: after logout the old refresh cookie must be rejected.
*/
func TestHandler_Logout_RevokesRefresh(t *testing.T) {
	router, _ := newTestRouter(t)

	registered := postJSON(t, router, "/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, registered.Code)
	refreshCookie := findCookie(registered.Result().Cookies(), constants.RefreshTokenCookieName)
	require.NotNil(t, refreshCookie)

	logout := postJSON(t, router, "/logout", map[string]string{}, refreshCookie)
	require.Equal(t, http.StatusOK, logout.Code)

	refresh := postJSON(t, router, "/refresh", map[string]string{}, refreshCookie)
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

/*
TestHandler_Refresh_Success rotates the session from the refresh cookie and
proves the presented token is single-use.
*/
func TestHandler_Refresh_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	registered := postJSON(t, router, "/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, registered.Code)
	oldCookie := findCookie(registered.Result().Cookies(), constants.RefreshTokenCookieName)
	require.NotNil(t, oldCookie)

	first := postJSON(t, router, "/refresh", map[string]string{}, oldCookie)
	require.Equal(t, http.StatusOK, first.Code)

	body := decodeBody(t, first)
	assert.Equal(t, true, body["auth"])
	assert.NotNil(t, body["user"])

	newCookie := findCookie(first.Result().Cookies(), constants.RefreshTokenCookieName)
	require.NotNil(t, newCookie)
	assert.NotEqual(t, oldCookie.Value, newCookie.Value)

	// Replaying the pre-rotation token must fail.
	second := postJSON(t, router, "/refresh", map[string]string{}, oldCookie)
	assert.Equal(t, http.StatusUnauthorized, second.Code)
}

/*
TestHandler_Refresh_MissingCookie expects 401 "Unauthorized" when no refresh
cookie is presented.
*/
func TestHandler_Refresh_MissingCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/refresh", map[string]string{})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, recorder)["message"])
}

/*
TestHandler_InvalidJSON rejects a malformed body with 400.
*/
func TestHandler_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
