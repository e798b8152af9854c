package auth_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// TestRegisterIssuesSession verifies a new account is logged in straight away.
func TestRegisterIssuesSession(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	resp, err := client.Register(t.Context(), registerRequest("Sam@Example.com"))
	require.NoError(t, err)

	require.Equal(t, "sam@example.com", resp.User.Email, "Email is stored lowercased")
	require.Equal(t, "Sam", resp.User.FirstName)
	require.Equal(t, "1993-09-10", resp.User.DateOfBirth)
	require.False(t, resp.User.CreatedAt.IsZero())

	claims, err := jwtx.DecodeUnverified(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.Subject)
	require.Equal(t, testIssuer, claims.Issuer)
	require.NotEmpty(t, claims.ID, "Token should carry a jti")

	t.Logf("Registered user %s", resp.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	registerUser(t, client)

	_, err := client.Register(t.Context(), registerRequest(strings.ToUpper(testEmail)))
	authErr := assertStatus(t, err, http.StatusConflict, "Duplicate email should be rejected")
	require.ErrorIs(t, err, authsdk.ErrEmailTaken)
	require.Equal(t, "Email already registered", authErr.Message)
}

// TestRegisterValidation verifies the server applies the same field rules
// as the client forms.
func TestRegisterValidation(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	req := registerRequest("not-an-email")
	req.FirstName = ""
	req.Password = "123"
	req.DateOfBirth = "10/09/1993"

	_, err := client.Register(t.Context(), req)
	authErr := assertStatus(t, err, http.StatusBadRequest, "Invalid registration should be rejected")

	require.Equal(t, "Invalid request", authErr.Message)
	require.Contains(t, authErr.Fields, "firstName")
	require.Contains(t, authErr.Fields, "email")
	require.Contains(t, authErr.Fields, "password")
	require.Contains(t, authErr.Fields, "dateOfBirth")
	require.NotContains(t, authErr.Fields, "lastName")
}
