/*
Package authsdk is the HTTP client for the matchday auth endpoint, plus the
wire types, error taxonomy and form validation shared by the client and the
local mock service.

# Endpoints

	client := authsdk.NewSDKClient("http://localhost:8080")

	res, err := client.Login(ctx, authsdk.LoginRequest{Email: email, Password: pw})
	res, err = client.Refresh(ctx, res.Token)
	err = client.Logout(ctx, res.Token)

Login and refresh return an AuthResponse holding the new token and the user
profile. Register answers 201, logout 204.

# Errors

Every failed call matches ErrAuthentication:

	if errors.Is(err, authsdk.ErrAuthentication) { ... }

Use errors.As to tell the cases apart:

  - *AuthenticationError: the server answered non-2xx; Message is the
    server's {"message": ...} or the HTTP status text.
  - *NetworkError: no response at all (dial, TLS, timeout, cancellation).

ValidationError is returned by LoginForm and RegistrationForm before any
request is made. TokenDecodeError is produced by pkg/session when a token
cannot be parsed.
*/
package authsdk
