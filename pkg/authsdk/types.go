package authsdk

import (
	"time"

	"github.com/aussiebroadwan/matchday/pkg/jwtx"
)

// User is the profile returned alongside every session token.
type User struct {
	ID          string    `json:"id" example:"01HZX4Q6M3V0Q9K1TB4E3S5N7R"`
	FirstName   string    `json:"firstName" example:"Sam"`
	LastName    string    `json:"lastName" example:"Kerr"`
	Email       string    `json:"email" example:"sam@example.com"`
	DateOfBirth string    `json:"dateOfBirth" example:"1993-09-10"`
	Gender      string    `json:"gender" example:"female"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisplayName is "First Last", falling back to the email.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" example:"sam@example.com"`
	Password string `json:"password" example:"hunter22"`
}

// RegisterRequest is the body of POST /api/register. It never carries the
// confirmation password.
type RegisterRequest struct {
	FirstName   string `json:"firstName" example:"Sam"`
	LastName    string `json:"lastName" example:"Kerr"`
	Email       string `json:"email" example:"sam@example.com"`
	Password    string `json:"password" example:"hunter22"`
	DateOfBirth string `json:"dateOfBirth" example:"1993-09-10"`
	Gender      string `json:"gender" example:"female"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJFZERTQSIs..."`
	User  User   `json:"user"`
}

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Message string            `json:"message" example:"Invalid email or password"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HealthResponse is served by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"dev"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the dependencies /readyz looks at.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the body of /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
