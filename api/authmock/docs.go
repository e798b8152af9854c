// Package authmock holds the OpenAPI document for the mock auth service,
// served by http-swagger at /swagger/.
//
// Regenerate with: swag init -g internal/auth/http/router.go -o api/authmock
package authmock

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/matchday"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/.well-known/jwks.json": {
            "get": {
                "description": "Returns the JSON Web Key Set used to verify JWTs.",
                "produces": ["application/json"],
                "tags": ["well-known"],
                "summary": "Get JWKS",
                "responses": {
                    "200": {
                        "description": "The JSON Web Key Set",
                        "schema": {"$ref": "#/definitions/authsdk.JWKSResponse"}
                    }
                }
            }
        },
        "/api/login": {
            "post": {
                "description": "Exchanges an email and password for a session token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "token, user", "schema": {"$ref": "#/definitions/authsdk.AuthResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revokes the bearer token. Revoking an already revoked token succeeds.",
                "tags": ["Session"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "Revoked"},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}}
                }
            }
        },
        "/api/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the profile of the authenticated user.",
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/authsdk.User"}},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}}
                }
            }
        },
        "/api/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Exchanges the bearer token for a new one. Expired tokens are accepted during the refresh grace period, and each token can be exchanged once.",
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Refresh a session token",
                "responses": {
                    "200": {"description": "token, user", "schema": {"$ref": "#/definitions/authsdk.AuthResponse"}},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}}
                }
            }
        },
        "/api/register": {
            "post": {
                "description": "Creates an account and logs it in.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Register",
                "parameters": [
                    {
                        "description": "New account",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "token, user", "schema": {"$ref": "#/definitions/authsdk.AuthResponse"}},
                    "400": {"description": "Invalid request, with per-field details", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/authsdk.ErrorBody"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe endpoint returning basic service health status, uptime, and version information\nAlways 200 OK while the process is serving",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe endpoint returning service health status and checks for critical dependencies\nIncludes uptime, version, and the status of the database and signing keys",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "authsdk.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "eyJhbGciOiJFZERTQSIs..."},
                "user": {"$ref": "#/definitions/authsdk.User"}
            }
        },
        "authsdk.ErrorBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Invalid email or password"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "authsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "signer": {"type": "string"}
            }
        },
        "authsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/authsdk.HealthChecks"},
                "status": {"type": "string", "example": "ok"},
                "uptime": {"type": "string", "example": "1h23m45s"},
                "version": {"type": "string", "example": "dev"}
            }
        },
        "authsdk.JWKSResponse": {
            "type": "object",
            "properties": {
                "keys": {"type": "array", "items": {"$ref": "#/definitions/jwtx.JWK"}}
            }
        },
        "authsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "sam@example.com"},
                "password": {"type": "string", "example": "hunter22"}
            }
        },
        "authsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "dateOfBirth": {"type": "string", "example": "1993-09-10"},
                "email": {"type": "string", "example": "sam@example.com"},
                "firstName": {"type": "string", "example": "Sam"},
                "gender": {"type": "string", "example": "female"},
                "lastName": {"type": "string", "example": "Kerr"},
                "password": {"type": "string", "example": "hunter22"}
            }
        },
        "authsdk.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "dateOfBirth": {"type": "string", "example": "1993-09-10"},
                "email": {"type": "string", "example": "sam@example.com"},
                "firstName": {"type": "string", "example": "Sam"},
                "gender": {"type": "string", "example": "female"},
                "id": {"type": "string", "example": "01HZX4Q6M3V0Q9K1TB4E3S5N7R"},
                "lastName": {"type": "string", "example": "Kerr"},
                "updatedAt": {"type": "string"}
            }
        },
        "jwtx.JWK": {
            "type": "object",
            "properties": {
                "alg": {"type": "string"},
                "crv": {"type": "string"},
                "kid": {"type": "string"},
                "kty": {"type": "string"},
                "use": {"type": "string"},
                "x": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Matchday Mock Auth Service API",
	Description:      "Email and password authentication for the matchday client.\n\nSession tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
