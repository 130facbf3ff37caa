package utils

import "github.com/go-playground/validator/v10"

const OrganizationName = "Handshake"

// Vite dev-server origin, allowed when the cors_high_security flag is off.
const CORSLowSecurityAllowedOriginLocalhost = "http://localhost:5173"

// Validate is the shared struct validator used by all controllers.
var Validate = validator.New()

// Ptr returns a pointer to v. Handy for optional struct fields.
func Ptr[T any](v T) *T {
	return &v
}
