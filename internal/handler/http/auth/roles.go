package auth

// Role constants carried in the JWT "role" claim.
const (
	// RoleAdmin may perform every operation.
	RoleAdmin = "admin"
	// RoleWriter may create authors, magazines and articles.
	RoleWriter = "writer"
	// RoleViewer has read-only access.
	RoleViewer = "viewer"
)

// canWrite reports whether role may call mutating endpoints.
func canWrite(role string) bool {
	return role == RoleAdmin || role == RoleWriter
}
