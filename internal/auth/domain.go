package auth

// Record is the stored identity a bearer token refers to.
type Record struct {
	ID       string
	Role     string
	TenantID string
	// Permissions is the raw custom permission payload. It is untrusted and
	// parsed leniently.
	Permissions []byte
	IsActive    bool
}
