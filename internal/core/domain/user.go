package domain

// Roles as the backend stores them.
const (
	RoleAdmin  = "Administrator"
	RoleMaster = "Master"
	RoleClient = "Client"
)

// User is a backend account. The console never sees password material.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// IsClient reports whether the user may be booked as a client.
func (u User) IsClient() bool { return u.Role == RoleClient }

// Session is the ambient identity of the operator, minted by the external
// auth collaborator. The console only reads it.
type Session struct {
	UserID   int64
	Username string
	Role     string
}

// ClientID returns the session's user id when the session designates an
// acting client, and false otherwise.
func (s *Session) ClientID() (int64, bool) {
	if s == nil || s.Role != RoleClient || s.UserID <= 0 {
		return 0, false
	}
	return s.UserID, true
}
