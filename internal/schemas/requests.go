package schemas

// NewUserRequest is the request data to register a new account. Login reuses
// the same shape.
type NewUserRequest struct {
	Username,
	Password string
}

// RegistrationResponse is returned on a successful registration.
type RegistrationResponse struct {
	UserID,
	Username string
}

// LoginResponse carries the bearer token the client persists, plus the
// profile fields it stores alongside.
type LoginResponse struct {
	Token    string
	UserID   string
	Username string
}

// StatusResponse is the authenticated user's view of the server.
type StatusResponse struct {
	Username string
	Floors   []string
	Online   int
}
