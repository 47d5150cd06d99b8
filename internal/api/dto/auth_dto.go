package dto

// CredentialsRequest is the payload for signup and login.
type CredentialsRequest struct {
	Handle string `json:"handle"`
	Secret string `json:"secret"`
}

// AccountResponse is the public view of an account. It never carries the
// password digest.
type AccountResponse struct {
	ID     int64  `json:"id"`
	Handle string `json:"handle"`
}

// AuthResponse is returned from signup and login.
type AuthResponse struct {
	Message string          `json:"message"`
	Account AccountResponse `json:"account"`
	Token   string          `json:"token"`
}
