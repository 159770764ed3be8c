package models

// CreateUserRequest registers a new user. The password travels in the
// clear over TLS; hashing is the server's job.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserInfo is the public slice of a user record.
type UserInfo struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// CreateUserResponse confirms registration; verification happens by email.
type CreateUserResponse struct {
	User    UserInfo `json:"user"`
	Message string   `json:"message"`
}

type LoginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUserResponse carries the access token. The gateway serializes
// proto field names as camelCase, hence the tags.
type LoginUserResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}

// VerifyEmailRequest confirms the address via the emailed link parameters.
type VerifyEmailRequest struct {
	EmailID    int64  `json:"email_id"`
	SecretCode string `json:"secret_code"`
}

type VerifyEmailResponse struct {
	IsVerified bool   `json:"isVerified"`
	Message    string `json:"message"`
}
