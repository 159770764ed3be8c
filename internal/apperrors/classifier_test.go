package apperrors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name    string
		message string
		want    Category
	}{
		{
			name:    "duplicate username",
			message: "duplicate key value violates unique constraint users_pkey",
			want:    UsernameTaken,
		},
		{
			name:    "duplicate email",
			message: `duplicate key value violates unique constraint "users_email_key"`,
			want:    EmailTaken,
		},
		{
			name:    "password too short",
			message: "password length must be at least 8",
			want:    PasswordTooShort,
		},
		{
			name:    "password needs uppercase",
			message: "password must contain an uppercase letter",
			want:    PasswordNeedsUppercase,
		},
		{
			name:    "password needs digit",
			message: "password must contain at least one digit",
			want:    PasswordNeedsNumber,
		},
		{
			name:    "invalid email",
			message: "email: must be a valid email address, invalid format",
			want:    InvalidEmail,
		},
		{
			name:    "user not found",
			message: "user not found",
			want:    UserNotFound,
		},
		{
			name:    "pgx no rows",
			message: "no rows in result set",
			want:    UserNotFound,
		},
		{
			name:    "wrong password",
			message: "incorrect password",
			want:    WrongPassword,
		},
		{
			name:    "missing authorization header",
			message: "missing authorization header",
			want:    AuthRequired,
		},
		{
			name:    "expired session",
			message: "invalid access token",
			want:    SessionExpired,
		},
		{
			name:    "token invalid in any order",
			message: "provided token is not valid, invalid signature",
			want:    SessionExpired,
		},
		{
			name:    "invalid currency",
			message: "currency EURO is invalid",
			want:    InvalidCurrency,
		},
		{
			name:    "account limit",
			message: "account limit reached for this user",
			want:    AccountLimitReached,
		},
		{
			name:    "database down",
			message: "database connection refused",
			want:    ServiceUnavailable,
		},
		{
			name:    "plain connection error",
			message: "connection refused",
			want:    NetworkError,
		},
		{
			name:    "timeout",
			message: "network error calling GET /v1/accounts: timeout",
			want:    NetworkError,
		},
		{
			name:    "unrecognized",
			message: "flux capacitor misaligned",
			want:    GenericFailure,
		},
		{
			name:    "empty",
			message: "",
			want:    GenericFailure,
		},
		{
			name:    "case insensitive",
			message: "DUPLICATE KEY value violates UNIQUE constraint USERS_PKEY",
			want:    UsernameTaken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.message))
		})
	}
}

// First match wins: a message mentioning both a duplicate user key and a
// connection problem is still a duplicate-username error, because that
// rule sits higher in the table.
func TestClassifyFirstMatchWins(t *testing.T) {
	got := Classify("duplicate key users_pkey while retrying connection")
	require.Equal(t, UsernameTaken, got)
}

func TestCategoryMessage(t *testing.T) {
	require.Equal(t, "Username already exists. Please choose a different username.", UsernameTaken.Message())
	require.Equal(t, GenericFailure.Message(), Category("NO_SUCH_CATEGORY").Message())
	require.NotEmpty(t, FriendlyMessage("anything at all"))

	// Every category has a friendly message.
	for category := range messages {
		require.NotEmpty(t, category.Message())
	}
}
