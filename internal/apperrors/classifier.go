// Package apperrors translates the backend's free-text error strings into
// a stable, finite set of user-facing categories. The backend signals
// business failures through message wording rather than error codes, so
// this table is the only place that wording is allowed to matter. New
// backend phrasing means a new rule here, never a change at a call site.
package apperrors

import "strings"

// Category is a stable user-facing error class.
type Category string

const (
	UsernameTaken          Category = "USERNAME_TAKEN"
	EmailTaken             Category = "EMAIL_TAKEN"
	PasswordTooShort       Category = "PASSWORD_TOO_SHORT"
	PasswordNeedsUppercase Category = "PASSWORD_NEEDS_UPPERCASE"
	PasswordNeedsLowercase Category = "PASSWORD_NEEDS_LOWERCASE"
	PasswordNeedsNumber    Category = "PASSWORD_NEEDS_NUMBER"
	PasswordNeedsSpecial   Category = "PASSWORD_NEEDS_SPECIAL"
	InvalidEmail           Category = "INVALID_EMAIL"
	InvalidUsername        Category = "INVALID_USERNAME"
	UserNotFound           Category = "USER_NOT_FOUND"
	WrongPassword          Category = "WRONG_PASSWORD"
	InvalidCredentials     Category = "INVALID_CREDENTIALS"
	AuthRequired           Category = "AUTH_REQUIRED"
	SessionExpired         Category = "SESSION_EXPIRED"
	InvalidCurrency        Category = "INVALID_CURRENCY"
	AccountLimitReached    Category = "ACCOUNT_LIMIT_REACHED"
	ServiceUnavailable     Category = "SERVICE_UNAVAILABLE"
	NetworkError           Category = "NETWORK_ERROR"
	GenericFailure         Category = "GENERIC_FAILURE"
)

// rule matches when every substring in all is present and, if any is
// non-empty, at least one of its substrings is present too.
type rule struct {
	all      []string
	any      []string
	category Category
}

// Rules are evaluated top to bottom; the first match wins, so the more
// specific patterns sit above the broad ones.
var rules = []rule{
	{all: []string{"duplicate key", "users_pkey"}, category: UsernameTaken},
	{all: []string{"duplicate key", "email"}, category: EmailTaken},
	{all: []string{"password"}, any: []string{"length", "short"}, category: PasswordTooShort},
	{all: []string{"password", "uppercase"}, category: PasswordNeedsUppercase},
	{all: []string{"password", "lowercase"}, category: PasswordNeedsLowercase},
	{all: []string{"password"}, any: []string{"number", "digit"}, category: PasswordNeedsNumber},
	{all: []string{"password", "special"}, category: PasswordNeedsSpecial},
	{all: []string{"email", "invalid"}, category: InvalidEmail},
	{all: []string{"username", "invalid"}, category: InvalidUsername},
	{all: []string{"username"}, any: []string{"short", "length"}, category: InvalidUsername},
	{any: []string{"user not found", "no rows in result set"}, category: UserNotFound},
	{any: []string{"invalid password", "incorrect password"}, category: WrongPassword},
	{all: []string{"invalid credentials"}, category: InvalidCredentials},
	{any: []string{"missing authorization", "unauthorized"}, category: AuthRequired},
	{any: []string{"invalid access token", "token is invalid", "expired token"}, category: SessionExpired},
	{all: []string{"token", "invalid"}, category: SessionExpired},
	{all: []string{"currency", "invalid"}, category: InvalidCurrency},
	{any: []string{"account limit", "maximum accounts"}, category: AccountLimitReached},
	{all: []string{"database"}, category: ServiceUnavailable},
	{any: []string{"network", "connection", "timeout"}, category: NetworkError},
}

// Classify maps a raw backend message to its category. Matching is
// case-insensitive; an empty or unrecognized message is a GenericFailure.
func Classify(rawMessage string) Category {
	msg := strings.ToLower(rawMessage)
	if msg == "" {
		return GenericFailure
	}

	for _, r := range rules {
		if matches(msg, r) {
			return r.category
		}
	}
	return GenericFailure
}

func matches(msg string, r rule) bool {
	for _, needle := range r.all {
		if !strings.Contains(msg, needle) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, needle := range r.any {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

var messages = map[Category]string{
	UsernameTaken:          "Username already exists. Please choose a different username.",
	EmailTaken:             "Email address already registered. Please use a different email.",
	PasswordTooShort:       "Password must be at least 8 characters long.",
	PasswordNeedsUppercase: "Password must include at least one uppercase letter.",
	PasswordNeedsLowercase: "Password must include at least one lowercase letter.",
	PasswordNeedsNumber:    "Password must include at least one number.",
	PasswordNeedsSpecial:   "Password must include at least one special character (!@#$%^&*).",
	InvalidEmail:           "Please enter a valid email address.",
	InvalidUsername:        "Username must be at least 3 characters: letters, numbers, and underscores only.",
	UserNotFound:           "Username not found. Please check your username or create an account.",
	WrongPassword:          "Incorrect password. Please try again.",
	InvalidCredentials:     "Invalid username or password. Please try again.",
	AuthRequired:           "Please login first.",
	SessionExpired:         "Session expired. Please login again.",
	InvalidCurrency:        "Please select a valid currency.",
	AccountLimitReached:    "You have reached the maximum number of accounts allowed.",
	ServiceUnavailable:     "Service temporarily unavailable. Please try again later.",
	NetworkError:           "Connection error. Please check your internet and try again.",
	GenericFailure:         "Something went wrong. Please try again.",
}

// Message returns the friendly text the UI renders for a category.
func (c Category) Message() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return messages[GenericFailure]
}

// FriendlyMessage is the one-step helper views use: classify, then render.
func FriendlyMessage(rawMessage string) string {
	return Classify(rawMessage).Message()
}
