package controllers

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/models"
	"vaultguard-client/internal/session"
)

var ErrMissingVerifyParams = errors.New("invalid verification link: missing required parameters")

// AuthController drives login, registration, email verification and
// logout. It is the only writer of the session store besides the
// gateway's forced logout.
type AuthController struct {
	gw      *gateway.Client
	session *session.Store
	Flash   *Flash
	log     zerolog.Logger
}

func NewAuthController(gw *gateway.Client, flash *Flash) *AuthController {
	return &AuthController{
		gw:      gw,
		session: gw.Session(),
		Flash:   flash,
		log:     logging.ForComponent("auth"),
	}
}

// Login exchanges credentials for an access token and persists it together
// with the username.
func (c *AuthController) Login(username, password string) error {
	resp, err := c.gw.LoginUser(models.LoginUserRequest{Username: username, Password: password})
	if err != nil {
		c.Flash.ShowError(err)
		return err
	}

	cred := session.Credential{Token: resp.AccessToken, Username: username}
	if err := c.session.Set(cred); err != nil {
		c.log.Error().Err(err).Msg("failed to persist credential")
		c.Flash.Show("Login succeeded but the session could not be saved.", LevelDanger)
		return err
	}

	c.log.Info().Str("username", username).Msg("logged in")
	c.Flash.Show(fmt.Sprintf("Welcome back, %s!", username), LevelSuccess)
	return nil
}

// Logout drops the persisted credential. Safe to call when not logged in.
func (c *AuthController) Logout() error {
	cleared, err := c.session.Clear()
	if err != nil {
		return err
	}
	if cleared {
		c.log.Info().Msg("logged out")
	}
	return nil
}

// Register creates a new user; the account stays unusable until the
// emailed verification link is followed.
func (c *AuthController) Register(username, fullName, email, password string) error {
	req := models.CreateUserRequest{
		Username: username,
		Password: password,
		FullName: fullName,
		Email:    email,
	}
	if _, err := c.gw.CreateUser(req); err != nil {
		c.Flash.ShowError(err)
		return err
	}

	c.log.Info().Str("username", username).Msg("user registered")
	c.Flash.Show(fmt.Sprintf("Account created! A verification link has been sent to %s.", email), LevelSuccess)
	return nil
}

// VerifyEmail confirms the address using the link parameters. Both are
// required; a link missing either is rejected locally.
func (c *AuthController) VerifyEmail(emailID int64, secretCode string) error {
	if emailID <= 0 || secretCode == "" {
		c.Flash.Show(ErrMissingVerifyParams.Error(), LevelDanger)
		return ErrMissingVerifyParams
	}

	resp, err := c.gw.VerifyEmail(models.VerifyEmailRequest{EmailID: emailID, SecretCode: secretCode})
	if err != nil {
		c.Flash.ShowError(err)
		return err
	}

	message := resp.Message
	if message == "" {
		message = "Email verified successfully! You can now log in."
	}
	c.Flash.Show(message, LevelSuccess)
	return nil
}

// Username returns the logged-in username, if any.
func (c *AuthController) Username() (string, bool) {
	cred, ok := c.session.Get()
	if !ok {
		return "", false
	}
	return cred.Username, true
}
