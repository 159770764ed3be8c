package controllers

import (
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/logging"
)

func TestMain(m *testing.M) {
	logging.SetOutput(zerolog.New(io.Discard))
	os.Exit(m.Run())
}
