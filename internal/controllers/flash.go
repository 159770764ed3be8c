package controllers

import (
	"errors"
	"sync"
	"time"

	"vaultguard-client/internal/apperrors"
	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/validator"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Flash holds one user-facing message per view, auto-dismissed after a
// fixed interval. Showing a new message cancels the pending dismissal, so
// the latest message always gets its full time on screen.
type Flash struct {
	mu    sync.Mutex
	text  string
	level Level
	ttl   time.Duration
	timer *time.Timer
}

func NewFlash(ttl time.Duration) *Flash {
	return &Flash{ttl: ttl}
}

func (f *Flash) Show(text string, level Level) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.text = text
	f.level = level
	if f.timer != nil {
		f.timer.Stop()
	}
	if f.ttl > 0 {
		f.timer = time.AfterFunc(f.ttl, f.Clear)
	}
}

// ShowError routes any failure to the right presentation: local validation
// errors are shown verbatim, everything remote goes through the classifier.
func (f *Flash) ShowError(err error) {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		f.Show(vErr.Reason, LevelWarning)
		return
	}
	f.Show(apperrors.FriendlyMessage(gateway.RemoteMessage(err)), LevelDanger)
}

func (f *Flash) Get() (string, Level, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.level, f.text != ""
}

func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = ""
	f.level = ""
}
