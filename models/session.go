package models

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Session is the server-side stand-in for the browser's localStorage: it
// keeps the backend bearer token (sealed) and the admin's theme preference.
type Session struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	SealedToken string    `json:"sealedToken"`
	Theme       Theme     `json:"theme"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
