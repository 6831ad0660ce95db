package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxDisplayNameLength = 100

type User struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
}

// Rename trims name and sets it as the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name is required")
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return fmt.Errorf("display name must be at most %d characters", MaxDisplayNameLength)
	}
	u.DisplayName = name
	return nil
}
