// Package domain contains entity without logic, just meta-data and its validation
package domain

import (
	"errors"
)

const (
	MinNameLen = 2
	MaxNameLen = 20
)

var (
	ErrNameTooShort    = errors.New("name too short")
	ErrNameTooLong     = errors.New("name too long")
	ErrNameInvalidChar = errors.New("name has invalid characters")
)

type (
	DisplayName string
	RoomName    string
)

// ValidateName checks the shared rule for display and room names:
// 2-20 ASCII alphanumerics, '-' or '_'.
func ValidateName(name string) error {
	if len(name) < MinNameLen {
		return ErrNameTooShort
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	for i := 0; i < len(name); i++ {
		if !nameChar(name[i]) {
			return ErrNameInvalidChar
		}
	}
	return nil
}

func ValidName(name string) bool { return ValidateName(name) == nil }

func nameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// NewDisplayName avoids raw conversions in adapters and keeps validation obvious.
func NewDisplayName(name string) (DisplayName, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return DisplayName(name), nil
}

func NewRoomName(name string) (RoomName, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return RoomName(name), nil
}
