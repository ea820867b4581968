package character

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// MinAge and MaxAge bound an accepted character age, inclusive.
	MinAge = 1
	MaxAge = 120
)

var (
	// ErrInvalidAge is returned for ages outside [MinAge, MaxAge] or non-numeric input.
	ErrInvalidAge = errors.New("age must be a whole number from 1 to 120")
	// ErrInvalidName is returned for blank names.
	ErrInvalidName = errors.New("name must not be blank")
)

// ID uniquely identifies a character and seeds its attribute generation.
type ID uuid.UUID

// NewID returns a random (version 4) ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical textual form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("parsing character id: %w", err)
	}
	return ID(u), nil
}

// Seed returns the low 64 bits of the ID (bytes 8 through 15, big-endian)
// reinterpreted as a signed integer.
//
// Postcondition: equal IDs always yield equal seeds.
func (id ID) Seed() int64 {
	return int64(binary.BigEndian.Uint64(id[8:]))
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Age is a validated character age in years.
type Age int

// NewAge validates n.
//
// Postcondition: Returns an Age in [MinAge, MaxAge] or an error wrapping ErrInvalidAge.
func NewAge(n int) (Age, error) {
	if n < MinAge || n > MaxAge {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidAge, n)
	}
	return Age(n), nil
}

// ParseAge parses and validates user input such as " 25 ".
func ParseAge(s string) (Age, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: got empty input", ErrInvalidAge)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidAge, trimmed)
	}
	return NewAge(n)
}

func (a Age) Int() int { return int(a) }

// Name is a non-blank character name with surrounding whitespace removed.
type Name string

// NewName trims s and rejects blank results with ErrInvalidName.
func NewName(s string) (Name, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return Name(trimmed), nil
}

func (n Name) String() string { return string(n) }
