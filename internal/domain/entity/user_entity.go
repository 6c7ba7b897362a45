package entity

import (
	"fmt"
	"strings"
	"time"
)

// User is the aggregate root for the user domain. All mutation goes through
// transition methods that return a fresh value; the stored fields are never
// written in place.
type User struct {
	ID        UserID
	Email     Email
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a generated id and both timestamps set to now.
func NewUser(email Email, firstName, lastName string) (User, error) {
	if err := validateNames(firstName, lastName); err != nil {
		return User{}, err
	}
	now := time.Now().UTC()
	return User{
		ID:        NewUserID(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateProfile returns a copy with the new names and UpdatedAt advanced.
// ID, Email and CreatedAt carry over unchanged.
func (u User) UpdateProfile(firstName, lastName string) (User, error) {
	if err := validateNames(firstName, lastName); err != nil {
		return User{}, err
	}
	next := u
	next.FirstName = firstName
	next.LastName = lastName
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// FullName joins first and last name for display purposes.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func validateNames(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("%w: first name cannot be blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: last name cannot be blank", ErrInvalidArgument)
	}
	return nil
}
