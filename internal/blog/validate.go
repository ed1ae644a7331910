package blog

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Field length limits, matching the table constraints.
const (
	MaxNameLength    = 255
	MaxEmailLength   = 255
	MaxBioLength     = 1000
	MaxTitleLength   = 500
	DefaultPostLimit = 50
	MaxPostLimit     = 100
)

// Sentinel errors for the blog store.
var (
	// ErrValidation indicates bad input shape or range, caught before any
	// store mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an entity lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates a unique constraint violation on email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// emailPattern is a pragmatic check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, MaxNameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > MaxEmailLength {
		return fmt.Errorf("%w: email exceeds %d characters", ErrValidation, MaxEmailLength)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: malformed email %q", ErrValidation, email)
	}
	return nil
}

func validateBio(bio *string) error {
	if bio != nil && utf8.RuneCountInString(*bio) > MaxBioLength {
		return fmt.Errorf("%w: bio exceeds %d characters", ErrValidation, MaxBioLength)
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is empty", ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, MaxTitleLength)
	}
	return nil
}

func validatePostContent(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content is empty", ErrValidation)
	}
	return nil
}

func (u NewUser) validate() error {
	if err := validateName(u.Name); err != nil {
		return err
	}
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	return validateBio(u.Bio)
}

func (u UserUpdate) validate() error {
	if u.Name != nil {
		if err := validateName(*u.Name); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := validateEmail(*u.Email); err != nil {
			return err
		}
	}
	return validateBio(u.Bio)
}

func (p NewPost) validate() error {
	if p.UserID < 1 {
		return fmt.Errorf("%w: userId must be positive", ErrValidation)
	}
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	return validatePostContent(p.Content)
}

func (p PostUpdate) validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Content != nil {
		if err := validatePostContent(*p.Content); err != nil {
			return err
		}
	}
	return nil
}
