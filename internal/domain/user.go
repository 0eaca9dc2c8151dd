package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Username length bounds enforced during registration, counted in runes.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// Password length bounds. The upper bound is bcrypt's practical limit:
// bytes beyond 72 are silently ignored by the hash, so longer passwords
// would give users a false sense of entropy.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// User represents a registered account. The plaintext Password field is
// only populated transiently during registration and login and is never
// persisted or serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // transient plaintext, hashed before storage
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with a fresh ID and UTC timestamps. The caller is
// responsible for hashing the password before handing the user to a store.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields against the registration rules.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	usernameLen := utf8.RuneCountInString(u.Username)
	if usernameLen < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if usernameLen > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		if utf8.RuneCountInString(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		// The upper bound stays in bytes: that is the unit bcrypt caps at.
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
		return nil
	}

	// Existing users loaded from storage carry only the hash.
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}
