package user

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidRole  = errors.New("invalid role")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

func NewRole(value string) (Role, error) {
	r := Role(value)
	if r != RoleCustomer && r != RoleOwner {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ]{8,14}$`)

type Phone string

func NewPhone(value string) (Phone, error) {
	value = strings.TrimSpace(value)
	if !phonePattern.MatchString(value) {
		return "", ErrInvalidPhone
	}
	return Phone(value), nil
}

func (p Phone) String() string {
	return string(p)
}

// User is either a customer (phone + OTP login) or a venue owner (phone +
// bcrypt password for the dashboard).
type User struct {
	id           uuid.UUID
	phone        Phone
	name         string
	role         Role
	passwordHash *string // owners only
	active       bool
	lastLogin    *time.Time
	createdAt    time.Time
}

func NewCustomer(phone Phone, name string) *User {
	return &User{
		id:     uuid.New(),
		phone:  phone,
		name:   name,
		role:   RoleCustomer,
		active: true,
	}
}

func NewOwner(phone Phone, name string, passwordHash string) *User {
	return &User{
		id:           uuid.New(),
		phone:        phone,
		name:         name,
		role:         RoleOwner,
		passwordHash: &passwordHash,
		active:       true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	phone Phone,
	name string,
	role Role,
	passwordHash *string,
	active bool,
	lastLogin *time.Time,
	createdAt time.Time,
) *User {
	return &User{
		id:           id,
		phone:        phone,
		name:         name,
		role:         role,
		passwordHash: passwordHash,
		active:       active,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
	}
}

func (u *User) RecordLogin(now time.Time) {
	u.lastLogin = &now
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Phone() Phone          { return u.phone }
func (u *User) Name() string          { return u.name }
func (u *User) Role() Role            { return u.role }
func (u *User) PasswordHash() *string { return u.passwordHash }
func (u *User) IsActive() bool        { return u.active }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
