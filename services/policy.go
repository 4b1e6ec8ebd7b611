package services

import (
	"context"
	"errors"
	"strings"

	"irisweb/common"
	"irisweb/models"
)

// Policy decides which account mutations a user may perform. The reserved
// username is the one the admin account was bootstrapped with.
type Policy struct {
	users            *UserRepository
	reservedUsername string
}

func NewPolicy(users *UserRepository, reservedUsername string) *Policy {
	return &Policy{users: users, reservedUsername: reservedUsername}
}

var (
	ErrAdminRenameDenied = errors.New("admin username is immutable")
	ErrReservedUsername  = errors.New("username is reserved")
)

// AuthorizeUsernameChange applies the rename rules in precedence order:
// admin identity is pinned, the reserved name is off limits to everyone
// else, and the name must not belong to a different user.
func (p *Policy) AuthorizeUsernameChange(ctx context.Context, actor *models.User, newUsername string) error {
	if actor.IsAdmin() && newUsername != actor.Username {
		return ErrAdminRenameDenied
	}
	if strings.EqualFold(newUsername, p.reservedUsername) && !actor.IsAdmin() {
		return ErrReservedUsername
	}

	existing, err := p.users.FindByUsername(ctx, newUsername)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != actor.ID {
		return common.ErrConflict
	}
	return nil
}

// AuthorizeRegistration denies the reserved admin username to any
// registrant, case-insensitively.
func (p *Policy) AuthorizeRegistration(username string) error {
	if strings.EqualFold(username, p.reservedUsername) {
		return ErrReservedUsername
	}
	return nil
}
