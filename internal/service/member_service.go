package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"ptsportal/api/internal/models"
)

// ErrRoleGrantDenied means the caller is an administrator but not the
// designated service account; only that account may change directory roles.
var ErrRoleGrantDenied = errors.New("role grant denied")

type RoleStore interface {
	UpdateUserType(ctx context.Context, id string, userType models.UserType) error
}

// MemberService isolates the privileged role-grant operation that the officer
// patch endpoint exposes. Keeping it named and separately guarded makes the
// image-update/privilege-grant coupling explicit instead of an inline branch.
type MemberService struct {
	roles          RoleStore
	serviceAccount string
	log            zerolog.Logger
}

func NewMemberService(roles RoleStore, serviceAccount string, log zerolog.Logger) *MemberService {
	return &MemberService{
		roles:          roles,
		serviceAccount: serviceAccount,
		log:            log,
	}
}

// GrantRole updates a user's directory role. The grant takes effect on the
// target's next sign-in; existing tokens keep their enrolled role until they
// expire.
func (s *MemberService) GrantRole(ctx context.Context, actor models.SessionUser, userID string, userType models.UserType) error {
	if s.serviceAccount == "" || actor.Email != s.serviceAccount {
		return ErrRoleGrantDenied
	}
	if userType != models.UserTypeMember && userType != models.UserTypeAdmin {
		return errors.New("unknown user type")
	}

	if err := s.roles.UpdateUserType(ctx, userID, userType); err != nil {
		return err
	}

	s.log.Info().
		Str("actor", actor.Email).
		Str("user_id", userID).
		Str("user_type", string(userType)).
		Msg("directory role updated")
	return nil
}
