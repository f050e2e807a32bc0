package core

import (
	"context"

	"github.com/pkg/errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type (
	// Identity is a verified external identity-provider session.
	Identity struct {
		UID   string
		Email string
	}

	// IdentityProvider wraps the external identity/organization service.
	//
	// CreateMembership and UpdateUserMetadata are best-effort from the
	// caller's perspective: the provisioning workflow logs their errors and
	// carries on, so the external record may lag the database.
	IdentityProvider interface {
		// VerifyToken resolves a raw bearer token into a verified Identity.
		VerifyToken(ctx context.Context, rawToken string) (Identity, error)

		// CreateMembership adds the identity to the external organization
		// with a role-derived membership label.
		CreateMembership(ctx context.Context, orgID, uid, role string) error

		// UpdateUserMetadata writes role/school/permission metadata onto the
		// external identity record.
		UpdateUserMetadata(ctx context.Context, uid string, metadata map[string]interface{}) error
	}
)
