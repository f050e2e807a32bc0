// Package identitysvc implements core.IdentityProvider against Firebase
// Auth. Organization membership and user metadata both live in the identity
// record's custom claims, which downstream clients read straight from the ID
// token.
package identitysvc

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/shulehub/shule/core"
)

const (
	orgClaim  = "org_id"
	roleClaim = "org_role"
)

type firebaseProvider struct {
	client *fbauth.Client
}

var _ core.IdentityProvider = (*firebaseProvider)(nil)

func NewFirebaseProvider(ctx context.Context, conf *core.Config) (core.IdentityProvider, error) {
	var opts []option.ClientOption
	if conf.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase auth client")
	}
	return &firebaseProvider{client: client}, nil
}

func (p *firebaseProvider) VerifyToken(ctx context.Context, rawToken string) (core.Identity, error) {
	token, err := p.client.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return core.Identity{}, core.ErrInvalidToken
	}

	ident := core.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	return ident, nil
}

func (p *firebaseProvider) CreateMembership(ctx context.Context, orgID, uid, role string) error {
	return p.mergeClaims(ctx, uid, map[string]interface{}{
		orgClaim:  orgID,
		roleClaim: role,
	})
}

func (p *firebaseProvider) UpdateUserMetadata(ctx context.Context, uid string, metadata map[string]interface{}) error {
	return p.mergeClaims(ctx, uid, metadata)
}

// mergeClaims folds new claims into the identity's existing custom claims;
// SetCustomUserClaims replaces the whole set on every call.
func (p *firebaseProvider) mergeClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	usr, err := p.client.GetUser(ctx, uid)
	if err != nil {
		return errors.Wrap(err, "fetching identity record")
	}

	merged := make(map[string]interface{}, len(usr.CustomClaims)+len(claims))
	for k, v := range usr.CustomClaims {
		merged[k] = v
	}
	for k, v := range claims {
		merged[k] = v
	}

	if err := p.client.SetCustomUserClaims(ctx, uid, merged); err != nil {
		return errors.Wrap(err, "setting custom claims")
	}
	return nil
}
