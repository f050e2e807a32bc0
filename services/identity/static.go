package identitysvc

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

// StaticProvider is an in-memory core.IdentityProvider for tests and local
// development: a bearer token IS the uid it authenticates, and all writes are
// recorded for assertions.
type StaticProvider struct {
	mu sync.Mutex

	// Fail makes CreateMembership and UpdateUserMetadata return an error;
	// the provisioning workflow must carry on regardless.
	Fail bool

	Memberships []Membership
	Metadata    map[string]map[string]interface{}
}

type Membership struct {
	OrgID string
	UID   string
	Role  string
}

var _ core.IdentityProvider = (*StaticProvider)(nil)

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Metadata: make(map[string]map[string]interface{})}
}

func (p *StaticProvider) VerifyToken(ctx context.Context, rawToken string) (core.Identity, error) {
	if rawToken == "" {
		return core.Identity{}, core.ErrInvalidToken
	}
	return core.Identity{UID: rawToken}, nil
}

func (p *StaticProvider) CreateMembership(ctx context.Context, orgID, uid, role string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Fail {
		return errors.New("identity provider unavailable")
	}
	p.Memberships = append(p.Memberships, Membership{OrgID: orgID, UID: uid, Role: role})
	return nil
}

func (p *StaticProvider) UpdateUserMetadata(ctx context.Context, uid string, metadata map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Fail {
		return errors.New("identity provider unavailable")
	}
	merged, ok := p.Metadata[uid]
	if !ok {
		merged = make(map[string]interface{}, len(metadata))
		p.Metadata[uid] = merged
	}
	for k, v := range metadata {
		merged[k] = v
	}
	return nil
}

// Reset clears recorded calls between test cases.
func (p *StaticProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Fail = false
	p.Memberships = nil
	p.Metadata = make(map[string]map[string]interface{})
}
