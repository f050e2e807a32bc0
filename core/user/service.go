package user

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/school"
)

var (
	// errors
	ErrNotFound          = errors.New("user not found")
	ErrEmailTaken        = errors.New("a user with this email already exists")
	ErrAlreadyRegistered = errors.New("account already registered")
	ErrUnknownRole       = errors.New("unknown role")
)

type (
	GetFilter struct {
		ID    string
		UID   string
		Email string
	}

	Repository interface {
		// CreateUser inserts usr together with its Profile row in a single
		// transaction; both commit or neither does. The store enforces
		// uniqueness of email and uid.
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, filter GetFilter) (User, error)
		// QueryUsers applies AND on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of
		// FirstName, LastName or Email. Results are ordered by
		// (last_name, first_name) ascending, byte-wise, and are enriched
		// with the school summary and the profile relation.
		QueryUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		SetUserActive(ctx context.Context, id string, active bool) (User, error)
	}

	ServiceInterface interface {
		Provision(ctx context.Context, ident core.Identity, nu NewUser) (User, error)
		Query(ctx context.Context, caller User, filter QueryFilter) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByUID(ctx context.Context, uid string) (User, error)
		SetActive(ctx context.Context, caller User, id string, active bool) (User, error)
	}

	service struct {
		repo    Repository
		schools school.Repository
		idp     core.IdentityProvider
		mailSvc core.EmailService
		logger  core.Logger
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(
	repo Repository,
	schools school.Repository,
	idp core.IdentityProvider,
	mailSvc core.EmailService,
	logger core.Logger,
) ServiceInterface {
	return &service{
		repo:    repo,
		schools: schools,
		idp:     idp,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

// Provision creates a User and its role profile. The caller's identity
// decides the branch: an identity without a User row claims its own account
// (self-registration); a registered caller must be a principal provisioning
// an unclaimed account within their own school.
func (svc *service) Provision(ctx context.Context, ident core.Identity, nu NewUser) (User, error) {
	caller, err := svc.repo.GetUser(ctx, GetFilter{UID: ident.UID})
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return User{}, errors.Wrap(err, "resolving caller")
		}
		return svc.selfRegister(ctx, ident, nu)
	}
	return svc.provisionForSchool(ctx, caller, nu)
}

func (svc *service) selfRegister(ctx context.Context, ident core.Identity, nu NewUser) (User, error) {
	sch, err := svc.schools.GetSchoolByID(ctx, nu.SchoolID)
	if err != nil {
		return User{}, err
	}
	if err = svc.checkEmailFree(ctx, nu.Email, ident.UID); err != nil {
		return User{}, err
	}

	// Best-effort external sync: membership and metadata failures are logged
	// and swallowed so that registration still succeeds.
	if sch.OrgID != "" {
		if err := svc.idp.CreateMembership(ctx, sch.OrgID, ident.UID, membershipRole(nu.Role)); err != nil {
			svc.logger.Warn("creating org membership", err, map[string]interface{}{"uid": ident.UID, "org": sch.OrgID})
		}
		if err := svc.idp.UpdateUserMetadata(ctx, ident.UID, map[string]interface{}{
			"role":      nu.Role,
			"school_id": sch.ID,
			"org_id":    sch.OrgID,
		}); err != nil {
			svc.logger.Warn("updating identity metadata", err, map[string]interface{}{"uid": ident.UID})
		}
	}

	return svc.create(ctx, nu, ident.UID, true /* active */)
}

func (svc *service) provisionForSchool(ctx context.Context, caller User, nu NewUser) (User, error) {
	if !caller.IsPrincipal() {
		return User{}, core.ErrPermissionDenied
	}
	if nu.SchoolID != caller.SchoolID {
		// principals only provision within their own school
		return User{}, core.ErrPermissionDenied
	}

	sch, err := svc.schools.GetSchoolByID(ctx, nu.SchoolID)
	if err != nil {
		return User{}, err
	}
	if err = svc.checkEmailFree(ctx, nu.Email, "" /* no identity yet */); err != nil {
		return User{}, err
	}

	// provisioned but not yet claimed; activation happens when the invitee
	// self-registers against the identity provider
	usr, err := svc.create(ctx, nu, "" /* uid */, false /* active */)
	if err != nil {
		return User{}, err
	}
	svc.sendInviteMail(usr, sch)
	return usr, nil
}

func (svc *service) create(ctx context.Context, nu NewUser, uid string, active bool) (User, error) {
	profile, err := nu.newProfile()
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		UID:       uid,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Email:     nu.Email,
		Role:      nu.Role,
		SchoolID:  nu.SchoolID,
		IsActive:  active,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	usr, err = svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

// checkEmailFree fails when the email is held by a user whose external
// identity differs from uid. A match on the caller's own uid means the
// account was already claimed.
func (svc *service) checkEmailFree(ctx context.Context, email, uid string) error {
	existing, err := svc.repo.GetUser(ctx, GetFilter{Email: email})
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil
		}
		return errors.Wrap(err, "checking email uniqueness")
	}
	if uid != "" && existing.UID == uid {
		return ErrAlreadyRegistered
	}
	return core.NewValidationError(ErrEmailTaken, core.FieldError{Field: "email", Error: ErrEmailTaken.Error()})
}

func (svc *service) Query(ctx context.Context, caller User, filter QueryFilter) ([]User, error) {
	filter.Clean()
	filter.SchoolID = caller.SchoolID
	active := true
	filter.IsActive = &active
	return svc.repo.QueryUsers(ctx, filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *service) GetByUID(ctx context.Context, uid string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{UID: uid})
}

// SetActive flips the reversible is_active flag; rows are never deleted.
func (svc *service) SetActive(ctx context.Context, caller User, id string, active bool) (User, error) {
	if !caller.IsPrincipal() {
		return User{}, core.ErrPermissionDenied
	}
	target, err := svc.repo.GetUser(ctx, GetFilter{ID: id})
	if err != nil {
		return User{}, err
	}
	if target.SchoolID != caller.SchoolID || target.ID == caller.ID {
		return User{}, core.ErrPermissionDenied
	}
	return svc.repo.SetUserActive(ctx, id, active)
}

func (svc *service) sendInviteMail(usr User, sch school.School) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.FirstName + " " + usr.LastName, Address: usr.Email}},
		Subject:      "Your " + sch.Name + " account is ready",
		TemplateName: "account-invite",
		TemplateData: struct {
			FirstName  string
			SchoolName string
		}{usr.FirstName, sch.Name},
	})
}

// membershipRole derives the external organization role label.
func membershipRole(role string) string {
	return strings.ToLower(role)
}
