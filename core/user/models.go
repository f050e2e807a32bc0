package user

import (
	"time"

	"github.com/shulehub/shule/core"
)

// Roles
const (
	RoleStudent   = "STUDENT"
	RoleTeacher   = "TEACHER"
	RoleParent    = "PARENT"
	RolePrincipal = "PRINCIPAL"

	// reserved for future staff tooling; not provisionable via the API yet
	RoleClerk = "CLERK"
	RoleAdmin = "ADMIN"
)

var (
	// AllRoles are the roles the provisioning workflow accepts.
	AllRoles = []string{RoleStudent, RoleTeacher, RoleParent, RolePrincipal}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Parent", Value: RoleParent},
		{Name: "Principal", Value: RolePrincipal},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SchoolInfo is the school summary embedded in listed users.
type SchoolInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        string      `json:"id"`
	UID       string      `json:"uid,omitempty"` // external identity id; empty until the account is claimed
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	SchoolID  string      `json:"school_id"`
	IsActive  bool        `json:"is_active"`
	School    *SchoolInfo `json:"school,omitempty"`
	Profile   Profile     `json:"profile,omitempty"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

func (u *User) IsStudent() bool   { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool   { return u.Role == RoleTeacher }
func (u *User) IsParent() bool    { return u.Role == RoleParent }
func (u *User) IsPrincipal() bool { return u.Role == RolePrincipal }

// IsStaff reports whether the user may browse their school's directory.
func (u *User) IsStaff() bool { return u.IsTeacher() || u.IsPrincipal() }

// Profile is the role-specific 1:1 extension of a User. Exactly one
// implementation exists per role; newProfile is the only constructor.
type Profile interface {
	ProfileRole() string
	profile() // sealed
}

type StudentProfile struct {
	Grade            *string    `json:"grade"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	EmergencyContact *string    `json:"emergency_contact"`
}

type TeacherProfile struct {
	Department *string    `json:"department"`
	EmployeeID *string    `json:"employee_id"`
	HireDate   *time.Time `json:"hire_date"`
}

type ParentProfile struct {
	Occupation *string `json:"occupation"`
	Phone      *string `json:"phone"`
}

type PrincipalProfile struct {
	YearsExperience    *int     `json:"years_experience"`
	AdministrativeArea *string  `json:"administrative_area"`
	Salary             *float64 `json:"salary"`
}

func (*StudentProfile) ProfileRole() string   { return RoleStudent }
func (*TeacherProfile) ProfileRole() string   { return RoleTeacher }
func (*ParentProfile) ProfileRole() string    { return RoleParent }
func (*PrincipalProfile) ProfileRole() string { return RolePrincipal }

func (*StudentProfile) profile()   {}
func (*TeacherProfile) profile()   {}
func (*ParentProfile) profile()    {}
func (*PrincipalProfile) profile() {}

// NewUser contains information needed to provision a new User.
// At most one nested profile payload may be set, and it must match Role;
// nested fields left unset are persisted as NULL, never defaulted.
type NewUser struct {
	Role      string `json:"role" validate:"required,role"`
	SchoolID  string `json:"school_id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`

	StudentProfile   *NewStudentProfile   `json:"student_profile,omitempty" validate:"omitempty"`
	TeacherProfile   *NewTeacherProfile   `json:"teacher_profile,omitempty" validate:"omitempty"`
	ParentProfile    *NewParentProfile    `json:"parent_profile,omitempty" validate:"omitempty"`
	PrincipalProfile *NewPrincipalProfile `json:"principal_profile,omitempty" validate:"omitempty"`
}

type NewStudentProfile struct {
	Grade            *string    `json:"grade"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	EmergencyContact *string    `json:"emergency_contact"`
}

type NewTeacherProfile struct {
	Department *string    `json:"department"`
	EmployeeID *string    `json:"employee_id"`
	HireDate   *time.Time `json:"hire_date"`
}

type NewParentProfile struct {
	Occupation *string `json:"occupation"`
	Phone      *string `json:"phone"`
}

type NewPrincipalProfile struct {
	YearsExperience    *int     `json:"years_experience" validate:"omitempty,gt=0"`
	AdministrativeArea *string  `json:"administrative_area"`
	Salary             *float64 `json:"salary" validate:"omitempty,gt=0"`
}

func (nu *NewUser) Validate() error {
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.SchoolID = core.CleanString(nu.SchoolID)
	nu.Role = core.CleanString(nu.Role, true)
	nu.Role = roleFromString(nu.Role)

	return core.Validate.Struct(nu)
}

func roleFromString(s string) string {
	for _, r := range AllRoles {
		if s == core.CleanString(r, true) {
			return r
		}
	}
	return s
}

// newProfile dispatches the NewUser payload to the profile variant matching
// its role. The switch is exhaustive over provisionable roles; adding a role
// without a branch fails every provisioning of that role loudly.
func (nu *NewUser) newProfile() (Profile, error) {
	switch nu.Role {
	case RoleStudent:
		p := new(StudentProfile)
		if np := nu.StudentProfile; np != nil {
			p.Grade = np.Grade
			p.DateOfBirth = np.DateOfBirth
			p.EmergencyContact = np.EmergencyContact
		}
		return p, nil
	case RoleTeacher:
		p := new(TeacherProfile)
		if np := nu.TeacherProfile; np != nil {
			p.Department = np.Department
			p.EmployeeID = np.EmployeeID
			p.HireDate = np.HireDate
		}
		return p, nil
	case RoleParent:
		p := new(ParentProfile)
		if np := nu.ParentProfile; np != nil {
			p.Occupation = np.Occupation
			p.Phone = np.Phone
		}
		return p, nil
	case RolePrincipal:
		p := new(PrincipalProfile)
		if np := nu.PrincipalProfile; np != nil {
			p.YearsExperience = np.YearsExperience
			p.AdministrativeArea = np.AdministrativeArea
			p.Salary = np.Salary
		}
		return p, nil
	}
	return nil, ErrUnknownRole
}

type QueryFilter struct {
	Role   string `query:"role"`
	Search string `query:"search"`

	// set by the service, never bound from the request
	SchoolID string `query:"-"`
	IsActive *bool  `query:"-"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = roleFromString(core.CleanString(qf.Role, true))
}
