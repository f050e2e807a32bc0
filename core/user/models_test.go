package user

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func validNewUser(role string) NewUser {
	return NewUser{
		Role:      role,
		SchoolID:  "sch_1",
		FirstName: "Amina",
		LastName:  "Okafor",
		Email:     "amina@test.cd",
	}
}

func fieldErrs(t *testing.T, err error) map[string]bool {
	t.Helper()
	vErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "expected validator.ValidationErrors, got %T: %v", err, err)

	flds := make(map[string]bool, len(vErrs))
	for _, fe := range vErrs {
		flds[fe.Field()] = true
	}
	return flds
}

func TestNewUser_Validate(t *testing.T) {
	tests := []struct {
		name     string
		data     NewUser
		wantFlds []string // empty means valid
	}{
		{
			name:     "empty payload reports every field",
			data:     NewUser{},
			wantFlds: []string{"role", "school_id", "first_name", "last_name", "email"},
		},
		{
			name: "all invalid fields reported at once",
			data: NewUser{Role: "WIZARD", Email: "not-an-email"},
			wantFlds: []string{"role", "school_id", "first_name", "last_name", "email"},
		},
		{
			name:     "unknown role",
			data:     func() NewUser { nu := validNewUser("CLERK"); return nu }(),
			wantFlds: []string{"role"},
		},
		{
			name: "mismatched nested profile",
			data: func() NewUser {
				nu := validNewUser(RoleStudent)
				nu.TeacherProfile = &NewTeacherProfile{Department: strPtr("Math")}
				return nu
			}(),
			wantFlds: []string{"teacher_profile"},
		},
		{
			name: "multiple mismatched nested profiles",
			data: func() NewUser {
				nu := validNewUser(RoleTeacher)
				nu.StudentProfile = &NewStudentProfile{}
				nu.ParentProfile = &NewParentProfile{}
				return nu
			}(),
			wantFlds: []string{"student_profile", "parent_profile"},
		},
		{
			name: "principal years_experience must be positive",
			data: func() NewUser {
				nu := validNewUser(RolePrincipal)
				nu.PrincipalProfile = &NewPrincipalProfile{YearsExperience: intPtr(0)}
				return nu
			}(),
			wantFlds: []string{"years_experience"},
		},
		{
			name: "principal salary must be positive",
			data: func() NewUser {
				nu := validNewUser(RolePrincipal)
				nu.PrincipalProfile = &NewPrincipalProfile{Salary: floatPtr(-100)}
				return nu
			}(),
			wantFlds: []string{"salary"},
		},
		{
			name: "valid minimal student",
			data: validNewUser(RoleStudent),
		},
		{
			name: "role is case-insensitive",
			data: func() NewUser { nu := validNewUser("teacher"); return nu }(),
		},
		{
			name: "valid matching profile",
			data: func() NewUser {
				nu := validNewUser(RoleParent)
				nu.ParentProfile = &NewParentProfile{Occupation: strPtr("Nurse"), Phone: strPtr("+243812345678")}
				return nu
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if len(tt.wantFlds) == 0 {
				assert.NoError(t, err)
				return
			}
			flds := fieldErrs(t, err)
			assert.Len(t, flds, len(tt.wantFlds))
			for _, fld := range tt.wantFlds {
				assert.Contains(t, flds, fld)
			}
		})
	}
}

func TestNewUser_Validate_normalizes(t *testing.T) {
	nu := NewUser{
		Role:      "  principal ",
		SchoolID:  " sch_1 ",
		FirstName: "  Marie ",
		LastName:  " Kabila  ",
		Email:     " MARIE@Test.CD ",
	}
	require.NoError(t, nu.Validate())
	assert.Equal(t, RolePrincipal, nu.Role)
	assert.Equal(t, "sch_1", nu.SchoolID)
	assert.Equal(t, "Marie", nu.FirstName)
	assert.Equal(t, "Kabila", nu.LastName)
	assert.Equal(t, "marie@test.cd", nu.Email)
}

func TestNewUser_newProfile(t *testing.T) {
	hired := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("dispatches on role", func(t *testing.T) {
		for _, role := range AllRoles {
			nu := validNewUser(role)
			p, err := nu.newProfile()
			require.NoError(t, err, "role %s", role)
			assert.Equal(t, role, p.ProfileRole())
		}
	})

	t.Run("copies the matching payload", func(t *testing.T) {
		nu := validNewUser(RoleTeacher)
		nu.TeacherProfile = &NewTeacherProfile{
			Department: strPtr("Sciences"),
			EmployeeID: strPtr("EMP-42"),
			HireDate:   timePtr(hired),
		}
		p, err := nu.newProfile()
		require.NoError(t, err)

		tp, ok := p.(*TeacherProfile)
		require.True(t, ok)
		assert.Equal(t, "Sciences", *tp.Department)
		assert.Equal(t, "EMP-42", *tp.EmployeeID)
		assert.Equal(t, hired, *tp.HireDate)
	})

	t.Run("missing payload keeps fields nil", func(t *testing.T) {
		nu := validNewUser(RoleStudent)
		p, err := nu.newProfile()
		require.NoError(t, err)

		sp, ok := p.(*StudentProfile)
		require.True(t, ok)
		assert.Nil(t, sp.Grade)
		assert.Nil(t, sp.DateOfBirth)
		assert.Nil(t, sp.EmergencyContact)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		nu := validNewUser(RoleClerk)
		_, err := nu.newProfile()
		assert.Equal(t, ErrUnknownRole, err)
	})
}
