package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

var (
	roleTag  = "role"
	roleText = "must be one of STUDENT, TEACHER, PARENT or PRINCIPAL"

	profileMismatchTag  = "profile_match"
	profileMismatchText = "profile payload does not match role"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, roleTag, roleText)

	core.Validate.RegisterStructValidation(newUserStructValidation, NewUser{})
	core.RegisterCustomTranslation(core.Validate, core.Translator, profileMismatchTag, profileMismatchText)
}

// roleValidation only allows provisionable roles.
func roleValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range AllRoles {
		if val == r {
			return true
		}
	}
	return false
}

// newUserStructValidation rejects nested profile payloads whose shape does
// not match the declared role. The source behavior silently ignored them;
// rejecting surfaces client bugs instead of dropping caller data.
func newUserStructValidation(sl validator.StructLevel) {
	nu := sl.Current().Interface().(NewUser)

	if nu.StudentProfile != nil && nu.Role != RoleStudent {
		sl.ReportError(nu.StudentProfile, "student_profile", "StudentProfile", profileMismatchTag, "")
	}
	if nu.TeacherProfile != nil && nu.Role != RoleTeacher {
		sl.ReportError(nu.TeacherProfile, "teacher_profile", "TeacherProfile", profileMismatchTag, "")
	}
	if nu.ParentProfile != nil && nu.Role != RoleParent {
		sl.ReportError(nu.ParentProfile, "parent_profile", "ParentProfile", profileMismatchTag, "")
	}
	if nu.PrincipalProfile != nil && nu.Role != RolePrincipal {
		sl.ReportError(nu.PrincipalProfile, "principal_profile", "PrincipalProfile", profileMismatchTag, "")
	}
}
