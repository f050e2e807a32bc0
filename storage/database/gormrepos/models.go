package gormrepos

import (
	"time"

	"gorm.io/gorm"

	"github.com/shulehub/shule/core/user"
)

// Row structs are the GORM-mapped shapes of the core domain types; they stay
// private to this package, mapping happens in toRow/fromRow.

type schoolRow struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"size:255;not null"`
	OrgID     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (schoolRow) TableName() string { return "schools" }

type userRow struct {
	ID string `gorm:"type:uuid;primaryKey"`
	// NULL (not empty string) when the account has not been claimed yet, so
	// the unique index only bites on actual external identities
	UID       *string `gorm:"size:255;uniqueIndex"`
	FirstName string  `gorm:"size:255;not null"`
	LastName  string  `gorm:"size:255;not null"`
	Email     string  `gorm:"size:255;not null;uniqueIndex"`
	Role      string  `gorm:"size:20;not null"`
	SchoolID  string  `gorm:"type:uuid;not null;index"`
	IsActive  bool    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	School    *schoolRow           `gorm:"foreignKey:SchoolID"`
	Student   *studentProfileRow   `gorm:"foreignKey:UserID"`
	Teacher   *teacherProfileRow   `gorm:"foreignKey:UserID"`
	Parent    *parentProfileRow    `gorm:"foreignKey:UserID"`
	Principal *principalProfileRow `gorm:"foreignKey:UserID"`
}

func (userRow) TableName() string { return "users" }

type studentProfileRow struct {
	UserID           string `gorm:"type:uuid;primaryKey"`
	Grade            *string
	DateOfBirth      *time.Time
	EmergencyContact *string
}

func (studentProfileRow) TableName() string { return "student_profiles" }

type teacherProfileRow struct {
	UserID     string `gorm:"type:uuid;primaryKey"`
	Department *string
	EmployeeID *string
	HireDate   *time.Time
}

func (teacherProfileRow) TableName() string { return "teacher_profiles" }

type parentProfileRow struct {
	UserID     string `gorm:"type:uuid;primaryKey"`
	Occupation *string
	Phone      *string
}

func (parentProfileRow) TableName() string { return "parent_profiles" }

type principalProfileRow struct {
	UserID             string `gorm:"type:uuid;primaryKey"`
	YearsExperience    *int
	AdministrativeArea *string
	Salary             *float64
}

func (principalProfileRow) TableName() string { return "principal_profiles" }

// Migrate creates/updates the schema for all mapped tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schoolRow{},
		&userRow{},
		&studentProfileRow{},
		&teacherProfileRow{},
		&parentProfileRow{},
		&principalProfileRow{},
	)
}

func profileRow(userID string, p user.Profile) interface{} {
	switch p := p.(type) {
	case *user.StudentProfile:
		return &studentProfileRow{
			UserID:           userID,
			Grade:            p.Grade,
			DateOfBirth:      p.DateOfBirth,
			EmergencyContact: p.EmergencyContact,
		}
	case *user.TeacherProfile:
		return &teacherProfileRow{
			UserID:     userID,
			Department: p.Department,
			EmployeeID: p.EmployeeID,
			HireDate:   p.HireDate,
		}
	case *user.ParentProfile:
		return &parentProfileRow{
			UserID:     userID,
			Occupation: p.Occupation,
			Phone:      p.Phone,
		}
	case *user.PrincipalProfile:
		return &principalProfileRow{
			UserID:             userID,
			YearsExperience:    p.YearsExperience,
			AdministrativeArea: p.AdministrativeArea,
			Salary:             p.Salary,
		}
	}
	return nil
}

func (row *userRow) profile() user.Profile {
	switch {
	case row.Student != nil:
		return &user.StudentProfile{
			Grade:            row.Student.Grade,
			DateOfBirth:      row.Student.DateOfBirth,
			EmergencyContact: row.Student.EmergencyContact,
		}
	case row.Teacher != nil:
		return &user.TeacherProfile{
			Department: row.Teacher.Department,
			EmployeeID: row.Teacher.EmployeeID,
			HireDate:   row.Teacher.HireDate,
		}
	case row.Parent != nil:
		return &user.ParentProfile{
			Occupation: row.Parent.Occupation,
			Phone:      row.Parent.Phone,
		}
	case row.Principal != nil:
		return &user.PrincipalProfile{
			YearsExperience:    row.Principal.YearsExperience,
			AdministrativeArea: row.Principal.AdministrativeArea,
			Salary:             row.Principal.Salary,
		}
	}
	return nil
}
