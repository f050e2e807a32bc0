package gormrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shulehub/shule/core/user"
)

type userRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) toRow(usr user.User) *userRow {
	var uid *string
	if usr.UID != "" {
		uid = &usr.UID
	}
	return &userRow{
		ID:        usr.ID,
		UID:       uid,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		Email:     usr.Email,
		Role:      usr.Role,
		SchoolID:  usr.SchoolID,
		IsActive:  usr.IsActive,
		CreatedAt: usr.CreatedAt.UTC(),
		UpdatedAt: usr.UpdatedAt.UTC(),
	}
}

func (repo *userRepository) fromRow(row *userRow) user.User {
	if row == nil {
		return user.User{}
	}
	usr := user.User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Role:      row.Role,
		SchoolID:  row.SchoolID,
		IsActive:  row.IsActive,
		Profile:   row.profile(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.UID != nil {
		usr.UID = *row.UID
	}
	if row.School != nil {
		usr.School = &user.SchoolInfo{ID: row.School.ID, Name: row.School.Name}
	}
	return usr
}

// trapNoRowsErr maps gorm's "record not found" to user.ErrNotFound
func (repo *userRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// CreateUser inserts the user and its profile row in one transaction.
// A duplicate-key error here means we lost a race with a concurrent
// registration; the unique index is the only serialization between them.
func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := repo.toRow(usr)
	row.ID = uuid.New().String()
	prow := profileRow(row.ID, usr.Profile)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if prow != nil {
			if err := tx.Create(prow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}

	usr.ID = row.ID
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	q := repo.withIncludes(repo.db.WithContext(ctx))

	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		q = q.Where("id = ?", filter.ID)
	case filter.UID != "":
		q = q.Where("uid = ?", filter.UID)
	case filter.Email != "":
		q = q.Where("email = ?", filter.Email)
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := q.First(&row).Error; err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user")
	}
	return repo.fromRow(&row), nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	q := repo.withIncludes(repo.db.WithContext(ctx))

	if filter.SchoolID != "" {
		q = q.Where("school_id = ?", filter.SchoolID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	// users with FirstName, LastName or Email matching the search keyword
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", val, val, val)
	}

	var rows []*userRow
	if err := q.Order("last_name, first_name").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.fromRow(row))
	}
	return users, nil
}

func (repo *userRepository) SetUserActive(ctx context.Context, id string, active bool) (user.User, error) {
	res := repo.db.WithContext(ctx).
		Model(&userRow{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return user.User{}, errors.Wrap(res.Error, "updating user active flag")
	}
	if res.RowsAffected == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUser(ctx, user.GetFilter{ID: id})
}

func (repo *userRepository) withIncludes(q *gorm.DB) *gorm.DB {
	return q.Model(&userRow{}).
		Preload("School").
		Preload("Student").
		Preload("Teacher").
		Preload("Parent").
		Preload("Principal")
}
