package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.users.table))
	for _, u := range repo.db.users.table {
		users = append(users, *u)
	}
	return users
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.users.mutex.Lock()
	defer repo.db.users.mutex.Unlock()

	// mirror the store-level uniqueness constraints
	for _, u := range repo.db.users.table {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailTaken
		}
		if usr.UID != "" && u.UID == usr.UID {
			return user.User{}, user.ErrAlreadyRegistered
		}
	}

	usr.ID = uuid.New().String()
	repo.db.users.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.users.mutex.RLock()
	defer repo.db.users.mutex.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.users.table[filter.ID]; ok {
			return *usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	for _, usr := range repo.query() {
		if filter.UID != "" && usr.UID == filter.UID {
			return usr, nil
		}
		if filter.Email != "" && usr.Email == filter.Email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	repo.db.users.mutex.RLock()
	defer repo.db.users.mutex.RUnlock()

	matched := make([]user.User, 0)
	for _, usr := range repo.query() {
		if filter.SchoolID != "" && usr.SchoolID != filter.SchoolID {
			continue
		}
		if filter.IsActive != nil && usr.IsActive != *filter.IsActive {
			continue
		}
		if filter.Role != "" && usr.Role != filter.Role {
			continue
		}
		if filter.Search != "" && !matchesSearch(usr, filter.Search) {
			continue
		}
		repo.enrich(&usr)
		matched = append(matched, usr)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].LastName != matched[j].LastName {
			return matched[i].LastName < matched[j].LastName
		}
		return matched[i].FirstName < matched[j].FirstName
	})
	return matched, nil
}

func (repo *userRepository) SetUserActive(ctx context.Context, id string, active bool) (user.User, error) {
	repo.db.users.mutex.Lock()
	defer repo.db.users.mutex.Unlock()

	usr, ok := repo.db.users.table[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.IsActive = active
	return *usr, nil
}

func (repo *userRepository) enrich(usr *user.User) {
	repo.db.schools.mutex.RLock()
	defer repo.db.schools.mutex.RUnlock()

	if sch, ok := repo.db.schools.table[usr.SchoolID]; ok {
		usr.School = &user.SchoolInfo{ID: sch.ID, Name: sch.Name}
	}
}

func matchesSearch(usr user.User, search string) bool {
	search = strings.ToLower(search)
	for _, fld := range []string{usr.FirstName, usr.LastName, usr.Email} {
		if strings.Contains(strings.ToLower(fld), search) {
			return true
		}
	}
	return false
}
