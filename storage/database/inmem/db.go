// Package inmemdb provides map-backed repository implementations used by
// tests and local development.
package inmemdb

import (
	"sync"

	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
)

type (
	DB struct {
		users   *userTable
		schools *schoolTable
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	schoolTable struct {
		mutex sync.RWMutex
		table map[string]*school.School
	}
)

func NewDB() *DB {
	return &DB{
		users:   &userTable{table: make(map[string]*user.User)},
		schools: &schoolTable{table: make(map[string]*school.School)},
	}
}

// Reset drops all rows. Tests call it between cases.
func (db *DB) Reset() {
	db.users.mutex.Lock()
	db.users.table = make(map[string]*user.User)
	db.users.mutex.Unlock()

	db.schools.mutex.Lock()
	db.schools.table = make(map[string]*school.School)
	db.schools.mutex.Unlock()
}
