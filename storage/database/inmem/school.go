package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	repo.db.schools.mutex.Lock()
	defer repo.db.schools.mutex.Unlock()

	sch.ID = uuid.New().String()
	repo.db.schools.table[sch.ID] = &sch
	return sch, nil
}

func (repo *schoolRepository) GetSchoolByID(ctx context.Context, id string) (school.School, error) {
	repo.db.schools.mutex.RLock()
	defer repo.db.schools.mutex.RUnlock()

	if sch, ok := repo.db.schools.table[id]; ok {
		return *sch, nil
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) QueryAllSchools(ctx context.Context) ([]school.School, error) {
	repo.db.schools.mutex.RLock()
	defer repo.db.schools.mutex.RUnlock()

	schools := make([]school.School, 0, len(repo.db.schools.table))
	for _, sch := range repo.db.schools.table {
		schools = append(schools, *sch)
	}
	return schools, nil
}
