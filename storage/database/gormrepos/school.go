package gormrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shulehub/shule/core/school"
)

type schoolRepository struct {
	db *gorm.DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *gorm.DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) toRow(sch school.School) *schoolRow {
	return &schoolRow{
		ID:        sch.ID,
		Name:      sch.Name,
		OrgID:     sch.OrgID,
		CreatedAt: sch.CreatedAt.UTC(),
		UpdatedAt: sch.UpdatedAt.UTC(),
	}
}

func (repo *schoolRepository) fromRow(row *schoolRow) school.School {
	if row == nil {
		return school.School{}
	}
	return school.School{
		ID:        row.ID,
		Name:      row.Name,
		OrgID:     row.OrgID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	row := repo.toRow(sch)
	row.ID = uuid.New().String()
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return school.School{}, errors.Wrap(err, "inserting school")
	}
	sch.ID = row.ID
	return sch, nil
}

func (repo *schoolRepository) GetSchoolByID(ctx context.Context, id string) (school.School, error) {
	if _, err := uuid.Parse(id); err != nil {
		return school.School{}, school.ErrNotFound
	}

	var row schoolRow
	if err := repo.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return school.School{}, school.ErrNotFound
		}
		return school.School{}, errors.Wrap(err, "finding school")
	}
	return repo.fromRow(&row), nil
}

func (repo *schoolRepository) QueryAllSchools(ctx context.Context) ([]school.School, error) {
	var rows []*schoolRow
	if err := repo.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	schools := make([]school.School, 0, len(rows))
	for _, row := range rows {
		schools = append(schools, repo.fromRow(row))
	}
	return schools, nil
}
