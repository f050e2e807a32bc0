package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/school"
)

func (cli *commandLine) addSchool(name, orgID string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	sch, err := cli.schoolRepo.CreateSchool(ctx, school.School{
		Name:      core.CleanString(name),
		OrgID:     core.CleanString(orgID),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	fmt.Printf("school %q created with ID %s\n", sch.Name, sch.ID)
	return nil
}
