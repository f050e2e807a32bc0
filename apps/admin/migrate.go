package main

import (
	"fmt"

	"github.com/shulehub/shule/storage/database/gormrepos"
)

func (cli *commandLine) migrate() error {
	if err := gormrepos.Migrate(cli.db); err != nil {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}
