package main

import (
	"errors"
	"flag"
	"fmt"

	"gorm.io/gorm"

	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *gorm.DB
	usrRepo    user.Repository
	schoolRepo school.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                     - apply database migrations")
	fmt.Println("  addschool -name NAME [-org ORG_ID] - register a school")
	fmt.Println("  deactivate -email EMAIL     - deactivate a user account")
	fmt.Println("  activate -email EMAIL       - reactivate a user account")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addSchoolCmd := flag.NewFlagSet("addschool", flag.ExitOnError)
	addSchoolName := addSchoolCmd.String("name", "", "The school's display name.")
	addSchoolOrg := addSchoolCmd.String("org", "", "The identity provider organization ID, if any.")

	setActiveCmd := flag.NewFlagSet("setactive", flag.ExitOnError)
	setActiveEmail := setActiveCmd.String("email", "", "The user's email address.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "addschool":
		if err := addSchoolCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addSchoolName == "" {
			addSchoolCmd.Usage()
			return errHelp
		}
		return cli.addSchool(*addSchoolName, *addSchoolOrg)
	case "deactivate", "activate":
		if err := setActiveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setActiveEmail == "" {
			setActiveCmd.Usage()
			return errHelp
		}
		return cli.setActive(*setActiveEmail, args[1] == "activate")
	default:
		cli.printUsage()
		return errHelp
	}
}
