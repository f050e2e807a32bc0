package main

import (
	"context"
	"fmt"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/user"
)

func (cli *commandLine) setActive(email string, active bool) error {
	ctx := context.Background()

	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: core.CleanString(email, true /* lower */)})
	if err != nil {
		return err
	}
	if usr, err = cli.usrRepo.SetUserActive(ctx, usr.ID, active); err != nil {
		return err
	}

	state := "deactivated"
	if usr.IsActive {
		state = "activated"
	}
	fmt.Printf("user %s %s\n", usr.Email, state)
	return nil
}
