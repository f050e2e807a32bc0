package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shulehub/shule/apps/api/echo"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
	"github.com/shulehub/shule/services/email"
	"github.com/shulehub/shule/services/identity"
	"github.com/shulehub/shule/services/logger"
	"github.com/shulehub/shule/storage/database"
	"github.com/shulehub/shule/storage/database/gormrepos"
)

func main() {
	conf := core.Conf

	// =========================================================================
	// Set up Dependencies

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var appLogger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		appLogger = logsvc.NewConsoleLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, conf)
	}
	appLogger.Enable(true)

	db, err := database.Open(conf)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = database.Close(db); err != nil {
			appLogger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()
	if err = database.Ping(db); err != nil {
		appLogger.Fatal(fmt.Sprintf("pinging database: %v", err), err)
	}
	if err = gormrepos.Migrate(db); err != nil {
		appLogger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	var idp core.IdentityProvider
	if conf.Firebase.CredentialsFile != "" {
		idp, err = identitysvc.NewFirebaseProvider(context.Background(), conf)
		if err != nil {
			appLogger.Fatal(fmt.Sprintf("setting up identity provider: %v", err), err)
		}
	} else {
		// local development fallback; tokens are trusted as-is
		idp = identitysvc.NewStaticProvider()
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}

	schoolRepo := gormrepos.NewSchoolRepository(db)
	schoolSvc := school.NewService(schoolRepo)
	usrSvc := user.NewService(gormrepos.NewUserRepository(db), schoolRepo, idp, mailSvc, appLogger)

	// =========================================================================
	// Start API Service

	appLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer appLogger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		conf.Server.Address(),
		shutdown,
		&echoapi.Deps{
			UserSvc:   usrSvc,
			SchoolSvc: schoolSvc,
			Identity:  idp,
			Logger:    appLogger,
		},
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		appLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-shutdown:
		appLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = app.Stop(ctx); err != nil {
			appLogger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
