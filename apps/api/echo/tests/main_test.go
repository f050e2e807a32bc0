package tests

import (
	"io"
	"log"
	"os"
	"testing"

	. "github.com/shulehub/shule/apps/api/echo"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
	"github.com/shulehub/shule/services/email"
	"github.com/shulehub/shule/services/identity"
	"github.com/shulehub/shule/services/logger"
	"github.com/shulehub/shule/storage/database/inmem"
)

var (
	db         *inmemdb.DB
	app        Server
	usrRepo    user.Repository
	schoolRepo school.Repository
	idp        *identitysvc.StaticProvider

	errMissingToken = httpErr{Error: "missing or malformed authorization token"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	// set up DB & repos
	db = inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	schoolRepo = inmemdb.NewSchoolRepository(db)

	// set up services
	idp = identitysvc.NewStaticProvider()
	mailSvc := emailsvc.NewConsoleServiceMock()
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	usrSvc := user.NewService(usrRepo, schoolRepo, idp, mailSvc, logger)
	schoolSvc := school.NewService(schoolRepo)

	// set up server
	app = NewServer(
		":0",
		nil,
		&Deps{
			UserSvc:        usrSvc,
			SchoolSvc:      schoolSvc,
			Identity:       idp,
			Logger:         logger,
			DisableReqLogs: true,
		},
	)

	os.Exit(m.Run())
}
