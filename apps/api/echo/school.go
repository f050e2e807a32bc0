package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/school"
)

type schoolApi struct {
	svc school.ServiceInterface
}

func registerSchoolAPI(g *echo.Group, auth echo.MiddlewareFunc, svc school.ServiceInterface) {
	api := schoolApi{svc: svc}

	sg := g.Group("/schools", auth)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"school": sch})
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	sch, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"school": sch})
}
