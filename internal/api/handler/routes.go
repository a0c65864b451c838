package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-orchestrator/internal/api/handler/router"
	"github.com/vfg2006/campaign-orchestrator/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Runs(services *RunServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/runs/status",
			Method:      http.MethodGet,
			Handler:     GetRunStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/runs/:type",
			Method:      http.MethodPost,
			Handler:     StartRun(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
