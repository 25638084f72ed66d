package handler

import (
	"net/http"

	"github.com/vfg2006/invoice-control-api/internal/api/handler/router"
	"github.com/vfg2006/invoice-control-api/internal/usecases/authenticating"
	"github.com/vfg2006/invoice-control-api/internal/usecases/pendency"
	"github.com/vfg2006/invoice-control-api/pkg/middleware"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Pendencies(service pendency.PendencyService, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/invoices/preview",
			Method:      http.MethodPost,
			Handler:     PreviewInvoices(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pendencies",
			Method:      http.MethodPost,
			Handler:     GetPendencies(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pendencies/export",
			Method:      http.MethodPost,
			Handler:     ExportPendencies(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service pendency.PendencyService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports",
			Method:      http.MethodGet,
			Handler:     ListReports(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/:id",
			Method:      http.MethodGet,
			Handler:     GetReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
