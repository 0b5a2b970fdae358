package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/protomem/bizcard-pass/docs"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (app *application) configureSwagger() {
	docs.SwaggerInfo.Title = "Business Card Pass"
	docs.SwaggerInfo.Description = "Web API - Wallet business card"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmtHTTPAddr("localhost", app.config.HTTPPort)
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http"}
}

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS())

	mux.Route("/api", func(r chi.Router) {
		r.Get("/status", app.handleStatus)
		r.Get("/form", app.handleForm)
		r.Post("/locale", app.handleSetLocale)
		r.Post("/pass", app.handleIssuePass)
		r.Post("/set-default", app.handleSetDefault)
	})

	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	mux.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(
			"http://"+fmtHTTPAddr("localhost", app.config.HTTPPort)+"/swagger/doc.json",
		), // The url pointing to API definition
	))

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		if route.SubRoutes != nil {
			for _, sub := range chiRoutesToStrings(route.SubRoutes.Routes()) {
				parsedRoutes = append(parsedRoutes, strings.TrimSuffix(route.Pattern, "/*")+sub)
			}
			continue
		}
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
