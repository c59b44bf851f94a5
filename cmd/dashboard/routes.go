package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"dashboard-curvas/http-server/admin/reconcile"
	getcargos "dashboard-curvas/http-server/cargos/get"
	"dashboard-curvas/http-server/curva-s/compute"
	getcurva "dashboard-curvas/http-server/curva-s/get"
	generate_excel "dashboard-curvas/http-server/generate-report/generate-excel"
	"dashboard-curvas/http-server/params"
	"dashboard-curvas/internal/config"
	"dashboard-curvas/internal/middleware/auth"
)

type curvaService interface {
	getcurva.CurvaSProvider
	compute.Computer
}

type services struct {
	curvas    curvaService
	cargos    getcargos.BreakdownProvider
	reconcile reconcile.Auditor
	report    generate_excel.ReportGenerator
}

func routes(cfg config.Config, log *slog.Logger, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", params.ScopeHeader},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// a request waits for the warehouse fetch plus the in-memory pipeline;
	// the workbook and the audit run two queries each
	requestTimeout := cfg.FetchTimeout + time.Second
	reportTimeout := 2 * requestTimeout

	router.Get("/api/curva-s", getcurva.GetCurvaS(log, svc.curvas, requestTimeout))
	router.Post("/api/curva-s/calcular", compute.ComputeCurvaS(log, svc.curvas))
	router.Get("/api/curva-s/cargos", getcargos.GetCargos(log, svc.cargos, requestTimeout))

	router.Get("/api/report/curva-s/excel", generate_excel.GenerateReportExcel(log, svc.report, reportTimeout))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Get("/reconciliacao", reconcile.GetReconciliation(log, svc.reconcile, reportTimeout))

	router.Mount("/api/admin", adminRouter)

	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); err != nil {
		log.Warn("frontend dir not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.FileServer(http.Dir(frontendDir))
	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
