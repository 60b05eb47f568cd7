package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/students/backend/internal/handler/student"
	middlewarePkg "github.com/zhouzirui/students/backend/internal/middleware"
	studentService "github.com/zhouzirui/students/backend/internal/service/student"
	"github.com/zhouzirui/students/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the student service.
func NewRouter(logger *zap.Logger, studentSvc *studentService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	student.New(studentSvc).RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !studentSvc.Ready() {
			utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		snap, _ := studentSvc.Snapshot()
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"snapshotId": snap.ID,
			"students":   snap.Count,
			"loadedAt":   snap.LoadedAt,
		})
	})

	return r
}
