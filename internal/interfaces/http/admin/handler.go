package admin

import (
	"log"
	"time"

	adminapp "github.com/formflow-pro/formflow-services/api/internal/admin/application"
	"github.com/go-chi/chi/v5"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger           *log.Logger
	campaignService  adminapp.CampaignService
	analyticsService adminapp.AnalyticsService
	rosterImporter   adminapp.RosterImporter
	location         *time.Location
}

// Config provides dependencies for Handler.
type Config struct {
	Logger           *log.Logger
	CampaignService  adminapp.CampaignService
	AnalyticsService adminapp.AnalyticsService
	RosterImporter   adminapp.RosterImporter
	Location         *time.Location
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		logger:           cfg.Logger,
		campaignService:  cfg.CampaignService,
		analyticsService: cfg.AnalyticsService,
		rosterImporter:   cfg.RosterImporter,
		location:         location,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/rosters/preview", h.rosterPreviewHandler())
	r.Get("/campaigns", h.campaignListHandler())
	r.Get("/campaigns/live", h.campaignLiveHandler())
	r.Post("/campaigns", h.campaignCreateHandler())
	r.Get("/campaigns/{id}", h.campaignDetailHandler())
	r.Patch("/campaigns/{id}", h.campaignUpdateHandler())
	r.Delete("/campaigns/{id}", h.campaignDeleteHandler())
	r.Post("/campaigns/{id}/{event}", h.campaignTransitionHandler())
	r.Get("/campaigns/{id}/submissions", h.submissionListHandler())
	r.Get("/campaigns/{id}/submissions/export", h.submissionExportHandler())
	r.Get("/campaigns/{id}/analytics", h.analyticsHandler())
}
