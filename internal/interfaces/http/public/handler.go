package public

import (
	"log"
	"time"

	participantapp "github.com/formflow-pro/formflow-services/api/internal/participant/application"
	"github.com/go-chi/chi/v5"
)

// Handler wires participant-facing HTTP endpoints to application services.
type Handler struct {
	logger        *log.Logger
	signInService participantapp.SignInService
	intakeService participantapp.IntakeService
	tokenSecret   []byte
	tokenIssuer   string
	tokenTTL      time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *log.Logger
	SignInService participantapp.SignInService
	IntakeService participantapp.IntakeService
	TokenSecret   []byte
	TokenIssuer   string
	TokenTTL      time.Duration
}

// NewHandler constructs a participant-facing HTTP handler set.
func NewHandler(cfg Config) *Handler {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Handler{
		logger:        cfg.Logger,
		signInService: cfg.SignInService,
		intakeService: cfg.IntakeService,
		tokenSecret:   cfg.TokenSecret,
		tokenIssuer:   cfg.TokenIssuer,
		tokenTTL:      ttl,
	}
}

// Register mounts all participant routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/signin", h.signInHandler())
	r.With(h.participantMiddleware).Get("/form", h.formLoadHandler())
	r.With(h.participantMiddleware).Put("/form", h.formSaveHandler())
	r.With(h.participantMiddleware).Post("/form/files/{fieldId}", h.fileUploadHandler())
}
