package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	contentTypeJSON = "application/json"
	maxBodyBytes    = 1 << 16

	logMsgRequestFailed  = "http request failed"
	logMsgEncodingFailed = "http response encoding failed"
	logAttrMethod        = "method"
	logAttrPath          = "path"
	logAttrStatus        = "status"
	logAttrError         = "error"
)

var json = jsoniter.ConfigFastest

// Server serves the booking API.
type Server struct {
	handlers       Handlers
	router         *mux.Router
	validate       *validator.Validate
	clock          core.Clock
	logger         shell.ContextualLogger
	allowedOrigins []string
}

// Option defines a functional option for configuring Server.
type Option func(*Server) error

// WithClock sets the clock that stamps new reservation requests.
func WithClock(clock core.Clock) Option {
	return func(s *Server) error {
		if clock == nil {
			return errors.New("clock must not be nil")
		}

		s.clock = clock

		return nil
	}
}

// WithContextualLogger sets the logger for failed requests.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.allowedOrigins = origins
		return nil
	}
}

// NewServer creates a Server dispatching to handlers.
func NewServer(h Handlers, options ...Option) (*Server, error) {
	s := &Server{
		handlers: h,
		router:   mux.NewRouter(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    core.SystemClock,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	s.routes()

	return s, nil
}

// Handler returns the router wrapped in the recovery and CORS middleware.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.router

	if len(s.allowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(s.allowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type", HeaderActorID, HeaderActorRole}),
		)(handler)
	}

	return handlers.RecoveryHandler()(handler)
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)

	resources := s.router.PathPrefix("/resources/{resourceID}").Subrouter()
	resources.HandleFunc("", s.registerResource).Methods(http.MethodPut)
	resources.HandleFunc("/reservations", s.requestReservation).Methods(http.MethodPost)
	resources.HandleFunc("/reservations", s.listForResource).Methods(http.MethodGet)

	reservations := s.router.PathPrefix("/reservations").Subrouter()
	reservations.HandleFunc("", s.listAll).Methods(http.MethodGet)
	reservations.HandleFunc("/{reservationID}", s.details).Methods(http.MethodGet)
	reservations.HandleFunc("/{reservationID}", s.deleteReservation).Methods(http.MethodDelete)
	reservations.HandleFunc("/{reservationID}/approve", s.approve).Methods(http.MethodPost)
	reservations.HandleFunc("/{reservationID}/reject", s.reject).Methods(http.MethodPost)
	reservations.HandleFunc("/{reservationID}/cancel", s.cancel).Methods(http.MethodPost)

	s.router.HandleFunc("/requesters/{requesterID}/reservations", s.listByRequester).Methods(http.MethodGet)
	s.router.HandleFunc("/owners/{ownerID}/reservations", s.listByOwner).Methods(http.MethodGet)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

/*** request parsing ***/

func actorFrom(r *http.Request) (core.Actor, error) {
	id, err := uuid.Parse(r.Header.Get(HeaderActorID))
	if err != nil {
		return core.Actor{}, errors.Join(ErrMissingActor, err)
	}

	role, err := core.ParseRole(r.Header.Get(HeaderActorRole))
	if err != nil {
		return core.Actor{}, err
	}

	return core.BuildActor(id, role), nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, errors.Join(reservation.ErrValidation, ErrMalformedInput, fmt.Errorf("%s: %w", name, err))
	}

	return id, nil
}

func statusParam(r *http.Request) (reservation.Status, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return "", nil
	}

	return reservation.ParseStatus(raw)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, into any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(into); err != nil {
		return errors.Join(reservation.ErrValidation, ErrMalformedInput, err)
	}

	if err := s.validate.Struct(into); err != nil {
		return errors.Join(reservation.ErrValidation, err)
	}

	return nil
}

/*** response writing ***/

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, logMsgEncodingFailed, logAttrError, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.ErrorContext(r.Context(), logMsgRequestFailed,
			logAttrMethod, r.Method,
			logAttrPath, r.URL.Path,
			logAttrStatus, status,
			logAttrError, err.Error(),
		)
	}

	s.writeJSON(r.Context(), w, status, toErrorResponse(err, status))
}

func (s *Server) now() time.Time {
	return s.clock()
}
