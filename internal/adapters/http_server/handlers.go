package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/adapters/ical"
	"uncharted_escape/internal/app"
	"uncharted_escape/internal/domain"
)

const maxBody = 64 << 10

type Handlers struct {
	Svc *app.Service
	// AILimit wraps the routes that reach the generative collaborator. Nil disables it.
	AILimit func(http.Handler) http.Handler
	Now     func() time.Time
}

type envelope struct {
	Screen *app.Screen `json:"screen,omitempty"`
	Alert  string      `json:"alert,omitempty"`
}

type problem struct {
	Type   string      `json:"type"`
	Title  string      `json:"title"`
	Status int         `json:"status"`
	Detail string      `json:"detail,omitempty"`
	Screen *app.Screen `json:"screen,omitempty"`
	Alert  string      `json:"alert,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	limited := h.AILimit
	if limited == nil {
		limited = func(next http.Handler) http.Handler { return next }
	}

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(Session)

		r.Get("/screen", h.getScreen)
		r.Delete("/session", h.resetSession)
		r.Post("/navigate", h.navigate)

		r.Get("/destinations", h.listDestinations)
		r.Post("/destinations/{id}/select", h.selectDestination)

		r.Post("/login", h.login)
		r.Post("/logout", h.logout)

		r.Post("/bookings", h.book)
		r.Get("/bookings/{id}/calendar.ics", h.calendar)

		r.With(limited).Post("/admin/destinations", h.addDestination)
		r.Post("/admin/bookings/{id}/status", h.updateStatus)

		r.Get("/chat", h.getChat)
		r.With(limited).Post("/chat", h.sendChat)

		r.With(limited).Get("/suggestions", h.suggestions)
		r.Post("/suggestions/click", h.suggestionClick)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	encodeProblem(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func encodeProblem(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps service errors onto problem responses. The screen, when
// the session was still readable, goes along so clients can re-render.
func writeError(w http.ResponseWriter, sc app.Screen, err error) {
	p := problem{Type: "about:blank", Detail: err.Error()}
	if sc.View != "" {
		p.Screen = &sc
	}

	var alert *app.AlertError
	switch {
	case errors.As(err, &alert):
		p.Status, p.Title, p.Alert = http.StatusBadGateway, "Bad Gateway", alert.Alert
	case errors.Is(err, domain.ErrLoginRequired):
		p.Status, p.Title = http.StatusUnauthorized, "Login Required"
	case errors.Is(err, domain.ErrForbidden):
		p.Status, p.Title = http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		p.Status, p.Title = http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownView):
		p.Status, p.Title = http.StatusUnprocessableEntity, "Invalid Request"
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrSuperseded), errors.Is(err, domain.ErrIllegalTransition):
		p.Status, p.Title = http.StatusConflict, "Conflict"
	case errors.Is(err, app.ErrSessionStore):
		log.Error().Err(err).Msg("session store unavailable")
		p.Status, p.Title, p.Detail = http.StatusServiceUnavailable, "Service Unavailable", "session storage unavailable"
	default:
		log.Error().Err(err).Msg("unhandled service error")
		p.Status, p.Title, p.Detail = http.StatusInternalServerError, "Internal Server Error", ""
	}
	encodeProblem(w, p)
}

func respond(w http.ResponseWriter, sc app.Screen, err error) {
	if err != nil {
		writeError(w, sc, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Screen: &sc})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be a JSON object")
		return false
	}
	return true
}

func (h *Handlers) getScreen(w http.ResponseWriter, r *http.Request) {
	sc, err := h.Svc.Screen(r.Context(), SessionID(r.Context()))
	respond(w, sc, err)
}

func (h *Handlers) resetSession(w http.ResponseWriter, r *http.Request) {
	sc, err := h.Svc.Reset(r.Context(), SessionID(r.Context()))
	respond(w, sc, err)
}

func (h *Handlers) navigate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		View domain.ViewKind `json:"view"`
	}
	if !decode(w, r, &in) {
		return
	}
	sc, err := h.Svc.Navigate(r.Context(), SessionID(r.Context()), domain.ViewKind(strings.ToUpper(string(in.View))))
	respond(w, sc, err)
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Svc.Destinations(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, app.Screen{}, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": cards})
}

func (h *Handlers) selectDestination(w http.ResponseWriter, r *http.Request) {
	sc, err := h.Svc.SelectDestination(r.Context(), SessionID(r.Context()), chi.URLParam(r, "id"))
	respond(w, sc, err)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &in) {
		return
	}
	sc, err := h.Svc.Login(r.Context(), SessionID(r.Context()), in.Email, in.Password)
	respond(w, sc, err)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	sc, err := h.Svc.Logout(r.Context(), SessionID(r.Context()))
	respond(w, sc, err)
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	var in app.BookingRequest
	if !decode(w, r, &in) {
		return
	}
	sc, err := h.Svc.Book(r.Context(), SessionID(r.Context()), in)
	respond(w, sc, err)
}

func (h *Handlers) calendar(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.State(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, app.Screen{}, err)
		return
	}
	b, d, err := app.BookingForCalendar(st, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, app.Screen{}, err)
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	body, err := ical.Encode(b, d, now())
	if err != nil {
		writeError(w, app.Screen{}, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-`+b.ID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		log.Error().Err(err).Msg("failed to write calendar body")
	}
}

func (h *Handlers) addDestination(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if !decode(w, r, &in) {
		return
	}
	sc, err := h.Svc.AddDestination(r.Context(), SessionID(r.Context()), in.Name, in.Location)
	if err != nil {
		writeError(w, sc, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Screen: &sc, Alert: app.AlertDestinationAdded})
}

func (h *Handlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status domain.BookingStatus `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	sc, err := h.Svc.UpdateStatus(r.Context(), SessionID(r.Context()), chi.URLParam(r, "id"), in.Status)
	respond(w, sc, err)
}

func (h *Handlers) getChat(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.State(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, app.Screen{}, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"chat": app.Render(st).Chat})
}

func (h *Handlers) sendChat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &in) {
		return
	}
	sc, err := h.Svc.SendChat(r.Context(), SessionID(r.Context()), in.Text)
	respond(w, sc, err)
}

func (h *Handlers) suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": h.Svc.Suggest(r.Context(), q)})
}

func (h *Handlers) suggestionClick(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Request", "name is required")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Alert: app.SuggestionClicked(in.Name)})
}
