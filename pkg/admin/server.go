package admin

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
	"github.com/Jacobbrewer1/ticketdesk/pkg/panel"
	"github.com/gorilla/sessions"
	"golang.org/x/time/rate"
)

const (
	// PathIndex is the root of the admin surface.
	PathIndex = "/"

	// PathPanel is the ticket panel form.
	PathPanel = "/ticket-panel"

	sessionName = "ticketdesk_admin"

	flashSuccess = "success"
	flashError   = "error"
)

// Form field names.
const (
	FieldChannel     = "channel"
	FieldTitle       = "embed_title"
	FieldDescription = "embed_description"
	FieldColor       = "embed_color"
	FieldFooter      = "embed_footer"
	FieldFooterURL   = "footer_url"
	FieldAuthor      = "embed_author"
	FieldAuthorURL   = "embed_author_url"
	FieldImage       = "embed_image"
)

//go:embed templates/*.html
var templateFS embed.FS

var errMissingField = errors.New("missing form field")

// ChannelLister lists the channels a panel can be sent to.
type ChannelLister interface {
	ChannelNames() []string
}

// Publisher schedules a panel to be sent.
type Publisher interface {
	Publish(f panel.Form) (*dispatch.Future, error)
}

type flash struct {
	Kind    string
	Message string
}

type pageData struct {
	Action   string
	Channels []string
	Flashes  []flash
}

// Server is the admin surface for sending ticket panels. It has no authentication.
type Server struct {
	l         *slog.Logger
	channels  ChannelLister
	publisher Publisher
	store     sessions.Store
	limiter   *rate.Limiter
	tmpl      *template.Template
}

// Option configures the server.
type Option func(*Server)

// WithLimiter throttles panel submissions. Submissions over the limit are rejected, not queued.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(s *Server) {
		s.limiter = limiter
	}
}

// NewServer creates a new admin server.
func NewServer(l *slog.Logger, channels ChannelLister, publisher Publisher, store sessions.Store, opts ...Option) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/ticket_panel.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	s := &Server{
		l:         l.With(slog.String("component", "admin")),
		channels:  channels,
		publisher: publisher,
		store:     store,
		tmpl:      tmpl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Index redirects to the panel form.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, PathPanel, http.StatusFound)
}

// PanelForm renders the form with the channels known to the directory and any pending status messages.
func (s *Server) PanelForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Action:   PathPanel,
		Channels: s.channels.ChannelNames(),
		Flashes:  s.popFlashes(w, r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "ticket_panel.html", data); err != nil {
		s.l.Error("Error rendering ticket panel form", slog.String(logging.KeyError, err.Error()))
	}
}

// SubmitPanel schedules the panel and redirects back to the form. Success means the panel was
// scheduled; whether it was delivered only shows in the logs.
func (s *Server) SubmitPanel(w http.ResponseWriter, r *http.Request) {
	defer http.Redirect(w, r, PathPanel, http.StatusFound)

	if s.limiter != nil && !s.limiter.Allow() {
		s.l.Warn("Ticket panel submission throttled")
		s.addFlash(w, r, flashError, messages.ErrPanelThrottled)
		return
	}

	form, err := parseForm(r)
	if err != nil {
		s.l.Error("Error processing ticket panel request", slog.String(logging.KeyError, err.Error()))
		s.addFlash(w, r, flashError, messages.ErrPanelGeneric)
		return
	}

	s.l.Info("Received request to send ticket panel", slog.String(logging.KeyChannel, form.Channel))

	_, err = s.publisher.Publish(form)
	switch {
	case errors.Is(err, panel.ErrTargetChannelNotFound):
		s.l.Error("Channel not found in any guild", slog.String(logging.KeyChannel, form.Channel))
		s.addFlash(w, r, flashError, messages.ErrPanelChannelNotFound)
	case errors.Is(err, panel.ErrInvalidColor):
		s.l.Error("Invalid input", slog.String(logging.KeyError, err.Error()))
		s.addFlash(w, r, flashError, messages.ErrPanelInvalidInput)
	case err != nil:
		s.l.Error("Error processing ticket panel request", slog.String(logging.KeyError, err.Error()))
		s.addFlash(w, r, flashError, messages.ErrPanelGeneric)
	default:
		s.addFlash(w, r, flashSuccess, fmt.Sprintf(messages.PanelSent, form.Channel))
	}
}

func parseForm(r *http.Request) (panel.Form, error) {
	if err := r.ParseForm(); err != nil {
		return panel.Form{}, fmt.Errorf("error parsing form: %w", err)
	}

	fields := []string{
		FieldChannel, FieldTitle, FieldDescription, FieldColor, FieldFooter,
		FieldFooterURL, FieldAuthor, FieldAuthorURL, FieldImage,
	}
	for _, f := range fields {
		if _, ok := r.PostForm[f]; !ok {
			return panel.Form{}, fmt.Errorf("%w: %s", errMissingField, f)
		}
	}

	return panel.Form{
		Channel:       r.PostForm.Get(FieldChannel),
		Title:         r.PostForm.Get(FieldTitle),
		Description:   r.PostForm.Get(FieldDescription),
		Color:         r.PostForm.Get(FieldColor),
		Footer:        r.PostForm.Get(FieldFooter),
		FooterIconURL: r.PostForm.Get(FieldFooterURL),
		Author:        r.PostForm.Get(FieldAuthor),
		AuthorIconURL: r.PostForm.Get(FieldAuthorURL),
		Image:         r.PostForm.Get(FieldImage),
	}, nil
}

func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		// A cookie signed with an old key, a fresh session is returned alongside the error.
		s.l.Debug("Discarding admin session", slog.String(logging.KeyError, err.Error()))
	}

	session.AddFlash(msg, kind)
	if err := session.Save(r, w); err != nil {
		s.l.Error("Error saving admin session", slog.String(logging.KeyError, err.Error()))
	}
}

func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []flash {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		s.l.Debug("Discarding admin session", slog.String(logging.KeyError, err.Error()))
	}

	var flashes []flash
	for _, kind := range []string{flashSuccess, flashError} {
		for _, f := range session.Flashes(kind) {
			if msg, ok := f.(string); ok {
				flashes = append(flashes, flash{Kind: kind, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		if err := session.Save(r, w); err != nil {
			s.l.Error("Error saving admin session", slog.String(logging.KeyError, err.Error()))
		}
	}
	return flashes
}
