package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/gate"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/pkg/uid"
	"github.com/codewithraj/blog/internal/pkg/view"
)

// Handler is the application-style handler used by this router.
//
// It returns a page response (rendered or redirected) or an error.
type Handler func(r *Request) (*Response, error)

// Response describes what to send back to the browser: either a rendered
// page or a redirect, optionally with flashes and cookies.
type Response struct {
	// Status is the HTTP status; defaults to 200 (or 303 for redirects).
	Status int
	// Page is the template name to render (e.g. "index.html").
	Page string
	// Title is the page title.
	Title string
	// Content is the page-specific payload.
	Content any
	// Errors maps form field names to validation messages.
	Errors map[string]string
	// Form holds submitted values for re-rendering a failed form.
	Form map[string]string
	// RedirectTo issues a see-other redirect instead of rendering.
	RedirectTo string
	// Flashes are one-shot messages shown on the next page.
	Flashes []view.Flash
	// Cookies are set before rendering or redirecting.
	Cookies []*http.Cookie
}

// Config holds dependencies required to build a Router.
type Config struct {
	// Config provides runtime configuration values.
	Config config.Config
	// UUID generates request correlation IDs.
	UUID uid.StringID
	// JWT validates and parses session tokens.
	JWT jwt.JWT
	// Gate decides whether a session is the privileged identity.
	Gate *gate.Gate
	// Instrument provides tracing and metrics helpers.
	Instrument instrument.Instrumentation
	// View renders HTML pages.
	View *view.Renderer
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr         *httprouter.Router
	view       *view.Renderer
	gate       *gate.Gate
	errorCodec func(w http.ResponseWriter, r *http.Request, err error)
	mws        []Middleware
}

// NewRouter builds the application router with standard middleware.
func NewRouter(cfg Config) *Router {
	ro := &Router{
		view: cfg.View,
		gate: cfg.Gate,
		mws: []Middleware{
			middlewareRecoverer(cfg.View),
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Instrument),
			middlewareSession(cfg.JWT),
		},
	}

	ro.hr = &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ro.renderError(w, r, http.StatusNotFound, "Page Not Found",
				"The page you are looking for does not exist.")
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ro.renderError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed",
				"That request method is not supported here.")
		}),
	}

	ro.errorCodec = func(w http.ResponseWriter, r *http.Request, err error) {
		var gerr *goerror.Error
		if !errors.As(err, &gerr) {
			ro.renderError(w, r, http.StatusInternalServerError, "Something Went Wrong",
				"An unexpected error occurred. Please try again later.")
			return
		}

		ro.renderError(w, r, gerr.StatusCode(), "Something Went Wrong", gerr.Msg())
	}

	return ro
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// POST registers a POST endpoint using the application Handler signature.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

// GETRaw registers a GET endpoint that writes directly to the response writer.
func (r *Router) GETRaw(path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(http.MethodGet, path, Chain(h, append(r.mws, mws...)...))
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(&Request{Request: re})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			r.errorCodec(w, re, err)
			return
		}
		r.encode(w, re, resp)
	}), append(r.mws, mws...)...))
}

func (r *Router) encode(w http.ResponseWriter, re *http.Request, resp *Response) {
	if resp == nil {
		r.renderError(w, re, http.StatusInternalServerError, "Something Went Wrong",
			"An unexpected error occurred. Please try again later.")
		return
	}

	for _, c := range resp.Cookies {
		http.SetCookie(w, c)
	}

	if resp.RedirectTo != "" {
		setFlashCookie(w, resp.Flashes)
		status := resp.Status
		if status < http.StatusMultipleChoices || status > http.StatusPermanentRedirect {
			status = http.StatusSeeOther
		}
		http.Redirect(w, re, resp.RedirectTo, status)
		return
	}

	flashes := append(popFlashCookie(w, re), resp.Flashes...)
	claims := jwt.GetAuth(re.Context())

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	err := r.view.Render(w, resp.Page, view.Data{
		Title:   resp.Title,
		User:    claims,
		IsAdmin: r.gate.Check(claims) == gate.Allow,
		Flashes: flashes,
		Errors:  resp.Errors,
		Form:    resp.Form,
		Content: resp.Content,
	})
	if err != nil {
		slog.ErrorContext(re.Context(), "server: failed to render page", "page", resp.Page, "error", err)
	}
}

func (r *Router) renderError(w http.ResponseWriter, re *http.Request, status int, title, msg string) {
	claims := jwt.GetAuth(re.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	err := r.view.Render(w, "error.html", view.Data{
		Title:   title,
		User:    claims,
		IsAdmin: r.gate.Check(claims) == gate.Allow,
		Content: struct{ Message string }{Message: msg},
	})
	if err != nil {
		slog.ErrorContext(re.Context(), "server: failed to render error page", "error", err)
	}
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(ctx, "server: failed to encode data to json", "error", err)
	}
}

// WriteJSON writes a JSON payload, used by non-page endpoints like health.
func WriteJSON(w http.ResponseWriter, r *http.Request, data any, code int) {
	writeJSON(r.Context(), w, data, code)
}
