package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/codewithraj/blog/internal/pkg/stacktrace"
	"github.com/codewithraj/blog/internal/pkg/view"
)

func middlewareRecoverer(renderer *view.Renderer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					//nolint:err113,errorlint // this must compare directly
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}

					paths := stacktrace.InternalPaths(debug.Stack())
					if len(paths) == 0 {
						slog.ErrorContext(r.Context(), "panic on the server trace debug", "because", rvr, "stack", string(debug.Stack()))
					} else {
						slog.ErrorContext(r.Context(), "panic on the server", "because", rvr, "stack", paths)
					}

					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)

					//nolint:errcheck // response already failing
					_ = renderer.Render(w, "error.html", view.Data{
						Title:   "Something Went Wrong",
						Content: struct{ Message string }{Message: "An unexpected error occurred. Please try again later."},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
