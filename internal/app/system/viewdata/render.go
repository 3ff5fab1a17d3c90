// internal/app/system/viewdata/render.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderStatus renders a full page with a non-200 status. The status is
// held until the first body write, so headers the renderer sets still go
// out and a render failure can still replace the status.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	renderWith(w, status, func(w http.ResponseWriter) {
		templates.Render(w, r, name, data)
	})
}

func renderWith(w http.ResponseWriter, status int, render func(http.ResponseWriter)) {
	sw := &statusWriter{ResponseWriter: w, status: status}
	defer sw.flush()
	render(sw)
}

// statusWriter defers WriteHeader until the first Write.
type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.wrote {
		return
	}
	sw.wrote = true
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wrote {
		sw.WriteHeader(sw.status)
	}
	return sw.ResponseWriter.Write(b)
}

// flush sends the held status when nothing was written, including when
// the renderer panics.
func (sw *statusWriter) flush() {
	if !sw.wrote {
		sw.WriteHeader(sw.status)
	}
}

func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }
