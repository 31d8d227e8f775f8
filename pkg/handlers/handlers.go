package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/messages"
	"github.com/payback159/contactform/pkg/models"
	"github.com/payback159/contactform/pkg/security"
)

//go:embed templates/*.html
var templateFS embed.FS

// bootScript starts the wasm runtime. It lives outside the page so the CSP
// can forbid inline scripts.
//
//go:embed templates/boot.js
var bootScript []byte

// ParseTemplates parses the embedded page templates
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	Templates *template.Template
	Catalog   *messages.Catalog
	StaticDir string
}

// NewHandler creates a new handler with dependencies
func NewHandler(templates *template.Template, catalog *messages.Catalog, staticDir string) *Handler {
	if catalog == nil {
		catalog = messages.Default()
	}
	return &Handler{
		Templates: templates,
		Catalog:   catalog,
		StaticDir: staticDir,
	}
}

// Routes registers every route on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.HandleHome)
	mux.HandleFunc("/healthz", h.HandleHealth)
	mux.HandleFunc("/boot.js", h.HandleBoot)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(h.StaticDir))))
	return mux
}

// HandleHome renders the contact page
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pageData := models.PageData{
		Title:        "Contact Us",
		QueryOptions: models.QueryOptions,
		ToastText:    h.Catalog.Toast,
		WasmPath:     "/static/main.wasm",
		WasmExecPath: "/static/wasm_exec.js",
	}

	// Render into a buffer so a template error never leaves a half page
	var buf bytes.Buffer
	if err := h.Templates.ExecuteTemplate(&buf, "index.html", pageData); err != nil {
		logging.LogError("Template rendering failed", err,
			"template", "index.html",
			"ip", security.GetClientIP(r))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// HandleBoot serves the wasm bootstrap script
func (h *Handler) HandleBoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(bootScript)
}
