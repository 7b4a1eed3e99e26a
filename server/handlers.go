package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/proofpipe/core"
)

//go:embed templates/index.html
var templates embed.FS

var indexPage = template.Must(template.ParseFS(templates, "templates/index.html"))

// maxBodyBytes caps form and JSON request bodies.
const maxBodyBytes = 1 << 20

// Runner runs one proofreading request.
type Runner interface {
	Run(ctx context.Context, req core.Request) (core.Result, error)
}

// Handler serves the form page and the JSON API.
type Handler struct {
	runner        Runner
	store         core.ArtifactStore
	pdf           core.Renderer
	trustedPrefix string
	logger        *slog.Logger
}

// NewHandler creates a Handler. The store serves the last output and pdf
// renders it on demand.
func NewHandler(runner Runner, store core.ArtifactStore, pdf core.Renderer, trustedPrefix string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		runner:        runner,
		store:         store,
		pdf:           pdf,
		trustedPrefix: trustedPrefix,
		logger:        logger,
	}
}

type pageData struct {
	InputText     string
	URL           string
	TrustedPrefix string
	// OutputText is validated model markup and is rendered unescaped.
	OutputText template.HTML
	Error      string
}

// Form renders the empty form.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pageData{})
}

// SubmitForm runs the form's request and re-renders the page with the
// output or the error message.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		status, _ := classify(errBadRequest)
		h.renderPage(w, r, status, pageData{Error: "The form could not be read."})
		return
	}

	req := core.Request{
		RawText:   r.PostFormValue("raw_text"),
		SourceURL: r.PostFormValue("url"),
	}
	data := pageData{InputText: req.RawText, URL: req.SourceURL}

	res, err := h.runner.Run(r.Context(), req)
	if err != nil {
		status, _ := classify(err)
		data.Error = message(err)
		h.renderPage(w, r, status, data)
		return
	}

	data.OutputText = template.HTML(res.Output)
	h.renderPage(w, r, http.StatusOK, data)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.TrustedPrefix = h.trustedPrefix
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexPage.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "render page", "error", err)
	}
}

// Proofread handles POST /api/v1/proofread.
func (h *Handler) Proofread(w http.ResponseWriter, r *http.Request) {
	var req core.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, errBadRequest, h.logger)
		return
	}

	res, err := h.runner.Run(r.Context(), req)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Output handles GET /api/v1/output, returning the last artifact.
func (h *Handler) Output(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Load(r.Context())
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// OutputPDF handles GET /api/v1/output.pdf.
func (h *Handler) OutputPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Load(r.Context())
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}

	pdf, err := h.pdf.Render(string(data), core.ExportMetadata{
		Location:   h.store.Location(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="output`+h.pdf.Extension()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
