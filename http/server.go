package http

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/notiondocx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DocxContentType is the media type of a .docx package.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DownloadName is the file name offered for every converted document.
const DownloadName = notiondocx.DefaultOutputName

// DefaultRetrieveTimeout is used when a request does not set a timeout.
const DefaultRetrieveTimeout = 30 * time.Second

// MaxBodyBytes caps the size of a conversion request body.
const MaxBodyBytes = 1 << 20

//go:embed assets/index.html
var indexHTML []byte

// NewRetrieverFunc creates a retriever for one conversion request.
type NewRetrieverFunc func(timeout time.Duration, showBrowser bool) notiondocx.Retriever

// Server serves the browser UI and the conversion endpoint.
type Server struct {
	router       chi.Router
	converter    notiondocx.Converter
	newRetriever NewRetrieverFunc
	limiter      *ClientLimiter
	log          *slog.Logger
}

// NewServer creates and configures the HTTP server. A nil limiter
// disables rate limiting.
func NewServer(converter notiondocx.Converter, newRetriever NewRetrieverFunc, limiter *ClientLimiter, log *slog.Logger) *Server {
	s := &Server{
		converter:    converter,
		newRetriever: newRetriever,
		limiter:      limiter,
		log:          log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/convert", s.handleConvert)

	s.router = r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type convertRequest struct {
	URL         string `json:"url"`
	Timeout     int    `json:"timeout"`
	ShowBrowser bool   `json:"show_browser"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set("X-Conversion-ID", id)

	if !s.limiter.Allow(clientKey(r)) {
		s.writeError(w, notiondocx.Errorf(notiondocx.ETOOMANY, "Too many conversions, please wait before trying again."))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, notiondocx.Wrapf(notiondocx.EINVALID, err, "invalid request body"))
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	switch {
	case req.URL == "":
		s.writeError(w, notiondocx.Errorf(notiondocx.EINVALID, "Please provide a Notion page URL."))
		return
	case !strings.HasPrefix(req.URL, "http"):
		s.writeError(w, notiondocx.Errorf(notiondocx.EINVALID, "URL must start with http or https."))
		return
	}

	timeout := DefaultRetrieveTimeout
	if req.Timeout > 0 {
		timeout = time.Duration(req.Timeout) * time.Millisecond
	}

	log := s.log.With("conversion_id", id, "url", req.URL)

	retriever := s.newRetriever(timeout, req.ShowBrowser)
	defer func() {
		if err := retriever.Close(); err != nil {
			log.Warn("closing retriever", "err", err)
		}
	}()

	markup, err := retriever.Retrieve(r.Context(), req.URL)
	if err != nil {
		log.Error("retrieval failed", "err", err)
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	result, err := s.converter.Convert(markup, &buf)
	if err != nil {
		log.Error("conversion failed", "err", err)
		s.writeError(w, err)
		return
	}

	log.Info("converted",
		"title", result.Title,
		"blocks", result.Blocks,
		"images", result.ImageCount,
		"placeholders", result.Placeholders,
		"bytes", buf.Len(),
	)

	w.Header().Set("Content-Type", DocxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Image-Count", strconv.Itoa(result.ImageCount))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// writeError responds with a JSON error body and a status derived from the
// error code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	code := notiondocx.ErrorCode(err)
	if code == notiondocx.EINTERNAL {
		s.log.Error("internal error", "err", err)
	}
	jsonError(w, notiondocx.ErrorMessage(err), ErrorStatus(code))
}

// ErrorStatus maps an application error code to an HTTP status.
func ErrorStatus(code string) int {
	switch code {
	case notiondocx.EINVALID:
		return http.StatusBadRequest
	case notiondocx.ENOTFOUND:
		return http.StatusUnprocessableEntity
	case notiondocx.ERETRIEVAL:
		return http.StatusBadGateway
	case notiondocx.ETOOMANY:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
