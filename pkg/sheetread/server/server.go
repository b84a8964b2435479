// Package server exposes spreadsheet reading over HTTP.
package server

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetread-go/pkg/sheetread"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/config"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/output"
)

// RequestIDHeader carries the per-request id in responses.
const RequestIDHeader = "X-Request-Id"

// UploadField is the multipart form field holding the spreadsheet.
const UploadField = "file"

var errNoUpload = errors.New("multipart body has no " + UploadField + " part")

// Server serves the upload API.
type Server struct {
	addr      string
	maxUpload int64
	grace     time.Duration
	charset   string
	log       logrus.FieldLogger
	router    *httprouter.Router
}

// New creates a Server from a validated configuration.
func New(cfg config.Config, log logrus.FieldLogger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	maxUpload, _ := cfg.MaxUploadBytes()
	grace, _ := cfg.ShutdownTimeout()

	s := &Server{
		addr:      cfg.Addr,
		maxUpload: maxUpload,
		grace:     grace,
		charset:   cfg.Charset,
		log:       log,
		router:    httprouter.New(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/v1/sheets", s.handleSheets)
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.router)
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(logrus.Fields{
			"addr":       s.addr,
			"max_upload": humanize.Bytes(uint64(s.maxUpload)),
		}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "listen")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleSheets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := loggerFrom(r.Context(), s.log)

	opts, err := s.readOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sheetsOnly, err := boolParam(r.URL.Query().Get("sheets_only"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "sheets_only"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errors.Errorf("upload exceeds %s", humanize.Bytes(uint64(s.maxUpload))))
			return
		}
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "read body"))
		return
	}

	name, buf, err := uploadContent(r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if name == "" {
		name = r.URL.Query().Get("name")
	}

	wb, err := sheetread.ReadWorkbook(buf, opts)
	if err != nil {
		if sheetread.IsDecodeError(err) {
			log.WithError(err).WithFields(rejectFields(name, err)).Info("rejected upload")
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		log.WithError(err).Error("read workbook")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	wb.BookName = name

	var data []byte
	if sheetsOnly {
		data, err = output.SheetsToJSON(wb.Sheets, false)
	} else {
		data, err = output.ToJSON(wb, false)
	}
	if err != nil {
		log.WithError(err).Error("encode response")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.WithFields(logrus.Fields{
		"upload": name,
		"format": wb.Format,
		"sheets": len(wb.Sheets),
		"size":   humanize.Bytes(uint64(len(buf))),
	}).Debug("decoded workbook")

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// readOptions maps query parameters onto reader options.
func (s *Server) readOptions(r *http.Request) (sheetread.Options, error) {
	opts := sheetread.DefaultOptions()
	opts.Charset = s.charset
	query := r.URL.Query()

	format, err := sheetread.ParseFormat(query.Get("format"))
	if err != nil {
		return opts, err
	}
	opts.Format = format

	if opts.Formatted, err = boolParam(query.Get("formatted")); err != nil {
		return opts, errors.Wrap(err, "formatted")
	}
	if opts.PadRows, err = boolParam(query.Get("pad")); err != nil {
		return opts, errors.Wrap(err, "pad")
	}
	if opts.AnchorA1, err = boolParam(query.Get("anchor_a1")); err != nil {
		return opts, errors.Wrap(err, "anchor_a1")
	}
	opts.Password = r.Header.Get("X-Workbook-Password")
	return opts, nil
}

// rejectFields names the upload and, when decoding stopped inside one sheet,
// that sheet and the part that failed.
func rejectFields(name string, err error) logrus.Fields {
	fields := logrus.Fields{"upload": name}
	var extractErr *sheetread.ExtractionError
	if errors.As(err, &extractErr) {
		fields["sheet"] = extractErr.SheetName
		fields["component"] = extractErr.Component
	}
	return fields
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// uploadContent extracts the spreadsheet bytes from a multipart form or
// returns the raw body unchanged.
func uploadContent(contentType string, body []byte) (string, []byte, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return "", body, nil
	}

	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil, errNoUpload
		}
		if err != nil {
			return "", nil, errors.Wrap(err, "parse multipart body")
		}

		if part.FormName() != UploadField {
			part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return "", nil, errors.Wrap(err, "read upload")
		}
		return part.FileName(), data, nil
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	data, _ := output.ErrorJSON(err.Error())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type ctxKey struct{}

func loggerFrom(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if log, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok {
		return log
	}
	return fallback
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withRequestLog tags each request with an id and logs one line per request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set(RequestIDHeader, requestID)

		log := s.log.WithField("request_id", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, log)))

		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"bytes":    rec.bytes,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
