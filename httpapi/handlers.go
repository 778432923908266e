package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lvillar/podsign"
)

// uploadPage is the whole UI: pick a delivery note, get the signed copy
// back as a download.
const uploadPage = `<!DOCTYPE html>
<html>
<head><title>podsign</title></head>
<body>
<h1>podsign</h1>
<p>Upload a Delivery Note / POD PDF to sign the subcontractor, receiver name, and date.</p>
<form action="/sign" method="post" enctype="multipart/form-data">
<input type="file" name="file" accept="application/pdf" required>
<button type="submit">Sign</button>
</form>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, uploadPage)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// handleSign accepts a multipart upload under "file" and responds with
// the signed document as an attachment. Extraction misses are not errors:
// the fields come back as "Unknown" in the response headers and the
// document is still produced. Only an unreadable PDF fails the request.
func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing or oversized 'file' upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "reading upload failed", http.StatusBadRequest)
		return
	}

	res, err := s.signer.Sign(header.Filename, data)
	if err != nil {
		s.log.Warn("signing failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		if errors.Is(err, podsign.ErrExtract) {
			http.Error(w, "could not read the PDF; is it a valid text-based document?", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "signing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Signed)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": res.Filename}))
	w.Header().Set("X-Podsign-Subcon", res.Fields.Subcon.Value)
	w.Header().Set("X-Podsign-Subcon-Found", strconv.FormatBool(res.Fields.Subcon.Found))
	w.Header().Set("X-Podsign-Receiver", res.Fields.Receiver.Value)
	w.Header().Set("X-Podsign-Receiver-Found", strconv.FormatBool(res.Fields.Receiver.Found))
	w.Write(res.Signed)
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags every request with an ID and logs its outcome.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
