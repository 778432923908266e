package httpapi_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gofpdf "github.com/phpdave11/gofpdf"

	"github.com/lvillar/podsign"
	"github.com/lvillar/podsign/httpapi"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	at := time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)
	signer := podsign.New(podsign.WithClock(func() time.Time { return at }))
	return httpapi.NewServer(httpapi.Config{}, signer, nil).Handler()
}

// deliveryNotePDF renders an uploadable fixture in memory.
func deliveryNotePDF(t *testing.T, pageText string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	pdf.Text(40, 80, pageText)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("rendering fixture: %v", err)
	}
	return buf.Bytes()
}

// multipartUpload builds a multipart body with one file part.
func multipartUpload(t *testing.T, field, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestSignEndpoint(t *testing.T) {
	handler := testServer(t)
	pdfData := deliveryNotePDF(t,
		"Subcon: ABC SDN BHD Site Receiver: Jane Doe 12345678/90")

	body, contentType := multipartUpload(t, "file", "note.pdf", pdfData)
	req := httptest.NewRequest(http.MethodPost, "/sign", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if got := rr.Header().Get("X-Podsign-Subcon"); got != "ABC SDN BHD" {
		t.Errorf("X-Podsign-Subcon = %q", got)
	}
	if got := rr.Header().Get("X-Podsign-Receiver"); got != "Jane Doe" {
		t.Errorf("X-Podsign-Receiver = %q", got)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "note_signed_150405.pdf") {
		t.Errorf("Content-Disposition = %q, want derived filename", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body is not a PDF")
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestSignEndpointUnknownFields(t *testing.T) {
	handler := testServer(t)
	pdfData := deliveryNotePDF(t, "Invoice 42 for goods received in March")

	body, contentType := multipartUpload(t, "file", "invoice.pdf", pdfData)
	req := httptest.NewRequest(http.MethodPost, "/sign", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Podsign-Subcon"); got != "Unknown" {
		t.Errorf("X-Podsign-Subcon = %q, want Unknown", got)
	}
	if got := rr.Header().Get("X-Podsign-Subcon-Found"); got != "false" {
		t.Errorf("X-Podsign-Subcon-Found = %q, want false", got)
	}
}

func TestSignEndpointMissingFile(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/sign", strings.NewReader("no file"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestSignEndpointUnreadablePDF(t *testing.T) {
	handler := testServer(t)

	body, contentType := multipartUpload(t, "file", "junk.pdf", []byte("not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/sign", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rr.Code)
	}
}

func TestIndexPage(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `action="/sign"`) {
		t.Error("index page does not contain the upload form")
	}
}

func TestHealthz(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); got != "ok\n" {
		t.Errorf("body = %q, want ok", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := httpapi.DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d, want 32 MiB", cfg.MaxUploadBytes)
	}
	srv := httpapi.NewServer(httpapi.Config{Port: 9999}, nil, nil)
	if got := srv.Addr(); got != "localhost:9999" {
		t.Errorf("Addr = %q, want localhost:9999", got)
	}
}
