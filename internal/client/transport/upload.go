package transport

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
)

// MultipartFile is one file part of a multipart upload.
type MultipartFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// UploadMultipart posts a multipart form to path. fields are plain form
// values (e.g. the owning propertyId); files become file parts. progress, if
// non-nil, receives (sent, total) byte counts as the request body is consumed
// by the HTTP transport. It reports upload progress, not download.
//
// The request content type is the multipart writer's own (boundary included);
// nothing else is forced onto the binary payload.
func (c *Client) UploadMultipart(ctx context.Context, path string, fields map[string]string, files []MultipartFile, progress func(sent, total int64), out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return err
		}
	}
	for _, f := range files {
		part, err := createFilePart(w, f)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.Data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	total := int64(buf.Len())
	var body io.Reader = bytes.NewReader(buf.Bytes())
	if progress != nil {
		body = &progressReader{r: body, total: total, cb: progress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func createFilePart(w *multipart.Writer, f MultipartFile) (io.Writer, error) {
	if f.ContentType == "" {
		return w.CreateFormFile(f.FieldName, f.FileName)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
	h.Set("Content-Type", f.ContentType)
	return w.CreatePart(h)
}

func escapeQuotes(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// progressReader reports cumulative bytes handed to the HTTP transport.
// Callbacks are serialized; the final callback reports sent == total.
type progressReader struct {
	r     io.Reader
	total int64
	cb    func(sent, total int64)

	mu   sync.Mutex
	sent int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.sent += int64(n)
		sent := p.sent
		p.mu.Unlock()
		p.cb(sent, p.total)
	}
	return n, err
}
