package matchapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/lookalike/web/internal/domain"
)

// Multipart field names of POST /match
const (
	FieldImage    = "image"
	FieldImageURL = "imageUrl"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMatchForm builds the multipart body: the image binary or the image
// URL, then one field per active facet. Unset facets are never written.
func encodeMatchForm(req *domain.MatchRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	switch in := req.Input.(type) {
	case domain.FileInput:
		if err := writeImagePart(w, in); err != nil {
			return nil, "", err
		}
	case domain.URLInput:
		if err := w.WriteField(FieldImageURL, strings.TrimSpace(in.Value)); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", domain.ErrNoSearchInput
	}

	for _, fv := range req.Filters.Active() {
		if err := w.WriteField(string(fv.Facet), fv.Value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeImagePart(w *multipart.Writer, in domain.FileInput) error {
	filename := in.Filename
	if filename == "" {
		filename = "upload"
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldImage, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(in.Data)
	return err
}

// decodeMatchResponse interprets a /match reply. A body that cannot be
// parsed is a malformed response regardless of status; a non-2xx status or
// an error field is a backend error carrying the service's message.
func decodeMatchResponse(status int, body []byte) (*domain.MatchResponse, error) {
	var resp domain.MatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", domain.ErrMalformedResponse, status, err)
	}

	if status < 200 || status > 299 || resp.Error != "" {
		return nil, &domain.BackendError{Status: status, Message: resp.Error}
	}

	if resp.Results == nil {
		resp.Results = []domain.Product{}
	}
	return &resp, nil
}

func inputKind(input domain.SearchInput) string {
	switch input.(type) {
	case domain.FileInput:
		return "file"
	case domain.URLInput:
		return "url"
	}
	return "none"
}
