package api

import (
	"context"

	"github.com/elliot09alderson/estate-client/internal/client/transport"
	"github.com/elliot09alderson/estate-client/internal/client/uploader"
)

// UploadPropertyImages posts image files for a property as one multipart
// request and returns the stored image URLs. The signature matches
// uploader.UploadFunc so the queue can drive it directly.
func (a *API) UploadPropertyImages(ctx context.Context, propertyID string, files []uploader.File, progress func(sent, total int64)) ([]string, error) {
	parts := make([]transport.MultipartFile, len(files))
	for i, f := range files {
		parts[i] = transport.MultipartFile{
			FieldName:   "images",
			FileName:    f.Name,
			ContentType: f.ContentType,
			Data:        f.Data,
		}
	}

	var out struct {
		Images []string `json:"images"`
	}
	fields := map[string]string{"propertyId": propertyID}
	if err := a.rest.UploadMultipart(ctx, "/properties/upload", fields, parts, progress, &out); err != nil {
		return nil, err
	}

	// New images change the property payloads served by cached listings.
	a.cache.Invalidate(ctx, TagProperty)
	return out.Images, nil
}
