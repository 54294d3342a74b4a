package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/elliot09alderson/estate-client/internal/client/uploader"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Upload queues the given image files for a property:
// upload <propertyID> <file> [file...].
func (a *App) Upload(ctx context.Context, args []string) error {
	propertyID := args[0]

	files := make([]uploader.File, 0, len(args)-1)
	for _, path := range args[1:] {
		data, err := readFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		ct := mime.TypeByExtension(filepath.Ext(path))
		if ct == "" {
			ct = "application/octet-stream"
		}
		files = append(files, uploader.File{
			Name:        filepath.Base(path),
			ContentType: ct,
			Data:        data,
		})
	}

	ids, err := a.queue.Enqueue(propertyID, files)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Queued %d uploads for property %s", len(ids), propertyID))
	return nil
}

// Uploads prints the state of every item in the queue.
func (a *App) Uploads(ctx context.Context) error {
	items := a.queue.Snapshot()
	if len(items) == 0 {
		printlnFn("Upload queue is empty")
		return nil
	}
	for _, it := range items {
		line := fmt.Sprintf("%s  property %s  %-10s %3d%%", it.ID, it.OwnerID, it.Status, it.Progress)
		if it.Error != "" {
			line += "  " + it.Error
		}
		printlnFn(line)
	}
	return nil
}

// RetryUpload puts a failed upload back into the queue.
func (a *App) RetryUpload(ctx context.Context, args []string) error {
	a.queue.Retry(args[0])
	return nil
}

// CancelUpload removes an upload, aborting it when already in flight.
func (a *App) CancelUpload(ctx context.Context, args []string) error {
	a.queue.Cancel(args[0])
	return nil
}
