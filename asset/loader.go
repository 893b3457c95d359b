// Package asset loads glTF and GLB models from disk or over http.
package asset

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/oliverbestmann/vitrine/tick"
	"github.com/qmuntal/gltf"
)

// Loader fetches and decodes models. All callbacks of an asynchronous
// load run on the goroutine owning the Poster.
type Loader struct {
	Client *http.Client

	// OnProgress receives the loaded fraction in [0, 1]. It is not
	// called if the size of the source is unknown.
	OnProgress func(fraction float64)

	OnLoad  func(model *Model)
	OnError func(err error)
}

// Load fetches source synchronously. A source starting with http:// or
// https:// is fetched with the loaders http client, everything else is
// treated as a file path.
func (l *Loader) Load(ctx context.Context, source string) (*Model, error) {
	return l.load(ctx, source, l.OnProgress)
}

// LoadAsync fetches source on a new goroutine and reports the result
// through the callbacks. The returned channel is closed once the final
// callback was posted.
func (l *Loader) LoadAsync(ctx context.Context, poster tick.Poster, source string) <-chan struct{} {
	done := make(chan struct{})

	progress := func(fraction float64) {
		if l.OnProgress != nil {
			poster.Post(func() { l.OnProgress(fraction) })
		}
	}

	go func() {
		defer close(done)

		model, err := l.load(ctx, source, progress)
		if err != nil {
			if l.OnError != nil {
				poster.Post(func() { l.OnError(err) })
			}

			return
		}

		if l.OnLoad != nil {
			poster.Post(func() { l.OnLoad(model) })
		}
	}()

	return done
}

func (l *Loader) load(ctx context.Context, source string, progress func(float64)) (*Model, error) {
	slog.Info("Load model", slog.String("source", source))

	reader, size, fsys, err := l.open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", source, err)
	}

	defer reader.Close()

	doc := new(gltf.Document)

	counting := &progressReader{reader: reader, total: size, progress: progress}
	if err := gltf.NewDecoderFS(counting, fsys).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode %q: %w", source, err)
	}

	model, err := Convert(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %q: %w", source, err)
	}

	slog.Info("Model loaded",
		slog.String("source", source),
		slog.Int("nodes", len(doc.Nodes)),
		slog.Int("clips", len(model.Clips)),
	)

	return model, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, int64, fs.FS, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, 0, nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, 0, nil, err
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, 0, nil, fmt.Errorf("unexpected status %s", resp.Status)
		}

		// external buffers can not be resolved, only self contained files work
		return resp.Body, resp.ContentLength, emptyFS{}, nil
	}

	fp, err := os.Open(source)
	if err != nil {
		return nil, 0, nil, err
	}

	stat, err := fp.Stat()
	if err != nil {
		_ = fp.Close()
		return nil, 0, nil, err
	}

	return fp, stat.Size(), os.DirFS(filepath.Dir(source)), nil
}

type progressReader struct {
	reader   io.Reader
	loaded   int64
	total    int64
	progress func(float64)

	// last reported whole percent
	percent int
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.loaded += int64(n)

	if n > 0 && r.total > 0 && r.progress != nil {
		fraction := min(1, float64(r.loaded)/float64(r.total))

		if percent := int(fraction * 100); percent != r.percent || fraction == 1 {
			r.percent = percent
			r.progress(fraction)
		}
	}

	return n, err
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
