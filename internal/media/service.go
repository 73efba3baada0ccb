package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
)

var identifierSafe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Request identifies one generated image. Kind and ID scope the
// entity, SubID distinguishes multiple images of the same entity.
type Request struct {
	Kind   string
	ID     string
	SubID  int
	Prompt string
	Width  int
	Height int
}

func (r Request) identifier() string {
	raw := fmt.Sprintf("%s_%s_%d", r.Kind, r.ID, r.SubID)
	return identifierSafe.ReplaceAllString(raw, "_")
}

// Service caches generated product imagery on local disk. Concurrent
// requests for the same image share one upstream fetch.
type Service struct {
	cfg    config.MediaConfig
	client *http.Client
	group  singleflight.Group
	logg   *logger.Logger
}

// NewService prepares the cache directory and HTTP client.
func NewService(cfg config.MediaConfig, logg *logger.Logger) (*Service, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("media cache dir is required")
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media cache dir: %w", err)
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		logg:   logg,
	}, nil
}

// Ensure returns the local path of the image, fetching and caching it
// on first use.
func (s *Service) Ensure(ctx context.Context, req Request) (string, error) {
	if req.Kind == "" || req.ID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "media kind and id are required")
	}

	path := filepath.Join(s.cfg.CacheDir, req.identifier()+".png")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	_, err, _ := s.group.Do(req.identifier(), func() (any, error) {
		// a racing request may have fetched while we waited
		if _, err := os.Stat(path); err == nil {
			return nil, nil
		}
		// waiters share this flight, so the fetch must not die
		// with the caller whose context the closure captured
		return nil, s.fetch(context.WithoutCancel(ctx), req, path)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// ClearCache drops every cached image.
func (s *Service) ClearCache() error {
	entries, err := os.ReadDir(s.cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("reading media cache dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.CacheDir, entry.Name())); err != nil {
			return fmt.Errorf("removing cached image %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, req Request, path string) error {
	endpoint := s.cfg.GeneratorURL + "/" + url.PathEscape(req.Prompt)
	query := url.Values{}
	if req.Width > 0 {
		query.Set("width", strconv.Itoa(req.Width))
	}
	if req.Height > 0 {
		query.Set("height", strconv.Itoa(req.Height))
	}
	query.Set("nologo", "true")
	endpoint += "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building image request")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching generated image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("image generator returned %d", resp.StatusCode))
	}

	tmp, err := os.CreateTemp(s.cfg.CacheDir, "download-*")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing image")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "committing cached image")
	}

	if s.logg != nil {
		s.logg.Debug(s.logg.WithField(ctx, "image", req.identifier()), "image cached")
	}
	return nil
}
