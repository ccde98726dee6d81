package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rapidcleanouts/landing/pkg/logging"
)

// MaxPhotoBytes caps uploaded photos at 10 MiB.
const MaxPhotoBytes = 10 << 20

// Store persists uploaded photos to a local directory and serves them back
// under the /uploads URL prefix. Filename collisions are avoided by
// millisecond-timestamp prefixing rather than locking.
type Store struct {
	dir           string
	publicBaseURL string
	logger        *logging.Logger
}

// NewStore creates a photo store rooted at dir. publicBaseURL optionally
// overrides request-derived URLs for deployments behind a proxy; leave it
// empty to build URLs from the incoming request's scheme and host.
func NewStore(dir, publicBaseURL string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		dir:           dir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes one uploaded image to disk and returns the stored filename.
// Non-image content types and files over MaxPhotoBytes are rejected with a
// descriptive error before anything is written.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("uploads: only image uploads are allowed, got %q", contentType)
	}
	if header.Size > MaxPhotoBytes {
		return "", fmt.Errorf("uploads: photo exceeds the %d MiB size limit", MaxPhotoBytes>>20)
	}

	name := storedName(header.Filename, time.Now())
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("uploads: create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxPhotoBytes)); err != nil {
		return "", fmt.Errorf("uploads: write %s: %w", name, err)
	}

	s.logger.Info("photo stored", "file", name, "content_type", contentType, "bytes", header.Size)
	return name, nil
}

// PublicURL builds the publicly reachable URL for a stored filename, derived
// from the request unless a base URL override is configured.
func (s *Store) PublicURL(r *http.Request, filename string) string {
	base := s.publicBaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/uploads/" + filename
}

// storedName combines a millisecond timestamp with a sanitized form of the
// original filename: base truncated to 120 chars, extension to 10.
func storedName(original string, now time.Time) string {
	ext := filepath.Ext(original)
	if len(ext) > 10 {
		ext = ext[:10]
	}
	base := strings.TrimSuffix(filepath.Base(original), ext)
	if base == "" || base == "." {
		base = "upload"
	}
	base = sanitize(base)
	if len(base) > 120 {
		base = base[:120]
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), base, sanitize(ext))
}

// sanitize keeps alphanumerics, dots, and dashes; everything else becomes an
// underscore.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
