package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for the ingestion pipeline. Handlers map ErrValidation
// to 400 and ErrStorage to 500.
var (
	ErrValidation = errors.New("invalid file")
	ErrStorage    = errors.New("storage failure")
)

// Kind partitions uploads by media type. Each kind carries its own
// extension allow-set and fallback extension.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

var kindExtensions = map[Kind]map[string]bool{
	KindImage: {"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true},
	KindVideo: {"mp4": true, "mov": true, "avi": true, "mkv": true, "wmv": true, "flv": true, "webm": true},
	KindAudio: {"mp3": true, "wav": true, "m4a": true, "aac": true, "flac": true, "ogg": true, "wma": true},
}

// An unknown extension is coerced to the kind's fallback rather than
// rejected. The uploaded bytes are stored as-is either way, so a
// mislabeled upload degrades to an unplayable file, never to a file
// served under a client-chosen dangerous extension.
var kindFallback = map[Kind]string{
	KindImage: "jpg",
	KindVideo: "mp4",
	KindAudio: "mp3",
}

var kindPrefix = map[Kind]string{
	KindImage: "thumb",
	KindVideo: "video",
	KindAudio: "music",
}

// LocalStore persists uploaded assets in a single flat directory and
// hands out absolute locators under the configured public base URL.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed and returns a
// store rooted there. Directory creation failure is a startup error,
// not something to discover on the first upload.
func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Dir returns the root of the flat asset directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// NormalizeExtension validates the client-supplied filename and returns
// the extension to store the asset under. An empty filename or one with
// no extension fails with ErrValidation. An extension outside the kind's
// allow-set is replaced by the kind's fallback.
func NormalizeExtension(kind Kind, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: empty filename", ErrValidation)
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: filename %q has no extension", ErrValidation, filename)
	}
	ext = strings.ToLower(ext)
	if !kindExtensions[kind][ext] {
		return kindFallback[kind], nil
	}
	return ext, nil
}

// Save persists the byte stream under a fresh uuid-keyed name and
// returns the asset's public locator. The uuid makes concurrent uploads
// collision-free regardless of uploader or wall clock.
func (s *LocalStore) Save(kind Kind, filename string, r io.Reader) (string, error) {
	ext, err := NormalizeExtension(kind, filename)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.%s", kindPrefix[kind], uuid.New().String(), ext)
	if err := s.write(name, r); err != nil {
		return "", err
	}
	return s.Locator(name), nil
}

// SaveProfileImage stores a user's profile image under a stable name
// keyed only by user ID, deliberately overwriting any prior image.
func (s *LocalStore) SaveProfileImage(userID uint, filename string, r io.Reader) (string, error) {
	ext, err := NormalizeExtension(KindImage, filename)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("profile_%d.%s", userID, ext)
	if err := s.write(name, r); err != nil {
		return "", err
	}
	return s.Locator(name), nil
}

// Locator joins the public base URL with the asset's relative path.
func (s *LocalStore) Locator(name string) string {
	return s.baseURL + "/uploads/" + name
}

// Owns reports whether a locator refers to an asset in this store, as
// opposed to an externally hosted URL stored verbatim.
func (s *LocalStore) Owns(locator string) bool {
	return strings.HasPrefix(locator, s.baseURL+"/uploads/")
}

// Remove deletes the asset a locator points at. Locators this store does
// not own and files already gone are both no-ops: deletion of a catalog
// record must not fail because its asset is external or already absent.
func (s *LocalStore) Remove(locator string) error {
	if !s.Owns(locator) {
		return nil
	}
	name := filepath.Base(locator)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: failed to remove asset %s: %v", ErrStorage, name, err)
	}
	return nil
}

func (s *LocalStore) write(name string, r io.Reader) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %v", ErrStorage, name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%w: failed to write %s: %v", ErrStorage, name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: failed to close %s: %v", ErrStorage, name, err)
	}
	return nil
}
