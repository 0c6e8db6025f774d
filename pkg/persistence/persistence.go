// Package persistence stores small JSON state blobs (account snapshots)
// under a base directory, one file per key, written atomically.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sparkfi/sparkgo/pkg/logger"
)

// Service hands out stores scoped by key.
type Service interface {
	NewStore(prefix, id, tag string) Store
}

// Store saves and loads one JSON value.
type Store interface {
	Save(data interface{}) error
	Load(data interface{}) error
}

// ErrNotExists marks a Load against a key that was never saved.
var ErrNotExists = fmt.Errorf("persistence data not exists")

// JSONFileService is the file-backed Service.
type JSONFileService struct {
	baseDir string
}

func NewJSONFileService(baseDir string) *JSONFileService {
	return &JSONFileService{baseDir: baseDir}
}

func (s *JSONFileService) NewStore(prefix, id, tag string) Store {
	key := fmt.Sprintf("%s:%s:%s", prefix, id, tag)
	return &JSONFileStore{service: s, key: key}
}

// JSONFileStore holds one key's value in <baseDir>/<sanitized key>.json.
type JSONFileStore struct {
	service *JSONFileService
	key     string
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (s *JSONFileStore) filePath() string {
	safe := keySanitizer.ReplaceAllString(s.key, "_")
	return filepath.Join(s.service.baseDir, safe+".json")
}

func (s *JSONFileStore) Save(data interface{}) error {
	logger.Debugf("[persistence] Save: key=%s", s.key)
	if err := os.MkdirAll(s.service.baseDir, 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	path := s.filePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *JSONFileStore) Load(data interface{}) error {
	b, err := os.ReadFile(s.filePath())
	if os.IsNotExist(err) {
		return ErrNotExists
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, data)
}
