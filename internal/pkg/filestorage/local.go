// Package filestorage saves uploaded binaries under a flat uploads directory
// and serves them back as static URLs. Stored names follow the
// {category}_{unixtime}_{originalname} pattern the rest of the campus
// tooling expects, so files remain identifiable without a lookup table.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vhce/collegehub/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // base URL under which the directory is served
}

// NewLocalStorage creates a LocalStorage rooted at basePath, ensuring the
// directory exists. baseURL is prepended to returned file links.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// storedName builds "{category}_{unixtime}_{originalname}" with spaces in
// the original name replaced so links stay unescaped-safe.
func storedName(category, original string) string {
	safe := strings.ReplaceAll(filepath.Base(original), " ", "_")
	return fmt.Sprintf("%s_%d_%s", category, time.Now().Unix(), safe)
}

// SaveUpload stores a multipart upload in the root of the uploads directory
// and returns (stored filename, public URL).
func (ls *LocalStorage) SaveUpload(category string, fh *multipart.FileHeader) (string, string, error) {
	return ls.SaveUploadTo("", category, fh)
}

// SaveUploadTo stores a multipart upload under an optional subdirectory
// (e.g. advisor docs keyed by year/section) and returns the stored filename
// relative to the uploads root plus its public URL.
func (ls *LocalStorage) SaveUploadTo(subDir, category string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("no file uploaded")
	}

	src, err := fh.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to open uploaded file")
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return ls.SaveRawTo(subDir, category, fh.Filename, data)
}

// SaveRaw stores already-read bytes in the uploads root. Import flows use
// this to retain the original sheet for the paired undo operation.
func (ls *LocalStorage) SaveRaw(category, originalName string, data []byte) (string, string, error) {
	return ls.SaveRawTo("", category, originalName, data)
}

// SaveRawTo stores bytes under an optional subdirectory.
func (ls *LocalStorage) SaveRawTo(subDir, category, originalName string, data []byte) (string, string, error) {
	dir := ls.basePath
	if subDir != "" {
		dir = filepath.Join(ls.basePath, subDir)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
			return "", "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	name := storedName(category, originalName)
	dstPath := filepath.Join(dir, name)
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file")
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	rel := name
	if subDir != "" {
		rel = subDir + "/" + name
	}

	logger.Info().Str("filename", originalName).Str("saved_as", rel).Msg("File saved")
	return rel, ls.URL(rel), nil
}

// URL returns the public URL for a stored filename.
func (ls *LocalStorage) URL(storedName string) string {
	return ls.baseURL + "/" + storedName
}

// FindByPrefix returns the stored names (relative to the uploads root) of
// files in subDir whose name starts with prefix. Import batches are located
// this way: the batch id prefixes the retained sheet's filename.
func (ls *LocalStorage) FindByPrefix(subDir, prefix string) ([]string, error) {
	dir := filepath.Join(ls.basePath, subDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		rel := e.Name()
		if subDir != "" {
			rel = subDir + "/" + e.Name()
		}
		names = append(names, rel)
	}
	return names, nil
}

// ReadFile reads back a stored file by the name SaveRaw/SaveUpload returned.
func (ls *LocalStorage) ReadFile(storedName string) ([]byte, error) {
	path, err := ls.physicalPath(storedName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored file %s: %w", storedName, err)
	}
	return data, nil
}

// DeleteFile removes a stored file. Accepts either the stored filename or a
// full URL as written into file_link columns. Missing files are treated as
// already deleted.
func (ls *LocalStorage) DeleteFile(nameOrURL string) error {
	if nameOrURL == "" {
		return nil
	}

	name := nameOrURL
	if ls.baseURL != "" && strings.HasPrefix(nameOrURL, ls.baseURL) {
		name = strings.TrimPrefix(strings.TrimPrefix(nameOrURL, ls.baseURL), "/")
	}

	path, err := ls.physicalPath(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn().Str("path", path).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", path).Msg("File deleted")
	return nil
}

// physicalPath resolves a stored name inside basePath, rejecting anything
// that would escape it.
func (ls *LocalStorage) physicalPath(name string) (string, error) {
	cleaned := filepath.Clean("/" + name)
	path := filepath.Join(ls.basePath, cleaned)
	if !strings.HasPrefix(path, filepath.Clean(ls.basePath)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file path: %s", name)
	}
	return path, nil
}
