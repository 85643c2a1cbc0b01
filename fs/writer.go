// Package fs persists extraction results as JSON files.
package fs

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/siteglean/siteglean"
)

// ResultFilename derives a stable, filesystem-safe filename from the
// extraction's root URL. Example: https://www.example.com → example.com.json
func ResultFilename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", siteglean.Errorf(siteglean.EINVALID, "cannot derive filename from %q", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return host + ".json", nil
}

// Writer writes extraction results to a directory, one JSON file per site.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult writes a result as pretty-printed JSON. The write is atomic:
// the file is staged under a temporary name and renamed into place, so a
// concurrent reader never sees a partial result.
func (w *Writer) WriteResult(result *siteglean.ExtractionResult) (string, error) {
	if result == nil {
		return "", siteglean.Errorf(siteglean.EINVALID, "nil result")
	}
	name, err := ResultFilename(result.URL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", siteglean.Errorf(siteglean.EINTERNAL, "creating output directory: %v", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", siteglean.Errorf(siteglean.EINTERNAL, "encoding result: %v", err)
	}
	data = append(data, '\n')

	fullPath := filepath.Join(w.baseDir, name)
	tmp, err := os.CreateTemp(w.baseDir, name+".tmp-*")
	if err != nil {
		return "", siteglean.Errorf(siteglean.EINTERNAL, "staging result file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", siteglean.Errorf(siteglean.EINTERNAL, "writing result file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", siteglean.Errorf(siteglean.EINTERNAL, "closing result file: %v", err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return "", siteglean.Errorf(siteglean.EINTERNAL, "publishing result file: %v", err)
	}
	return fullPath, nil
}
