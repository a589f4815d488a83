package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Zip packs a bundle into an in-memory archive. Entries are written in
// sorted path order with zeroed timestamps, so the same bundle always
// produces the same bytes.
func Zip(files map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, path := range sortedPaths(files) {
		header := &zip.FileHeader{
			Name:   path,
			Method: zip.Deflate,
		}
		f, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", path, err)
		}
		if _, err := f.Write([]byte(files[path])); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
