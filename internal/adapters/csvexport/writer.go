package csvexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"appstore_reviews/internal/domain"
)

var Header = []string{"ID", "Score", "Name", "Title", "Text", "Updated", "Channel"}

// FileName derives the output file name from an app's display name.
// The name is used verbatim.
func FileName(name string) string { return name + "-reviews.csv" }

type Writer struct{}

func New() *Writer { return &Writer{} }

// Export writes header + one row per review. The file only appears at path
// once fully written and synced.
func (w *Writer) Export(path string, reviews []domain.Review) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reviews-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw := csv.NewWriter(tmp)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for i, r := range reviews {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("write row %d %s: %w", i, path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
