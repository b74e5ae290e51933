package table

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
)

// WriteIndexed writes the picked rows to path with two leading columns: an
// unnamed positional index 0..k-1 and "index", the row's position in rows.
// The file is written beside path and renamed into place.
func WriteIndexed(path string, header []string, rows [][]string, picks []int) error {
	out := make([][]string, 0, len(picks)+1)
	out = append(out, append([]string{"", "index"}, header...))
	for i, p := range picks {
		if p < 0 || p >= len(rows) {
			return eris.Errorf("table: pick %d out of range for %d rows", p, len(rows))
		}
		rec := make([]string, 0, len(header)+2)
		rec = append(rec, strconv.Itoa(i), strconv.Itoa(p))
		rec = append(rec, rows[p]...)
		out = append(out, rec)
	}
	return writeAtomic(path, out)
}

func writeAtomic(path string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "table: create temp for %s", path)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		return eris.Wrapf(err, "table: write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "table: close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return eris.Wrapf(err, "table: chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return eris.Wrapf(err, "table: publish %s", path)
	}
	committed = true
	return nil
}
