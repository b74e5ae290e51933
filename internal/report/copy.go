package report

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CopyCSVs copies every .csv file under sourceDir to destPath, walking in
// lexical order, so the last one found is what remains. Returns destPath.
func (r *ReportData) CopyCSVs(sourceDir, destPath string) (string, error) {
	var found []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".csv") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", eris.Wrapf(err, "report: walk %s", sourceDir)
	}

	switch {
	case len(found) == 0:
		r.log.Warn("no csv files in download", zap.String("source_dir", sourceDir))
		return destPath, nil
	case len(found) > 1:
		r.log.Warn("multiple csv files in download, last one wins",
			zap.String("source_dir", sourceDir),
			zap.Strings("files", found),
			zap.String("kept", found[len(found)-1]),
		)
	}

	for _, src := range found {
		if err := copyFileAtomic(src, destPath); err != nil {
			return "", err
		}
	}
	return destPath, nil
}

// DownloadDataset fetches source through the hub and copies its CSVs to savePath.
func (r *ReportData) DownloadDataset(ctx context.Context, source, savePath string) (string, error) {
	if r.hub == nil {
		return "", eris.New("report: no dataset hub configured")
	}
	dir, err := r.hub.DatasetDownload(ctx, source)
	if err != nil {
		return "", eris.Wrapf(err, "report: download %s", source)
	}
	return r.CopyCSVs(dir, savePath)
}

func copyFileAtomic(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return eris.Wrapf(err, "report: open %s", src)
	}
	defer in.Close() //nolint:errcheck

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "report: create temp for %s", dest)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return eris.Wrapf(err, "report: copy %s", src)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "report: close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return eris.Wrapf(err, "report: chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return eris.Wrapf(err, "report: publish %s", dest)
	}
	committed = true
	return nil
}
