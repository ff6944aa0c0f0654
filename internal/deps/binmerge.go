package deps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mergehelper/internal/config"
)

// EnsureBinmerge makes sure the binmerge script exists at the configured
// path, downloading it when absent. Returns the script path.
func EnsureBinmerge(ctx context.Context, cfg *config.Config) (string, error) {
	path := cfg.Merge.BinmergePath
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat binmerge script: %w", err)
	}

	if cfg.Merge.DownloadURL == "" {
		return "", fmt.Errorf("binmerge script missing at %s and no download URL configured", path)
	}

	timeout := time.Duration(cfg.Merge.DownloadTimeout) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := download(ctx, cfg.Merge.DownloadURL, path); err != nil {
		return "", fmt.Errorf("download binmerge: %w", err)
	}
	return path, nil
}

func download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	// Write to a sibling temp file first so a failed download never leaves a
	// truncated script at the configured path.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o755); err != nil {
		return err
	}
	return os.Rename(tmpName, dest)
}
