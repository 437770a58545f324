package layoutfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// DigestSuffix is appended to a layout path to name its digest file.
const DigestSuffix = ".digest"

// Layout is a template read from disk.
type Layout struct {
	Path    string
	Content string

	// Tracked is true when a digest file exists for the layout.
	Tracked bool

	// Modified is true when the content no longer matches the
	// stored digest.
	Modified bool
}

// Save writes content to path and records its digest. The layout is
// written to a temporary file first and renamed into place.
func Save(path string, content string) error {
	const errCtx = "saving layout"

	if err := writeAtomic(path, []byte(content)); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := writeAtomic(
		path+DigestSuffix, []byte(Digest([]byte(content))),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("layout saved", "path", path, "bytes", len(content))

	return nil
}

// Open reads the layout at path and compares it against its digest.
func Open(path string) (Layout, error) {
	const errCtx = "opening layout"

	content, err := os.ReadFile(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	stored, err := StoredDigest(path)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	lay := Layout{
		Path:     path,
		Content:  string(content),
		Tracked:  stored != "",
		Modified: stored != "" && stored != Digest(content),
	}

	if lay.Modified {
		slog.Warn("layout changed outside the designer", "path", path)
	}

	return lay, nil
}

// Digest returns the SHA256 hex digest of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)

	return hex.EncodeToString(sum[:])
}

// StoredDigest reads the digest recorded for the layout at path. It
// returns an empty string with no error when none was recorded.
func StoredDigest(path string) (string, error) {
	const errCtx = "reading stored digest"

	digest, err := os.ReadFile(path + DigestSuffix) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(digest), nil
}

// Verify reports whether the layout at path still matches its stored
// digest. Layouts without a digest never match.
func Verify(path string) (bool, error) {
	lay, err := Open(path)
	if err != nil {
		return false, fmt.Errorf("verifying layout: %w", err)
	}

	return lay.Tracked && !lay.Modified, nil
}

func writeAtomic(path string, content []byte) (retErr error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence

		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
