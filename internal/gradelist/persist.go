package gradelist

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Serialize writes every record, front to back, to w in format f.
// The derived pass/fail flag is never written.
func (l *List) Serialize(w io.Writer, f Format) error {
	data, err := encode(l.Records(), f)
	if err != nil {
		return formatError("serialize", err)
	}
	if _, err := w.Write(data); err != nil {
		return ioError("serialize", "", err)
	}
	return nil
}

// Deserialize reads a complete document from r and replaces the list's
// contents with it, preserving the persisted order. On any error the list
// is left exactly as it was.
func (l *List) Deserialize(r io.Reader, f Format) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return ioError("deserialize", "", err)
	}
	records, err := decode(data, f)
	if err != nil {
		return formatError("deserialize", err)
	}
	l.Replace(records)
	return nil
}

// SaveFile serializes the list to path. The document is written to a
// temporary file in the same directory and renamed over path, so an
// existing file is never left truncated.
func (l *List) SaveFile(path string, f Format) (err error) {
	var buf bytes.Buffer
	if err := l.Serialize(&buf, f); err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return ioError("save", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return ioError("save", path, err)
	}
	// CreateTemp uses 0600; keep the permissions of the file being replaced.
	if err = tmp.Chmod(mode); err != nil {
		return ioError("save", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return ioError("save", path, err)
	}
	if err = tmp.Close(); err != nil {
		return ioError("save", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return ioError("save", path, err)
	}
	return nil
}

// LoadFile deserializes path into the list. A missing file is an IO_ERROR
// wrapping fs.ErrNotExist.
func (l *List) LoadFile(path string, f Format) error {
	file, err := os.Open(path)
	if err != nil {
		return ioError("load", path, err)
	}
	defer file.Close()

	if err := l.Deserialize(file, f); err != nil {
		if e, ok := err.(*Error); ok {
			e.Path = path
		}
		return err
	}
	return nil
}
