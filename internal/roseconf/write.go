package roseconf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// continuationIndent prefixes the continuation lines of a multi-line value.
const continuationIndent = "    "

// Write serializes the model: the meta line, a blank line, then every
// surviving section in order with key=value options. Disabled options keep
// their marker and values are written unquoted.
func (m *Model) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s/%s\n\n", headerPrefix, m.Module, m.Version)

	for _, sec := range m.store.sections {
		fmt.Fprintf(bw, "[%s]\n", sec.name)
		for _, opt := range sec.options {
			value := strings.ReplaceAll(opt.Value, "\n", "\n"+continuationIndent)
			fmt.Fprintf(bw, "%s=%s\n", opt.Name, value)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Bytes returns the serialized model.
func (m *Model) Bytes() []byte {
	var buf bytes.Buffer
	_ = m.Write(&buf) // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// WriteFile atomically writes the serialized model to path using a temp
// file in the same directory, fsync and rename. The temp file is removed
// on any failure.
func (m *Model) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if err := m.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	renamed = true
	return nil
}
