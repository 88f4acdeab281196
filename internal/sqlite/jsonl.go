package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// ExportJSONL writes one JSON object per section of m, in file order, to
// path atomically.
func ExportJSONL(path string, m *roseconf.Model) error {
	var records []json.RawMessage
	for _, section := range m.Store().Sections() {
		rec, ok := m.Record(section)
		if !ok {
			return fmt.Errorf("section [%s] has no record", section)
		}
		line, err := json.Marshal(toSectionJSON(m, rec))
		if err != nil {
			return fmt.Errorf("marshal [%s]: %w", section, err)
		}
		records = append(records, line)
	}
	return writeJSONL(path, records)
}

func toSectionJSON(m *roseconf.Model, rec *types.Record) sectionJSON {
	out := sectionJSON{
		Section:     rec.ID,
		Kind:        rec.Kind.String(),
		DisplayName: rec.DisplayName,
		Fields:      []fieldJSON{},
	}
	out.Name, _ = rec.Identity()

	for _, key := range rec.Keys() {
		f, _ := rec.Get(key)
		if f.State == types.FieldUnset {
			continue
		}
		out.Fields = append(out.Fields, fieldJSON{
			Key:      key,
			Value:    f.Value,
			Disabled: f.State == types.FieldDisabled,
		})
	}

	if rec.Kind == types.KindRequest {
		out.Links = &linksJSON{Domain: rec.DomainID, Time: rec.TimeID, Use: rec.UseID}
	} else {
		for _, dep := range m.Dependents(rec) {
			out.Requests = append(out.Requests, dep.ID)
		}
	}
	return out
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
