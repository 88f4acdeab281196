// Package report renders the requests of a linked model as a table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Row describes one request and the names of the records it links to.
type Row struct {
	Section string `json:"isec"`
	Item    string `json:"item"`
	Name    string `json:"name,omitempty"`
	Domain  string `json:"domain"`
	Time    string `json:"time"`
	Use     string `json:"use"`
}

// Rows returns one row per request in model order.
func Rows(m *roseconf.Model) []Row {
	reqs := m.Requests()
	rows := make([]Row, 0, len(reqs))
	for _, req := range reqs {
		rows = append(rows, Row{
			Section: active(req, "isec"),
			Item:    active(req, "item"),
			Name:    req.DisplayName,
			Domain:  targetName(m, req, types.KindDomain),
			Time:    targetName(m, req, types.KindTime),
			Use:     targetName(m, req, types.KindUse),
		})
	}
	return rows
}

func active(r *types.Record, key string) string {
	f, _ := r.Get(key)
	v, _ := f.Active()
	return v
}

func targetName(m *roseconf.Model, req *types.Record, kind types.Kind) string {
	target, ok := m.Target(req, kind)
	if !ok {
		return ""
	}
	name, _ := target.Identity()
	return name
}

// WriteTable writes rows as right-aligned columns. The name column is left
// out when no row has a name.
func WriteTable(w io.Writer, rows []Row) error {
	named := false
	for _, r := range rows {
		if r.Name != "" {
			named = true
			break
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, r := range rows {
		if named {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", r.Section, r.Item, r.Name, r.Domain, r.Time, r.Use)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Section, r.Item, r.Domain, r.Time, r.Use)
		}
	}
	return tw.Flush()
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Summary counts the records of each kind in a model.
type Summary struct {
	Module   string `json:"module"`
	Version  string `json:"version"`
	Requests int    `json:"requests"`
	Domains  int    `json:"domains"`
	Times    int    `json:"times"`
	Uses     int    `json:"uses"`
	Pairs    int    `json:"section_items"`
}

// Summarize counts a model's records.
func Summarize(m *roseconf.Model) Summary {
	pairs := 0
	for _, s := range m.IndexSections() {
		pairs += len(m.IndexItems(s))
	}
	return Summary{
		Module:   m.Module,
		Version:  m.Version,
		Requests: len(m.Requests()),
		Domains:  len(m.Domains()),
		Times:    len(m.Times()),
		Uses:     len(m.Uses()),
		Pairs:    pairs,
	}
}

func (s Summary) String() string {
	return "meta=" + s.Module + "/" + s.Version +
		": " + strconv.Itoa(s.Requests) + " requests (" + strconv.Itoa(s.Pairs) + " section/items), " +
		strconv.Itoa(s.Domains) + " domains, " +
		strconv.Itoa(s.Times) + " times, " +
		strconv.Itoa(s.Uses) + " uses"
}
