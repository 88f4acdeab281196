package sqlite

// sectionJSON is one line of a JSONL export.
type sectionJSON struct {
	Section     string      `json:"section"`
	Kind        string      `json:"kind"`
	Name        string      `json:"name,omitempty"`
	DisplayName string      `json:"display_name,omitempty"`
	Fields      []fieldJSON `json:"fields"`
	Links       *linksJSON  `json:"links,omitempty"`
	Requests    []string    `json:"requests,omitempty"`
}

// fieldJSON is a set field; unset fields are omitted.
type fieldJSON struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// linksJSON holds the sections a request links to.
type linksJSON struct {
	Domain string `json:"domain"`
	Time   string `json:"time"`
	Use    string `json:"use"`
}
