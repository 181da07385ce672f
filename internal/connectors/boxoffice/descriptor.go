package boxoffice

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// The site assigns its listings request descriptor to a script variable.
// The same shape appears on the main listing page ("var esRequest = {...};")
// and on venue pages ("esRequest = {...};").
var esRequestPattern = regexp.MustCompile(`(?s)esRequest\s*=\s*(\{.*?\});`)

// descriptor mirrors the embedded esRequest object. Filter state (view,
// static, preset, selected) is opaque and copied verbatim into replayed
// requests.
type descriptor struct {
	Draw    int            `json:"draw"`
	PerPage int            `json:"perPage"`
	View    map[string]any `json:"view"`
	Search  struct {
		Static   map[string]any `json:"static"`
		Preset   map[string]any `json:"preset"`
		Selected map[string]any `json:"selected"`
	} `json:"search"`
	Data struct {
		RecordsFiltered int       `json:"recordsFiltered"`
		RecordsTotal    int       `json:"recordsTotal"`
		Data            []listing `json:"data"`
	} `json:"data"`
}

// listing is one raw event entry as the API returns it.
type listing struct {
	Type          string `json:"type"`
	DatetimeLocal string `json:"datetime_local"`
	Title         string `json:"title"`
	Event         string `json:"event"`
	Venue         struct {
		Name string `json:"name"`
	} `json:"venue"`
	Performers []struct {
		Name string `json:"name"`
	} `json:"performers"`
}

// extractDescriptor locates and decodes the esRequest block in page markup.
func extractDescriptor(source string) (*descriptor, error) {
	m := esRequestPattern.FindStringSubmatch(source)
	if m == nil {
		return nil, domain.ErrDescriptorNotFound
	}

	var d descriptor
	if err := json.Unmarshal([]byte(m[1]), &d); err != nil {
		return nil, fmt.Errorf("decode request descriptor: %w", err)
	}
	return &d, nil
}
