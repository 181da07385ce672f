package boxoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

const (
	// apiEndpoint is the structured listings API backing the site's
	// lazy-loaded event tables.
	apiEndpoint = "https://www.boxofficeticketsales.com/es/v2"

	// MaxPages caps pagination rounds. The loop normally terminates on
	// an empty page or on reaching the server-reported filtered count;
	// the cap guards against a runaway server.
	MaxPages = 50

	// defaultPerPage is used when the descriptor reports no usable
	// page size.
	defaultPerPage = 50
)

// apiClient replays the embedded request descriptor against the listings
// API, one page per round.
type apiClient struct {
	http     *http.Client
	endpoint string
	log      *logger.Log
}

func newAPIClient(timeout time.Duration, log *logger.Log) *apiClient {
	return &apiClient{
		http:     &http.Client{Timeout: timeout},
		endpoint: apiEndpoint,
		log:      log,
	}
}

// listingRequest is the POST payload for one pagination round. The draw
// counter is the API's request-sequence number and must increase every
// round.
type listingRequest struct {
	Draw     int            `json:"draw"`
	Page     int            `json:"page"`
	Start    int            `json:"start"`
	PerPage  int            `json:"perPage"`
	View     map[string]any `json:"view"`
	Static   map[string]any `json:"static"`
	Preset   map[string]any `json:"preset"`
	Selected map[string]any `json:"selected"`
}

type listingResponse struct {
	Data            []listing `json:"data"`
	RecordsFiltered int       `json:"recordsFiltered"`
}

// fetchListings pages through the API until a page comes back empty, the
// cumulative count reaches the server-reported total, or MaxPages rounds
// have run.
func (c *apiClient) fetchListings(ctx context.Context, desc *descriptor) ([]listing, error) {
	perPage := desc.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	base := listingRequest{
		Draw:     desc.Draw + 1,
		PerPage:  perPage,
		View:     desc.View,
		Static:   desc.Search.Static,
		Preset:   desc.Search.Preset,
		Selected: desc.Search.Selected,
	}

	recordsFiltered := desc.Data.RecordsFiltered
	if recordsFiltered == 0 {
		recordsFiltered = desc.Data.RecordsTotal
	}

	var results []listing
	page := 1
	draw := base.Draw

	for {
		payload := base
		payload.Page = page
		payload.Start = (page - 1) * perPage
		payload.Draw = draw

		listings, filtered, err := c.post(ctx, payload)
		if err != nil {
			return nil, err
		}
		if len(listings) == 0 {
			break
		}

		results = append(results, listings...)
		if filtered > 0 {
			recordsFiltered = filtered
		}
		if recordsFiltered > 0 && len(results) >= recordsFiltered {
			break
		}

		page++
		draw++

		if page > MaxPages {
			c.log.Warn("stopping pagination after %d pages to avoid a runaway loop", MaxPages)
			break
		}
	}

	return results, nil
}

func (c *apiClient) post(ctx context.Context, payload listingRequest) ([]listing, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode listings request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create listings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch listings page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("listings request failed with status %d", resp.StatusCode)
	}

	var out listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, 0, fmt.Errorf("decode listings response: %w", err)
	}
	return out.Data, out.RecordsFiltered, nil
}
