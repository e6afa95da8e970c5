package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

type InterfaceRepository interface {
	FetchDataset(ctx context.Context, dataset Dataset, plate string) ([]Record, error)
}

type Repository struct {
	client   *http.Client
	baseURL  string
	appToken string
}

func NewVehicleRepository(baseURL, appToken string, timeout time.Duration) *Repository {
	return &Repository{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		appToken: appToken,
	}
}

// FetchDataset issues one plate-scoped read against an open-data resource.
// Zero rows is a valid answer, not an error. Only the public app token is ever
// attached; the service-role credential this process also holds must not reach
// this upstream.
func (r *Repository) FetchDataset(ctx context.Context, dataset Dataset, plate string) ([]Record, error) {
	url := fmt.Sprintf("%s/resource/%s.json?%s", r.baseURL, dataset.Resource,
		neturl.Values{"kenteken": {plate}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", dataset.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.appToken != "" {
		req.Header.Set("X-App-Token", r.appToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset %s: %w", dataset.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", dataset.Name, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt := truncate(string(body), maxBodyExcerpt)
		log.Printf("[rdw] dataset %s: status=%d url=%s body=%s", dataset.Name, resp.StatusCode, url, excerpt)
		return nil, &UpstreamError{Dataset: dataset.Name, Status: resp.StatusCode, Body: excerpt}
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		log.Printf("[rdw] dataset %s: unreadable body url=%s err=%v", dataset.Name, url, err)
		return nil, &ParseError{Dataset: dataset.Name, Err: err}
	}
	return records, nil
}
