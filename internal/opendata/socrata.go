package opendata

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// DefaultSocrataURL is the catalog search of the Socrata open data network.
const DefaultSocrataURL = "https://api.us.socrata.com/api/catalog/v1"

type Socrata struct {
	client  *http.Client
	baseURL string
}

// NewSocrata creates a catalog client. An empty baseURL uses DefaultSocrataURL.
func NewSocrata(client *http.Client, baseURL string) *Socrata {
	if baseURL == "" {
		baseURL = DefaultSocrataURL
	}

	return &Socrata{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// BudgetDataset returns the link to the best matching budget dataset for a district.
func (s *Socrata) BudgetDataset(ctx context.Context, districtName string) (string, error) {
	query := url.Values{}
	query.Set("q", districtName+" school budget")
	query.Set("limit", "1")

	var catalog struct {
		Results []struct {
			Link string `json:"link"`
		} `json:"results"`
	}

	if err := getJSON(ctx, s.client, s.baseURL+"?"+query.Encode(), &catalog); err != nil {
		return "", err
	}

	if len(catalog.Results) == 0 || catalog.Results[0].Link == "" {
		return "", ErrNoData
	}

	return catalog.Results[0].Link, nil
}
