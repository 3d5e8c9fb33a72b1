package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCensusURL is the F-33 school finance dataset of the US Census Bureau.
const DefaultCensusURL = "https://api.census.gov/data/2021/school/finance"

// CensusSource is the attribution for financials fetched from the census.
const CensusSource = "US Census Bureau (F-33 Survey, 2021)"

// Total revenue, current instructional expenditure, salaries, federal revenue.
var censusVariables = []string{"TCREV", "TCURINST", "Z33", "U11"}

// Financials are the reported figures of a district for one fiscal year.
type Financials struct {
	Revenue        decimal.Decimal `json:"revenue"`
	Expenditure    decimal.Decimal `json:"expenditure"`
	Salaries       decimal.Decimal `json:"salaries"`
	FederalRevenue decimal.Decimal `json:"federalRevenue"`
	Source         string          `json:"source"`
}

type Census struct {
	client  *http.Client
	baseURL string
}

// NewCensus creates a census client. An empty baseURL uses DefaultCensusURL.
func NewCensus(client *http.Client, baseURL string) *Census {
	if baseURL == "" {
		baseURL = DefaultCensusURL
	}

	return &Census{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Finance fetches the financials for a district by its 7 digit NCES id.
//
// The first two digits of the id are the state FIPS code, the rest is the local
// education agency id.
func (c *Census) Finance(ctx context.Context, ncesID string) (*Financials, error) {
	if len(ncesID) != 7 || strings.Trim(ncesID, "0123456789") != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDistrictID, ncesID)
	}

	stateFIPS, leaID := ncesID[:2], ncesID[2:]
	query := fmt.Sprintf("get=%s&for=%s&in=%s",
		strings.Join(censusVariables, ","),
		url.PathEscape("school district (elementary, secondary, or unified):"+leaID),
		url.PathEscape("state:"+stateFIPS),
	)

	var rows [][]string
	if err := getJSON(ctx, c.client, c.baseURL+"?"+query, &rows); err != nil {
		return nil, err
	}

	// The first row holds the variable names
	if len(rows) < 2 || len(rows[1]) < len(censusVariables) {
		return nil, ErrNoData
	}

	values := make([]decimal.Decimal, 0, len(censusVariables))
	for i := range censusVariables {
		v, err := decimal.NewFromString(rows[1][i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s is %q", ErrNoData, censusVariables[i], rows[1][i])
		}
		values = append(values, v)
	}

	// Missing values are reported as negative numbers
	if !values[0].IsPositive() {
		return nil, ErrNoData
	}

	return &Financials{
		Revenue:        values[0],
		Expenditure:    values[1],
		Salaries:       values[2],
		FederalRevenue: values[3],
		Source:         CensusSource,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The census answers queries without a match with an empty 204
	if resp.StatusCode == http.StatusNoContent {
		return ErrNoData
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return nil
}
