package opendata

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Client queries all public data sources about a district.
type Client struct {
	Census  *Census
	Socrata *Socrata
}

// New creates a client for both sources. Empty URLs use the public endpoints.
func New(client *http.Client, censusURL, socrataURL string) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		Census:  NewCensus(client, censusURL),
		Socrata: NewSocrata(client, socrataURL),
	}
}

// Result is everything the public sources know about a district.
type Result struct {
	Financials *Financials // nil when the census has no data
	DatasetURL string      // empty when no budget dataset was found
}

// Lookup queries the census and the dataset catalog concurrently.
//
// Missing data from a source is not an error, the field stays empty. Only a
// cancelled context fails the lookup. An empty ncesID skips the census.
func (c *Client) Lookup(ctx context.Context, ncesID, districtName string) (Result, error) {
	var result Result
	g, ctx := errgroup.WithContext(ctx)

	if ncesID != "" {
		g.Go(func() error {
			f, err := c.Census.Finance(ctx, ncesID)
			if err != nil {
				return soft(ctx, "census", err)
			}
			result.Financials = f
			return nil
		})
	}

	g.Go(func() error {
		link, err := c.Socrata.BudgetDataset(ctx, districtName)
		if err != nil {
			return soft(ctx, "socrata", err)
		}
		result.DatasetURL = link
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func soft(ctx context.Context, source string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}

	log.Warn().Str("source", source).Err(err).Msg("open data lookup failed")
	return nil
}
