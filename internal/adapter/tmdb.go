package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"movievault/models"
)

// rawMediaType values as the catalog sends them. The catalog says "tv"
// where the rest of the application says "series".
const (
	rawMovie  = "movie"
	rawTV     = "tv"
	rawPerson = "person"
)

// posterSize and backdropSize are the image host size segments used when
// resolving relative image references.
const (
	posterSize   = "w500"
	backdropSize = "w1280"
)

type TMDBConfig struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Timeout      time.Duration
}

type tmdbAdapter struct {
	client       *resty.Client
	imageBaseURL string
}

func NewTMDBAdapter(cfg TMDBConfig) CatalogAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = "https://image.tmdb.org/t/p"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetQueryParam("api_key", cfg.APIKey)

	return &tmdbAdapter{
		client:       cli,
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
	}
}

// resultsEnvelope is the catalog's list response shape.
type resultsEnvelope struct {
	Page    int `json:"page"`
	Results []struct {
		models.CatalogRecord
		RawMediaType string `json:"media_type"`
	} `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

func (t *tmdbAdapter) SearchMulti(ctx context.Context, query string) ([]models.CatalogRecord, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		Get("/search/multi")
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %w", ErrCatalogUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeResults(resp.Body())
}

func (t *tmdbAdapter) Trending(ctx context.Context) ([]models.CatalogRecord, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		Get("/trending/all/week")
	if err != nil {
		return nil, fmt.Errorf("%w: trending request: %w", ErrCatalogUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeResults(resp.Body())
}

func (t *tmdbAdapter) MovieDetails(ctx context.Context, id int64) (models.CatalogRecord, error) {
	return t.details(ctx, "/movie/"+strconv.FormatInt(id, 10), models.Movie)
}

func (t *tmdbAdapter) SeriesDetails(ctx context.Context, id int64) (models.CatalogRecord, error) {
	return t.details(ctx, "/tv/"+strconv.FormatInt(id, 10), models.Series)
}

func (t *tmdbAdapter) details(ctx context.Context, path string, mediaType models.MediaType) (models.CatalogRecord, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return models.CatalogRecord{}, fmt.Errorf("%w: details request: %w", ErrCatalogUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CatalogRecord{}, err
	}

	var record models.CatalogRecord
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.CatalogRecord{}, fmt.Errorf("decode details response: %w", err)
	}

	// details endpoints carry no media_type field
	record.MediaType = mediaType
	return record, nil
}

func (t *tmdbAdapter) PosterURL(posterPath *string) string {
	return t.imageURL(posterPath, posterSize)
}

func (t *tmdbAdapter) BackdropURL(backdropPath *string) string {
	return t.imageURL(backdropPath, backdropSize)
}

func (t *tmdbAdapter) imageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	return t.imageBaseURL + "/" + size + *path
}

func decodeResults(body []byte) ([]models.CatalogRecord, error) {
	var envelope resultsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	records := make([]models.CatalogRecord, 0, len(envelope.Results))
	for _, result := range envelope.Results {
		record := result.CatalogRecord

		switch result.RawMediaType {
		case rawMovie, "":
			record.MediaType = models.Movie
		case rawTV:
			record.MediaType = models.Series
		case rawPerson:
			continue
		default:
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrInvalidAPIKey, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, body)
	default:
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d: %s", ErrCatalogUnavailable, resp.StatusCode(), body)
		}
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
