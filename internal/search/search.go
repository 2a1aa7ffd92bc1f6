// Package search keeps a per-shard Elasticsearch index of products.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/sharded_shop/internal/models"
)

var ErrDisabled = errors.New("search is not configured")

type Config struct {
	URL      string
	User     string
	Password string
}

func NewClient(cfg Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	return client, nil
}

type Indexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

// Index is the products index of one shard.
type Index struct {
	es   *elasticsearch.Client
	name string
}

func IndexName(shardID string) string {
	return "products-" + shardID
}

func NewIndex(es *elasticsearch.Client, shardID string) *Index {
	return &Index{es: es, name: IndexName(shardID)}
}

func (i *Index) Name() string { return i.name }

func (i *Index) IndexProduct(ctx context.Context, p *models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := i.es.Index(
		i.name,
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, responseError(res.Status(), res.Body))
	}
	return nil
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.name),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", responseError(res.Status(), res.Body))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		products[n] = hit.Source
	}
	return r.Hits.Total.Value, products, nil
}

func responseError(status string, body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 1024))
	if len(raw) == 0 {
		return status
	}
	return status + ": " + string(raw)
}

// Disabled is used when no Elasticsearch URL is configured.
type Disabled struct{}

func (Disabled) IndexProduct(context.Context, *models.Product) error { return nil }

func (Disabled) Search(context.Context, string, int, int) (int64, []models.Product, error) {
	return 0, nil, ErrDisabled
}
