// internal/workers/plant-data/search-sop-documents/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type SearchResult struct {
	Documents []map[string]interface{}
	TotalHits int64
	Took      int64
}

// Execute runs the search and flattens the hits into transport-ready maps.
func Execute(ctx context.Context, esClient *elasticsearch.Client, spec SearchSpec) (*SearchResult, error) {
	if spec.Pagination.Size > 100 {
		spec.Pagination.Size = 100
	}
	if spec.Pagination.Size < 1 {
		spec.Pagination.Size = 20
	}
	if spec.Pagination.From < 0 {
		spec.Pagination.From = 0
	}

	req, err := BuildSearch(spec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hitsWrapper, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected search response shape")
	}

	total := int64(0)
	if t, ok := hitsWrapper["total"].(map[string]interface{}); ok {
		if v, ok := t["value"].(float64); ok {
			total = int64(v)
		}
	}

	hits, _ := hitsWrapper["hits"].([]interface{})
	documents := make([]map[string]interface{}, 0, len(hits))
	for _, hit := range hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		doc := map[string]interface{}{
			"id":    hitMap["_id"],
			"score": hitMap["_score"],
		}
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			doc["title"] = source["title"]
			doc["category"] = source["category"]
			doc["machineTypes"] = source["machine_types"]
		}
		documents = append(documents, doc)
	}

	return &SearchResult{
		Documents: documents,
		TotalHits: total,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
