package queries

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex = errors.New("index name is required")
	ErrEmptySearch  = errors.New("search needs text or a filter")
)

// SearchSpec describes one SOP document search.
type SearchSpec struct {
	Index      string
	SearchText string
	MachineID  string
	Category   string
	Pagination struct {
		From int
		Size int
	}
}

// BuildSearch builds the Elasticsearch request for a SOP document search.
func BuildSearch(spec SearchSpec) (*esapi.SearchRequest, error) {
	if spec.Index == "" {
		return nil, ErrMissingIndex
	}
	if spec.SearchText == "" && spec.MachineID == "" && spec.Category == "" {
		return nil, ErrEmptySearch
	}

	body, _ := json.Marshal(buildDocumentQuery(spec))

	req := esapi.SearchRequest{
		Index: []string{spec.Index},
		Body:  strings.NewReader(string(body)),
		From:  &spec.Pagination.From,
		Size:  &spec.Pagination.Size,
	}

	return &req, nil
}

// buildDocumentQuery composes the bool query over the SOP index. Text search
// weighs titles over bodies; machine and category narrow by exact term.
func buildDocumentQuery(spec SearchSpec) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if spec.SearchText != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  spec.SearchText,
				"fields": []string{"title^3", "body^2", "tags"},
				"type":   "best_fields",
			},
		})
	}

	if spec.MachineID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"machine_types": spec.MachineID},
		})
	}

	if spec.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": spec.Category},
		})
	}

	// Filter-only browsing still needs a query clause.
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}
