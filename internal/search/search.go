// internal/search/search.go

// Package search indexes intake submissions into Elasticsearch and serves
// keyword and filter queries against them. Indexing failures are surfaced
// to callers but never block the intake flow; the database stays the
// source of truth and the index is a searchable projection of it.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
)

// Error codes for search operation failures
var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrSearchTimeout     = errors.New("SEARCH_TIMEOUT")
	ErrIndexNotFound     = errors.New("INDEX_NOT_FOUND")
	ErrIndexWriteFailed  = errors.New("INDEX_WRITE_FAILED")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Params narrows a submission search. Zero-valued fields are ignored.
type Params struct {
	Keywords     string `json:"keywords,omitempty"`
	AgencyID     string `json:"agencyId,omitempty"`
	Status       string `json:"status,omitempty"`
	ClientType   string `json:"clientType,omitempty"`
	CoverageType string `json:"coverageType,omitempty"`
	State        string `json:"state,omitempty"`
	CreatedFrom  string `json:"createdFrom,omitempty"`
	CreatedTo    string `json:"createdTo,omitempty"`
	From         int    `json:"from,omitempty"`
	Size         int    `json:"size,omitempty"`
}

// Result carries one page of matching submission documents.
type Result struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"`
}

// Searcher runs submission queries against a single index.
type Searcher struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewSearcher(client *elasticsearch.Client, index string, log logger.Logger) *Searcher {
	return &Searcher{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{
			"component": "search",
			"index":     index,
		}),
	}
}

// Index returns the name of the index this searcher operates on.
func (s *Searcher) Index() string {
	return s.index
}

// Search executes the filter query and decodes the matching documents.
func (s *Searcher) Search(ctx context.Context, params Params) (*Result, error) {
	query := buildSubmissionQuery(params)

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling query: %v", ErrSearchQueryFailed, err)
	}

	from := params.From
	if from < 0 {
		from = 0
	}
	size := params.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrSearchTimeout, err)
		}
		return nil, fmt.Errorf("%w: executing search: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		// A 404 here means the index was never created, not an empty result.
		if res.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: index %s does not exist", ErrIndexNotFound, s.index)
		}
		return nil, fmt.Errorf("%w: search returned status %d", ErrSearchQueryFailed, res.StatusCode)
	}

	var parsed struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			MaxScore float64 `json:"max_score"`
			Hits     []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSearchQueryFailed, err)
	}

	result := &Result{
		Data:      make([]map[string]interface{}, 0, len(parsed.Hits.Hits)),
		TotalHits: parsed.Hits.Total.Value,
		MaxScore:  parsed.Hits.MaxScore,
		Took:      parsed.Took,
	}
	for _, hit := range parsed.Hits.Hits {
		result.Data = append(result.Data, hit.Source)
	}

	metrics.SearchQueries.WithLabelValues("success").Inc()
	s.logger.Debug("submission search completed", map[string]interface{}{
		"total_hits": result.TotalHits,
		"took_ms":    result.Took,
	})
	return result, nil
}

// buildSubmissionQuery assembles the bool query for the given filters.
// Keyword text matches across the business and contact fields with name
// boosts; everything else becomes a non-scoring filter clause.
func buildSubmissionQuery(params Params) map[string]interface{} {
	mustClauses := []map[string]interface{}{}
	filterClauses := []map[string]interface{}{}

	if keywords := strings.TrimSpace(params.Keywords); keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"businessName^3", "dba^2", "contactName^2", "description"},
				"type":   "best_fields",
			},
		})
	}

	termFilters := []struct {
		field string
		value string
	}{
		{"agencyId", params.AgencyID},
		{"status", params.Status},
		{"clientType", params.ClientType},
		{"coverageTypes", params.CoverageType},
		{"state", params.State},
	}
	for _, tf := range termFilters {
		if tf.value == "" {
			continue
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{tf.field: tf.value},
		})
	}

	if params.CreatedFrom != "" || params.CreatedTo != "" {
		bounds := map[string]interface{}{}
		if params.CreatedFrom != "" {
			bounds["gte"] = params.CreatedFrom
		}
		if params.CreatedTo != "" {
			bounds["lte"] = params.CreatedTo
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"createdAt": bounds},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	} else {
		boolQuery["must"] = []map[string]interface{}{
			{"match_all": map[string]interface{}{}},
		}
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
			{"createdAt": map[string]interface{}{"order": "desc"}},
		},
	}
}
