package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
)

// Document is the indexed projection of one ledger record. Label carries the
// income source or expense category; Kind is "income" or "expense".
type Document struct {
	ID     uint      `json:"id"`
	UserID uint      `json:"user_id"`
	Kind   string    `json:"type"`
	Icon   string    `json:"icon"`
	Label  string    `json:"label"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

func docID(kind string, id uint) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

// Transactions runs a fuzzy label search scoped to one user.
func Transactions(ctx context.Context, es *elasticsearch.Client, index string, userID uint, query string, from, size int) (int64, []Document, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"label^2", "type"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"user_id": userID},
				},
			},
		},
		"from": from,
		"size": size,
		"sort": []map[string]interface{}{{"date": map[string]interface{}{"order": "desc"}}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]Document, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}

// Index upserts one transaction document.
func Index(ctx context.Context, es *elasticsearch.Client, index string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(docID(doc.Kind, doc.ID)),
	)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index document: %s", res.Status())
	}
	return nil
}

// Delete removes one transaction document. Missing documents are fine.
func Delete(ctx context.Context, es *elasticsearch.Client, index, kind string, id uint) error {
	res, err := es.Delete(
		index,
		docID(kind, id),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete document: %s", res.Status())
	}
	return nil
}
