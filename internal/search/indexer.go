// internal/search/indexer.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"acord-intake/internal/models"
)

// IndexSubmission writes the searchable projection of a submission,
// replacing any previous version of the document.
func (s *Searcher) IndexSubmission(ctx context.Context, sub *models.Submission) error {
	doc := buildDocument(sub)

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: marshaling document: %v", ErrIndexWriteFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: sub.ID,
		Body:       strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: indexing submission %s: %v", ErrIndexWriteFailed, sub.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: indexing submission %s: status %d", ErrIndexWriteFailed, sub.ID, res.StatusCode)
	}

	s.logger.Debug("submission indexed", map[string]interface{}{
		"submission_id": sub.ID,
	})
	return nil
}

// DeleteSubmission removes a submission from the index. A document that
// was never indexed is not an error.
func (s *Searcher) DeleteSubmission(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      s.index,
		DocumentID: id,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: deleting submission %s: %v", ErrIndexWriteFailed, id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: deleting submission %s: status %d", ErrIndexWriteFailed, id, res.StatusCode)
	}

	s.logger.Debug("submission removed from index", map[string]interface{}{
		"submission_id": id,
	})
	return nil
}

// buildDocument flattens a submission into its searchable fields.
// Optional fields are omitted rather than indexed empty.
func buildDocument(sub *models.Submission) map[string]interface{} {
	contactName := strings.TrimSpace(sub.Contact.FirstName + " " + sub.Contact.LastName)

	doc := map[string]interface{}{
		"id":            sub.ID,
		"agencyId":      sub.AgencyID,
		"producerId":    sub.ProducerID,
		"clientType":    string(sub.ClientType),
		"status":        string(sub.Status),
		"businessName":  sub.Business.LegalName,
		"contactName":   contactName,
		"contactEmail":  sub.Contact.Email,
		"coverageTypes": sub.CoverageTypes,
		"createdAt":     sub.CreatedAt,
		"updatedAt":     sub.UpdatedAt,
	}

	if sub.Business.DBA != "" {
		doc["dba"] = sub.Business.DBA
	}
	if sub.Business.Description != "" {
		doc["description"] = sub.Business.Description
	}
	if sub.Business.NAICSCode != "" {
		doc["naicsCode"] = sub.Business.NAICSCode
	}
	if sub.Business.Address.City != "" {
		doc["city"] = sub.Business.Address.City
	}
	if sub.Business.Address.State != "" {
		doc["state"] = sub.Business.Address.State
	}

	return doc
}
