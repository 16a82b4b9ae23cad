package service

import (
	"context"
	"encoding/json"
	"html"
	"log"
	"strings"

	"anoa.com/campusplacement/internal/model"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	jobsIndex     = "jobs"
	searchMaxHits = 200
)

// JobSearch is the optional text-search collaborator. Availability is
// detected at call time; when the engine is down or erroring, the job
// service falls back to its ILIKE filter and the caller never notices.
type JobSearch interface {
	IsAvailable() bool
	IndexJob(job *model.Job) error
	RemoveJob(id string) error
	// Search returns matching job IDs in relevance order.
	Search(ctx context.Context, query string) ([]uuid.UUID, error)
}

type meiliJobSearch struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliJobSearch(client meilisearch.ServiceManager) JobSearch {
	s := &meiliJobSearch{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *meiliJobSearch) initIndex() {
	searchableAttrs := []string{"title", "company", "description"}
	if _, err := s.client.Index(jobsIndex).UpdateSearchableAttributes(&searchableAttrs); err != nil {
		log.Printf("Failed to update jobs searchable attributes: %v", err)
		return
	}

	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(jobsIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update jobs sortable attributes: %v", err)
		return
	}

	log.Println("Meilisearch jobs index initialized")
}

type jobDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *meiliJobSearch) cleanContentForIndex(content string) string {
	// Replace block tags with spaces to prevent text merging
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliJobSearch) IsAvailable() bool {
	if s == nil || s.client == nil {
		return false
	}
	return s.client.IsHealthy()
}

func (s *meiliJobSearch) IndexJob(job *model.Job) error {
	doc := jobDoc{
		ID:          job.ID.String(),
		Title:       job.Title,
		Company:     job.Company,
		Description: s.cleanContentForIndex(job.Description),
		Location:    job.Location,
		Type:        job.Type,
		CreatedAt:   job.CreatedAt.Unix(),
	}

	_, err := s.client.Index(jobsIndex).AddDocuments([]jobDoc{doc}, strPtr("id"))
	return err
}

func (s *meiliJobSearch) RemoveJob(id string) error {
	_, err := s.client.Index(jobsIndex).DeleteDocument(id)
	return err
}

func (s *meiliJobSearch) Search(ctx context.Context, query string) ([]uuid.UUID, error) {
	resp, err := s.client.Index(jobsIndex).SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit: searchMaxHits,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc jobDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
