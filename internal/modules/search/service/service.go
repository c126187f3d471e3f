package search

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const HospitalsIndex = "hospitals"

// HospitalIndex keeps the hospital directory searchable by city.
type HospitalIndex interface {
	IndexHospitals(hospitals ...entity.Hospital) error
	DeleteHospital(id uuid.UUID) error
	SearchCity(city string) ([]uuid.UUID, error)
}

type meiliHospitalIndex struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
	log       *zap.Logger
}

func NewMeiliHospitalIndex(client meilisearch.ServiceManager, log *zap.Logger) HospitalIndex {
	s := &meiliHospitalIndex{
		client:    client,
		sanitizer: newSanitizer(),
		log:       log,
	}
	s.initIndex()
	return s
}

func (s *meiliHospitalIndex) initIndex() {
	index := s.client.Index(HospitalsIndex)

	searchable := []string{"city", "name", "address"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		s.log.Warn("failed to update hospitals searchable attributes", zap.Error(err))
	}

	s.log.Info("meilisearch hospitals index initialized")
}

type hospitalDoc struct {
	ID           string   `json:"id"`
	HospitalCode string   `json:"hospital_code"`
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	BloodGroups  []string `json:"blood_groups"`
}

func newSanitizer() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
}

func (s *meiliHospitalIndex) clean(text string) string {
	sanitized := s.sanitizer.Sanitize(text)
	return strings.Join(strings.Fields(html.UnescapeString(sanitized)), " ")
}

func (s *meiliHospitalIndex) toDoc(h entity.Hospital) hospitalDoc {
	groups := make([]string, 0, len(h.BloodStock))
	for _, e := range h.BloodStock {
		if e.UnitsAvailable > 0 {
			groups = append(groups, e.BloodGroup)
		}
	}
	return hospitalDoc{
		ID:           h.ID.String(),
		HospitalCode: h.HospitalCode,
		Name:         s.clean(h.Name),
		City:         s.clean(h.City),
		Address:      s.clean(h.Address),
		BloodGroups:  groups,
	}
}

func (s *meiliHospitalIndex) IndexHospitals(hospitals ...entity.Hospital) error {
	if len(hospitals) == 0 {
		return nil
	}

	docs := make([]hospitalDoc, len(hospitals))
	for i, h := range hospitals {
		docs[i] = s.toDoc(h)
	}

	task, err := s.client.Index(HospitalsIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return err
	}
	s.log.Debug("indexed hospitals", zap.Int("count", len(docs)), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *meiliHospitalIndex) DeleteHospital(id uuid.UUID) error {
	_, err := s.client.Index(HospitalsIndex).DeleteDocument(id.String())
	return err
}

func (s *meiliHospitalIndex) SearchCity(city string) ([]uuid.UUID, error) {
	raw, err := s.client.Index(HospitalsIndex).SearchRaw(strings.TrimSpace(city), &meilisearch.SearchRequest{
		AttributesToSearchOn: []string{"city"},
		AttributesToRetrieve: []string{"id"},
		Limit:                200,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("decode hospital search: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			s.log.Warn("skipping hospital hit with bad id", zap.String("id", hit.ID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
