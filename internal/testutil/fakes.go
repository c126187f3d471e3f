package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
)

// ImageStorage records uploads and deletions in memory.
type ImageStorage struct {
	mu       sync.Mutex
	Uploaded map[string][]byte
	Deleted  []string
	Err      error
}

func NewImageStorage() *ImageStorage {
	return &ImageStorage{Uploaded: map[string][]byte{}}
}

func (s *ImageStorage) UploadImage(_ context.Context, r io.Reader, folder, publicID string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://res.cloudinary.test/image/upload/v1/%s/%s.webp", folder, publicID)
	s.mu.Lock()
	s.Uploaded[url] = data
	s.mu.Unlock()
	return url, nil
}

func (s *ImageStorage) DeleteImage(_ context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, fileURL)
	delete(s.Uploaded, fileURL)
	return nil
}

// HospitalIndex is an in-memory hospital search index matching city
// substrings.
type HospitalIndex struct {
	mu   sync.Mutex
	Docs map[uuid.UUID]entity.Hospital
}

func NewHospitalIndex() *HospitalIndex {
	return &HospitalIndex{Docs: map[uuid.UUID]entity.Hospital{}}
}

func (x *HospitalIndex) IndexHospitals(hospitals ...entity.Hospital) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, h := range hospitals {
		x.Docs[h.ID] = h
	}
	return nil
}

func (x *HospitalIndex) DeleteHospital(id uuid.UUID) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.Docs, id)
	return nil
}

func (x *HospitalIndex) SearchCity(city string) ([]uuid.UUID, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	var ids []uuid.UUID
	for id, h := range x.Docs {
		if strings.Contains(strings.ToLower(h.City), strings.ToLower(city)) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
