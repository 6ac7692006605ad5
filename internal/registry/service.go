package registry

import (
	"context"
	"fmt"

	"github.com/eglise/parish/internal/api"
)

const basePath = "/api/registry"

// Service is the binding set for one entity: list, create, get, update
// (PATCH) and delete over fixed URL templates. Trailing slashes are
// significant to the backend.
type Service struct {
	client *api.Client
	entity Entity
}

func NewService(client *api.Client, entity Entity) *Service {
	return &Service{client: client, entity: entity}
}

func (s *Service) Entity() Entity {
	return s.entity
}

func (s *Service) collectionPath() string {
	return fmt.Sprintf("%s/%s/", basePath, s.entity.Slug)
}

func (s *Service) itemPath(id any) string {
	return fmt.Sprintf("%s/%s/%s/", basePath, s.entity.Slug, valueString(id))
}

// List fetches the full collection. The backend returns the complete set;
// filtering and pagination are client-side projections.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := s.client.Get(ctx, s.collectionPath(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, payload map[string]any) (Item, error) {
	var created Item
	if err := s.client.Post(ctx, s.collectionPath(), payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id any) (Item, error) {
	var item Item
	if err := s.client.Get(ctx, s.itemPath(id), &item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id any, payload map[string]any) (Item, error) {
	var updated Item
	if err := s.client.Patch(ctx, s.itemPath(id), payload, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id any) error {
	return s.client.Delete(ctx, s.itemPath(id))
}

// CreateHead hits the member-only head-of-family create endpoint.
func (s *Service) CreateHead(ctx context.Context, payload map[string]any) (Item, error) {
	if s.entity.HeadSlug == "" {
		return nil, fmt.Errorf("%s has no head create endpoint", s.entity.Name)
	}
	var created Item
	path := fmt.Sprintf("%s/%s/%s/", basePath, s.entity.Slug, s.entity.HeadSlug)
	if err := s.client.Post(ctx, path, payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}
