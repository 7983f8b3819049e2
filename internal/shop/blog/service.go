// Package blog serves the journal.
package blog

import (
	"context"
	"errors"
	"fmt"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/seed"
)

const AllCategories = "Semua"

var ErrPostNotFound = errx.NotFound(errors.New("blog: post not found"), "post not found")

type Service struct {
	load func() ([]model.BlogPost, error)
}

func NewService() *Service {
	return &Service{load: seed.Posts}
}

func (s *Service) posts(ctx context.Context) ([]model.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	for i := range raw {
		if raw[i].Slug == "" {
			raw[i].Slug = raw[i].ID
		}
		if raw[i].Excerpt == "" {
			raw[i].Excerpt = raw[i].Subtitle
		}
	}
	return raw, nil
}

// List returns posts in publication order, filtered by category unless it is
// empty or AllCategories.
func (s *Service) List(ctx context.Context, category string) ([]model.BlogPost, error) {
	all, err := s.posts(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || category == AllCategories {
		return all, nil
	}
	out := []model.BlogPost{}
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) BySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	all, err := s.posts(ctx)
	if err != nil {
		return model.BlogPost{}, err
	}
	for _, p := range all {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.BlogPost{}, fmt.Errorf("slug %q: %w", slug, ErrPostNotFound)
}

// Resolve is BySlug, but an unknown slug yields the featured post.
func (s *Service) Resolve(ctx context.Context, slug string) (model.BlogPost, error) {
	p, err := s.BySlug(ctx, slug)
	if errors.Is(err, ErrPostNotFound) {
		return s.Featured(ctx)
	}
	return p, err
}

// Featured is the newest post.
func (s *Service) Featured(ctx context.Context) (model.BlogPost, error) {
	all, err := s.posts(ctx)
	if err != nil {
		return model.BlogPost{}, err
	}
	if len(all) == 0 {
		return model.BlogPost{}, ErrPostNotFound
	}
	return all[0], nil
}
