// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"

	"github.com/taibuivan/jbook/internal/platform/validate"
	"github.com/taibuivan/jbook/pkg/slug"
)

// # Service Layer

// Service orchestrates the lookup vocabularies: public listings plus
// admin-gated creation with slug generation.
type Service struct {
	referenceRepo Repository
	logger        *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(referenceRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		referenceRepo: referenceRepo,
		logger:        logger,
	}
}

// # Listings

// ListBookTags returns every book tag name, alphabetically.
func (service *Service) ListBookTags(context context.Context) ([]string, error) {
	return service.referenceRepo.ListBookTags(context)
}

// ListShelfTags returns every shelf tag name, alphabetically.
func (service *Service) ListShelfTags(context context.Context) ([]string, error) {
	return service.referenceRepo.ListShelfTags(context)
}

// ListAuthors returns every author, alphabetically by name.
func (service *Service) ListAuthors(context context.Context) ([]*Author, error) {
	return service.referenceRepo.ListAuthors(context)
}

// ListCategories returns every category, most popular first.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.referenceRepo.ListCategories(context)
}

// ListPublishers returns every publisher, alphabetically by name.
func (service *Service) ListPublishers(context context.Context) ([]*Publisher, error) {
	return service.referenceRepo.ListPublishers(context)
}

// validateName applies the shared name rules for lookup creation.
func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLen)
	return validator.Err()
}

// # Creation

/*
CreateAuthor adds a new author to the vocabulary.

Description: The slug is derived from the name; a duplicate name or slug
surfaces as CONFLICT from the repository layer.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Author: The persisted entry
  - error: Validation or persistence errors
*/
func (service *Service) CreateAuthor(context context.Context, name string) (*Author, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	author := &Author{Name: name, Slug: slug.From(name)}
	if err := service.referenceRepo.CreateAuthor(context, author); err != nil {
		return nil, err
	}

	service.logger.Info("author_created", slog.Int("author_id", author.ID), slog.String("slug", author.Slug))
	return author, nil
}

/*
CreateCategory adds a new category to the vocabulary.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Category: The persisted entry with its initial popularity
  - error: Validation or persistence errors
*/
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	category := &Category{Name: name, Slug: slug.From(name)}
	if err := service.referenceRepo.CreateCategory(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.Int("category_id", category.ID), slog.String("slug", category.Slug))
	return category, nil
}

/*
CreatePublisher adds a new publisher to the vocabulary.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Publisher: The persisted entry
  - error: Validation or persistence errors
*/
func (service *Service) CreatePublisher(context context.Context, name string) (*Publisher, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	publisher := &Publisher{Name: name, Slug: slug.From(name)}
	if err := service.referenceRepo.CreatePublisher(context, publisher); err != nil {
		return nil, err
	}

	service.logger.Info("publisher_created", slog.Int("publisher_id", publisher.ID), slog.String("slug", publisher.Slug))
	return publisher, nil
}
