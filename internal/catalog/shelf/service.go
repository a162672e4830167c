// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"
	"log/slog"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/validate"
	"github.com/taibuivan/jbook/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for reader-curated shelves.
// It enforces visibility, ownership and parent-match guards on top of the
// repository layer.
type Service struct {
	shelfRepo Repository
	books     BookCatalog
	users     UserDirectory
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(shelfRepo Repository, books BookCatalog, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		shelfRepo: shelfRepo,
		books:     books,
		users:     users,
		logger:    logger,
	}
}

// visibleTo reports whether the caller may see the shelf. Public shelves
// are visible to everyone; private shelves to their owner only.
func visibleTo(shelf *Shelf, callerUID *string) bool {
	if shelf.Type == VisibilityPublic {
		return true
	}
	return callerUID != nil && *callerUID == shelf.UserUID
}

// resolveVisible loads a shelf and applies the visibility guard. Existence
// is checked before visibility, so an unknown UID is a NOT_FOUND even for
// anonymous callers.
func (service *Service) resolveVisible(context context.Context, uid string, callerUID *string) (*Shelf, error) {
	shelf, err := service.shelfRepo.FindByUID(context, uid, callerUID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(shelf, callerUID) {
		return nil, apperr.Forbidden("Shelf is private")
	}
	return shelf, nil
}

// dedupeTags collapses repeated tag names, keeping first-occurrence order.
// The tag junctions key on (parent, tag), so a repeated name would violate
// the composite primary key on the second batched insert.
func dedupeTags(tags []string) []string {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	deduped := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		deduped = append(deduped, tag)
	}
	return deduped
}

// # Shelf Lookups

/*
ListPublic retrieves a paginated, filtered and sorted collection of public
shelves.

Parameters:
  - context: context.Context
  - filter: Filter (Tag axis and resolved sort spec)
  - callerUID: *string (nil when anonymous)
  - limit: int
  - offset: int

Returns:
  - []*Shelf: Slice of matching, rating-annotated public shelves
  - error: System or repository level errors
*/
func (service *Service) ListPublic(context context.Context, filter Filter, callerUID *string, limit, offset int) ([]*Shelf, error) {
	return service.shelfRepo.List(context, filter, callerUID, limit, offset)
}

/*
ListMine retrieves the caller's own shelves, both visibilities.

Parameters:
  - context: context.Context
  - callerUID: string (Authenticated caller; the HTTP layer rejects
    anonymous requests before this point)
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Shelf: The caller's shelves
  - error: System or repository level errors
*/
func (service *Service) ListMine(context context.Context, callerUID string, filter Filter, limit, offset int) ([]*Shelf, error) {
	return service.shelfRepo.ListOwned(context, callerUID, filter, limit, offset)
}

/*
GetShelf fetches a single shelf, applying the visibility guard.

Parameters:
  - context: context.Context
  - uid: string
  - callerUID: *string (nil when anonymous)

Returns:
  - *Shelf: The hydrated entity
  - error: apperr.NotFound if missing, apperr.Forbidden when private and
    the caller is not the owner
*/
func (service *Service) GetShelf(context context.Context, uid string, callerUID *string) (*Shelf, error) {
	return service.resolveVisible(context, uid, callerUID)
}

// # Shelf Creation

// CreateParams carries the aggregate creation payload.
type CreateParams struct {
	Name        string
	Description *string
	Type        Visibility
	Tags        []string
	BookIDs     []int
}

/*
CreateShelf initialises a new shelf aggregate for the caller.

Description: Validates the payload, generates a UUID v7 identity,
materialises the caller's local profile, reduces the requested book IDs to
those that exist (unknown IDs are silently dropped) and persists the whole
aggregate in one transaction. An empty visibility defaults to private.

Parameters:
  - context: context.Context
  - ownerUID: string
  - username: string (Display name, used to materialise the local profile)
  - params: CreateParams

Returns:
  - *Shelf: The persisted aggregate, re-read with annotations
  - error: Validation or persistence errors
*/
func (service *Service) CreateShelf(context context.Context, ownerUID, username string, params CreateParams) (*Shelf, error) {

	if params.Type == "" {
		params.Type = VisibilityPrivate
	}

	// Payload validation
	validator := &validate.Validator{}
	validator.Required(FieldName, params.Name).MaxLen(FieldName, params.Name, MaxNameLen)
	validator.OneOf(FieldType, string(params.Type), string(VisibilityPublic), string(VisibilityPrivate))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Unknown book IDs are dropped, not rejected
	bookIDs, err := service.books.FilterExisting(context, params.BookIDs)
	if err != nil {
		return nil, err
	}

	// Local profile materialisation before the FK write
	if err := service.users.EnsureUser(context, ownerUID, username); err != nil {
		return nil, err
	}

	shelf := &Shelf{
		UID:         uuidv7.New(),
		Name:        params.Name,
		Description: params.Description,
		Type:        params.Type,
		UserUID:     ownerUID,
		Tags:        dedupeTags(params.Tags),
	}
	if err := service.shelfRepo.Create(context, shelf, bookIDs); err != nil {
		return nil, err
	}

	service.logger.Info("shelf_created",
		slog.String("shelf_uid", shelf.UID),
		slog.String("user_uid", ownerUID),
		slog.Int("books", len(bookIDs)),
	)

	// Re-read so tags and placements come back hydrated
	return service.shelfRepo.FindByUID(context, shelf.UID, &ownerUID)
}

// # Book Placements

/*
AddBook places a book on the caller's shelf, optionally with a tag set.

Description: Only the shelf owner may mutate its contents. The same book
may be placed more than once; each placement is independent.

Parameters:
  - context: context.Context
  - shelfUID: string
  - callerUID: string
  - bookID: int
  - tags: []string (optional placement tag set)

Returns:
  - *BookInShelf: The persisted placement
  - error: apperr.NotFound, apperr.Forbidden or persistence errors
*/
func (service *Service) AddBook(context context.Context, shelfUID, callerUID string, bookID int, tags []string) (*BookInShelf, error) {

	// Shelf existence guard (owner-scoped, so visibility never blocks)
	shelf, err := service.shelfRepo.FindByUID(context, shelfUID, &callerUID)
	if err != nil {
		return nil, err
	}

	// Ownership guard
	if shelf.UserUID != callerUID {
		return nil, apperr.Forbidden("Cannot modify another user's shelf")
	}

	// Book existence guard
	exists, err := service.books.Exists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	placement := &BookInShelf{
		BookID:   bookID,
		ShelfUID: shelfUID,
	}
	if err := service.shelfRepo.AddPlacement(context, placement); err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		tags = dedupeTags(tags)
		if err := service.shelfRepo.ReplacePlacementTags(context, placement.ID, tags); err != nil {
			return nil, err
		}
		placement.Tags = tags
	}

	service.logger.Info("shelf_book_added",
		slog.String("shelf_uid", shelfUID),
		slog.Int("book_id", bookID),
		slog.Int("placement_id", placement.ID),
	)

	return placement, nil
}

// resolvePlacement applies the shared guard chain for placement mutations:
// shelf existence, placement existence, parent match, shelf ownership.
func (service *Service) resolvePlacement(context context.Context, shelfUID string, placementID int, callerUID string) (*BookInShelf, error) {

	shelf, err := service.shelfRepo.FindByUID(context, shelfUID, &callerUID)
	if err != nil {
		return nil, err
	}

	placement, err := service.shelfRepo.FindPlacementByID(context, placementID)
	if err != nil {
		return nil, err
	}

	if placement.ShelfUID != shelfUID {
		return nil, apperr.ValidationError("Book in shelf does not belong to this shelf")
	}

	if shelf.UserUID != callerUID {
		return nil, apperr.Forbidden("Cannot modify another user's shelf")
	}

	return placement, nil
}

/*
RemoveBook takes a placement off the caller's shelf.

Parameters:
  - context: context.Context
  - shelfUID: string
  - placementID: int
  - callerUID: string

Returns:
  - error: apperr.NotFound, apperr.ValidationError, apperr.Forbidden or
    persistence errors, per the guard chain
*/
func (service *Service) RemoveBook(context context.Context, shelfUID string, placementID int, callerUID string) error {

	placement, err := service.resolvePlacement(context, shelfUID, placementID, callerUID)
	if err != nil {
		return err
	}

	if err := service.shelfRepo.RemovePlacement(context, placement.ID); err != nil {
		return err
	}

	service.logger.Info("shelf_book_removed",
		slog.String("shelf_uid", shelfUID),
		slog.Int("placement_id", placementID),
	)

	return nil
}

/*
ReplaceBookTags swaps a placement's tag set with the given one.

Parameters:
  - context: context.Context
  - shelfUID: string
  - placementID: int
  - callerUID: string
  - tags: []string (the complete desired tag set; empty clears all tags)

Returns:
  - *BookInShelf: The placement with its new tag set
  - error: Guard chain or persistence errors
*/
func (service *Service) ReplaceBookTags(context context.Context, shelfUID string, placementID int, callerUID string, tags []string) (*BookInShelf, error) {

	placement, err := service.resolvePlacement(context, shelfUID, placementID, callerUID)
	if err != nil {
		return nil, err
	}

	tags = dedupeTags(tags)
	if err := service.shelfRepo.ReplacePlacementTags(context, placement.ID, tags); err != nil {
		return nil, err
	}
	placement.Tags = tags

	service.logger.Info("shelf_book_tags_replaced",
		slog.String("shelf_uid", shelfUID),
		slog.Int("placement_id", placementID),
		slog.Int("tags", len(tags)),
	)

	return placement, nil
}

// # Comments

/*
ListComments retrieves every comment on a shelf the caller may see.

Parameters:
  - context: context.Context
  - shelfUID: string
  - callerUID: *string (nil when anonymous)

Returns:
  - []*Comment: Comments ordered newest first
  - error: apperr.NotFound or apperr.Forbidden per the visibility guard
*/
func (service *Service) ListComments(context context.Context, shelfUID string, callerUID *string) ([]*Comment, error) {

	if _, err := service.resolveVisible(context, shelfUID, callerUID); err != nil {
		return nil, err
	}

	return service.shelfRepo.ListComments(context, shelfUID)
}

/*
CreateComment attaches a new comment to a shelf the caller may see.

Parameters:
  - context: context.Context
  - shelfUID: string
  - callerUID: string
  - username: string
  - content: string

Returns:
  - *Comment: The persisted comment with generated fields
  - error: Validation, visibility or persistence errors
*/
func (service *Service) CreateComment(context context.Context, shelfUID, callerUID, username, content string) (*Comment, error) {

	// Content validation
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxCommentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Visibility guard doubles as the existence guard
	if _, err := service.resolveVisible(context, shelfUID, &callerUID); err != nil {
		return nil, err
	}

	// Local profile materialisation before the FK write
	if err := service.users.EnsureUser(context, callerUID, username); err != nil {
		return nil, err
	}

	comment := &Comment{
		ShelfUID: shelfUID,
		UserUID:  callerUID,
		Content:  content,
	}
	if err := service.shelfRepo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("shelf_comment_created",
		slog.String("shelf_uid", shelfUID),
		slog.Int("comment_id", comment.ID),
		slog.String("user_uid", callerUID),
	)

	return comment, nil
}

/*
DeleteComment removes a reader's own comment from a shelf.

Description: Guards are evaluated in a fixed order: shelf existence and
visibility, comment existence, parent match, then comment ownership.

Parameters:
  - context: context.Context
  - shelfUID: string
  - commentID: int
  - callerUID: string

Returns:
  - error: apperr.NotFound, apperr.ValidationError, apperr.Forbidden or
    persistence errors
*/
func (service *Service) DeleteComment(context context.Context, shelfUID string, commentID int, callerUID string) error {

	if _, err := service.resolveVisible(context, shelfUID, &callerUID); err != nil {
		return err
	}

	comment, err := service.shelfRepo.FindCommentByID(context, commentID)
	if err != nil {
		return err
	}

	// Parent match guard
	if comment.ShelfUID != shelfUID {
		return apperr.ValidationError("Comment does not belong to this shelf")
	}

	// Ownership guard
	if comment.UserUID != callerUID {
		return apperr.Forbidden("Cannot delete another user's comment")
	}

	if err := service.shelfRepo.DeleteComment(context, commentID); err != nil {
		return err
	}

	service.logger.Info("shelf_comment_deleted",
		slog.String("shelf_uid", shelfUID),
		slog.Int("comment_id", commentID),
		slog.String("user_uid", callerUID),
	)

	return nil
}

// # Ratings

/*
RateShelf records a reader's single-vote rating for a shelf.

Parameters:
  - context: context.Context
  - shelfUID: string
  - callerUID: string
  - username: string
  - value: int (Accepted range is RateMin..RateMax)

Returns:
  - *Rate: The persisted rating
  - error: Validation, visibility, duplicate-vote or persistence errors
*/
func (service *Service) RateShelf(context context.Context, shelfUID, callerUID, username string, value int) (*Rate, error) {

	// Vote value validation
	validator := &validate.Validator{}
	validator.Range(FieldRate, value, RateMin, RateMax)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Visibility guard doubles as the existence guard
	if _, err := service.resolveVisible(context, shelfUID, &callerUID); err != nil {
		return nil, err
	}

	// Single-vote guard
	existing, err := service.shelfRepo.FindRate(context, shelfUID, callerUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NotFoundCode("RATE_ALREADY_EXISTS", "Shelf is already rated by this user")
	}

	// Local profile materialisation before the FK write
	if err := service.users.EnsureUser(context, callerUID, username); err != nil {
		return nil, err
	}

	rate := &Rate{
		ShelfUID: shelfUID,
		UserUID:  callerUID,
		Rate:     value,
	}
	if err := service.shelfRepo.CreateRate(context, rate); err != nil {
		return nil, err
	}

	service.logger.Info("shelf_rated",
		slog.String("shelf_uid", shelfUID),
		slog.Int("rate", value),
		slog.String("user_uid", callerUID),
	)

	return rate, nil
}

/*
UnrateShelf withdraws a reader's rating from a shelf.

Parameters:
  - context: context.Context
  - shelfUID: string
  - callerUID: string

Returns:
  - error: apperr.NotFound when the shelf is missing or the reader has no
    rating to withdraw
*/
func (service *Service) UnrateShelf(context context.Context, shelfUID, callerUID string) error {

	if _, err := service.resolveVisible(context, shelfUID, &callerUID); err != nil {
		return err
	}

	// Missing-vote guard
	existing, err := service.shelfRepo.FindRate(context, shelfUID, callerUID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFoundCode("RATE_NOT_FOUND", "Shelf is not rated by this user")
	}

	if err := service.shelfRepo.DeleteRate(context, existing.ID); err != nil {
		return err
	}

	service.logger.Info("shelf_unrated",
		slog.String("shelf_uid", shelfUID),
		slog.String("user_uid", callerUID),
	)

	return nil
}
