// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for the book catalogue.
// It acts as the primary entry point for discovery and the social layer.
type Service struct {
	bookRepo Repository
	users    UserDirectory
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(bookRepo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		bookRepo: bookRepo,
		users:    users,
		logger:   logger,
	}
}

// # Book Lookups

/*
ListBooks retrieves a paginated, filtered and sorted collection of books.

Description: This method orchestrates the discovery phase of the catalogue.
It passes filter criteria directly to the repository layer for efficient
database-level filtering, sorting and rating annotation.

Parameters:
  - context: context.Context
  - filter: Filter (Axes and resolved sort spec)
  - callerUID: *string (nil when anonymous; drives the user_rate annotation)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Book: Slice of matching, rating-annotated records
  - error: System or repository level errors
*/
func (service *Service) ListBooks(context context.Context, filter Filter, callerUID *string, limit, offset int) ([]*Book, error) {
	return service.bookRepo.List(context, filter, callerUID, limit, offset)
}

/*
GetBook fetches a single book record by its numeric identifier.

Parameters:
  - context: context.Context
  - id: int
  - callerUID: *string (nil when anonymous)

Returns:
  - *Book: The hydrated domain entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetBook(context context.Context, id int, callerUID *string) (*Book, error) {
	return service.bookRepo.FindByID(context, id, callerUID)
}

// # Comments

/*
ListComments retrieves every comment attached to a book, newest first.

Parameters:
  - context: context.Context
  - bookID: int

Returns:
  - []*Comment: Comments ordered by publication time descending
  - error: apperr.NotFound if the book does not exist
*/
func (service *Service) ListComments(context context.Context, bookID int) ([]*Comment, error) {

	// Parent existence guard
	exists, err := service.bookRepo.Exists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	return service.bookRepo.ListComments(context, bookID)
}

/*
CreateComment attaches a new comment to a book on behalf of a reader.

Parameters:
  - context: context.Context
  - bookID: int
  - callerUID: string (Authenticated reader writing the comment)
  - username: string (Display name, used to materialise the local profile)
  - content: string

Returns:
  - *Comment: The persisted comment with generated fields
  - error: Validation, existence or persistence errors
*/
func (service *Service) CreateComment(context context.Context, bookID int, callerUID, username, content string) (*Comment, error) {

	// Content validation
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxCommentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Parent existence guard
	exists, err := service.bookRepo.Exists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	// Local profile materialisation before the FK write
	if err := service.users.EnsureUser(context, callerUID, username); err != nil {
		return nil, err
	}

	comment := &Comment{
		BookID:  bookID,
		UserUID: callerUID,
		Content: content,
	}
	if err := service.bookRepo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("book_comment_created",
		slog.Int("book_id", bookID),
		slog.Int("comment_id", comment.ID),
		slog.String("user_uid", callerUID),
	)

	return comment, nil
}

/*
DeleteComment removes a reader's own comment from a book.

Description: Guards are evaluated in a fixed order: book existence, comment
existence, parent match, then ownership. A comment that exists under a
different book is a malformed request, not a missing resource.

Parameters:
  - context: context.Context
  - bookID: int
  - commentID: int
  - callerUID: string

Returns:
  - error: apperr.NotFound, apperr.ValidationError, apperr.Forbidden or
    persistence errors
*/
func (service *Service) DeleteComment(context context.Context, bookID, commentID int, callerUID string) error {

	// Parent existence guard
	exists, err := service.bookRepo.Exists(context, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Book")
	}

	// Child existence guard
	comment, err := service.bookRepo.FindCommentByID(context, commentID)
	if err != nil {
		return err
	}

	// Parent match guard
	if comment.BookID != bookID {
		return apperr.ValidationError("Comment does not belong to this book")
	}

	// Ownership guard
	if comment.UserUID != callerUID {
		return apperr.Forbidden("Cannot delete another user's comment")
	}

	if err := service.bookRepo.DeleteComment(context, commentID); err != nil {
		return err
	}

	service.logger.Info("book_comment_deleted",
		slog.Int("book_id", bookID),
		slog.Int("comment_id", commentID),
		slog.String("user_uid", callerUID),
	)

	return nil
}

// # Ratings

/*
RateBook records a reader's single-vote rating for a book.

Description: A reader holds at most one rating per book. A second rating
attempt is rejected until the existing vote is withdrawn.

Parameters:
  - context: context.Context
  - bookID: int
  - callerUID: string
  - username: string (Display name, used to materialise the local profile)
  - value: int (Accepted range is RateMin..RateMax)

Returns:
  - *Rate: The persisted rating with generated fields
  - error: Validation, existence, duplicate-vote or persistence errors
*/
func (service *Service) RateBook(context context.Context, bookID int, callerUID, username string, value int) (*Rate, error) {

	// Vote value validation
	validator := &validate.Validator{}
	validator.Range(FieldRate, value, RateMin, RateMax)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Parent existence guard
	exists, err := service.bookRepo.Exists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	// Single-vote guard
	existing, err := service.bookRepo.FindRate(context, bookID, callerUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NotFoundCode("RATE_ALREADY_EXISTS", "Book is already rated by this user")
	}

	// Local profile materialisation before the FK write
	if err := service.users.EnsureUser(context, callerUID, username); err != nil {
		return nil, err
	}

	rate := &Rate{
		BookID:  bookID,
		UserUID: callerUID,
		Rate:    value,
	}
	if err := service.bookRepo.CreateRate(context, rate); err != nil {
		return nil, err
	}

	service.logger.Info("book_rated",
		slog.Int("book_id", bookID),
		slog.Int("rate", value),
		slog.String("user_uid", callerUID),
	)

	return rate, nil
}

/*
UnrateBook withdraws a reader's rating from a book.

Parameters:
  - context: context.Context
  - bookID: int
  - callerUID: string

Returns:
  - error: apperr.NotFound when the book is missing or the reader has no
    rating to withdraw
*/
func (service *Service) UnrateBook(context context.Context, bookID int, callerUID string) error {

	// Parent existence guard
	exists, err := service.bookRepo.Exists(context, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Book")
	}

	// Missing-vote guard
	existing, err := service.bookRepo.FindRate(context, bookID, callerUID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFoundCode("RATE_NOT_FOUND", "Book is not rated by this user")
	}

	if err := service.bookRepo.DeleteRate(context, existing.ID); err != nil {
		return err
	}

	service.logger.Info("book_unrated",
		slog.Int("book_id", bookID),
		slog.String("user_uid", callerUID),
	)

	return nil
}
