// Copyright (c) 2026 ComicHub. All rights reserved.

package schedule

import (
	"context"
	"log/slog"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/validate"
)

// OwnerResolver resolves who owns a comic. Satisfied by the catalogue
// repository.
type OwnerResolver interface {
	OwnerOfComic(ctx context.Context, comicID int64) (int64, error)
}

// # Service Layer

// Service orchestrates business rules for release calendars.
type Service struct {
	repo   Repository
	owners OwnerResolver
	logger *slog.Logger
}

// NewService constructs a new schedule [Service].
func NewService(repo Repository, owners OwnerResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		logger: logger,
	}
}

// GetSchedule returns a comic's calendar entries. Schedules are public; the
// reader-facing site shows upcoming release days.
func (service *Service) GetSchedule(ctx context.Context, comicID int64) ([]*Entry, error) {
	return service.repo.ListByComic(ctx, comicID)
}

/*
SetWeeklySchedule replaces a comic's calendar with weekly entries.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims
  - comicID: int64
  - updateDays: []int (ISO weekdays, Monday=1 through Sunday=7)

Returns:
  - error: Forbidden for non-owners, validation failures
*/
func (service *Service) SetWeeklySchedule(ctx context.Context, claims *sec.AuthClaims, comicID int64, updateDays []int) error {
	validator := &validate.Validator{}
	for _, day := range updateDays {
		validator.Range(FieldUpdateDays, day, 1, 7)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorize(ctx, claims, comicID); err != nil {
		return err
	}

	if err := service.repo.ReplaceWeekly(ctx, comicID, updateDays); err != nil {
		return err
	}

	service.logger.Info("schedule_replaced",
		slog.Int64("comic_id", comicID),
		slog.Int("days", len(updateDays)),
	)
	return nil
}

/*
EditSchedule upserts a single calendar entry.

Description: Weekly entries must not carry an update week; monthly entries
must pin one (1-5, counted from the 1st of the month).

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims
  - entry: *Entry

Returns:
  - error: Forbidden for non-owners, validation failures
*/
func (service *Service) EditSchedule(ctx context.Context, claims *sec.AuthClaims, entry *Entry) error {
	validator := &validate.Validator{}
	validator.Range(FieldUpdateDay, entry.UpdateDay, 1, 7)
	validator.OneOf(FieldUpdateType, string(entry.UpdateType),
		string(UpdateWeekly), string(UpdateMonthly))

	switch entry.UpdateType {
	case UpdateMonthly:
		if entry.UpdateWeek == nil {
			validator.Fail(FieldUpdateWeek, "This field is required for monthly schedules")
		} else {
			validator.Range(FieldUpdateWeek, *entry.UpdateWeek, 1, 5)
		}
	case UpdateWeekly:
		// A weekly entry fires regardless of the week; drop a stray value.
		entry.UpdateWeek = nil
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorize(ctx, claims, entry.ComicID); err != nil {
		return err
	}

	return service.repo.Upsert(ctx, entry)
}

func (service *Service) authorize(ctx context.Context, claims *sec.AuthClaims, comicID int64) error {
	ownerID, err := service.owners.OwnerOfComic(ctx, comicID)
	if err != nil {
		return err
	}
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if claims.AccountID != ownerID && !sec.UserRole(claims.Role).AtLeast(sec.RoleModerator) {
		return apperr.Forbidden("You do not have permission to modify this schedule")
	}
	return nil
}
