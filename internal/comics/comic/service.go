// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import (
	"context"
	"log/slog"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/validate"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/pkg/pagination"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/pkg/slug"
)

// # Service Layer

// Service orchestrates business rules for the comic catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new catalogue [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// canModify reports whether the claims may alter content owned by ownerID.
// Moderators and admins may modify any comic.
func canModify(claims *sec.AuthClaims, ownerID int64) bool {
	if claims == nil {
		return false
	}
	if claims.AccountID == ownerID {
		return true
	}
	return sec.UserRole(claims.Role).AtLeast(sec.RoleModerator)
}

// errNotOwner is returned for every ownership failure so the response does
// not leak whether the resource exists.
func errNotOwner() error {
	return apperr.Forbidden("You do not have permission to modify this comic")
}

// # Comic Lifecycle

/*
CreateComic validates and persists a new comic for the authenticated account.

Parameters:
  - ctx: context.Context
  - comic: *Comic (AccountID already set from claims)

Returns:
  - error: Validation failures, Conflict on duplicate URL
*/
func (service *Service) CreateComic(ctx context.Context, comic *Comic) error {
	// Normalize the requested URL before validating it: accents are
	// stripped, case is folded, and separators become hyphens.
	comic.ComicURL = slug.From(comic.ComicURL)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).MaxLen(FieldTitle, comic.Title, 50)
	validator.Required(FieldComicURL, comic.ComicURL).MaxLen(FieldComicURL, comic.ComicURL, 30)
	validator.Slug(FieldComicURL, comic.ComicURL)
	validator.Required(FieldTagline, comic.Tagline).MaxLen(FieldTagline, comic.Tagline, 60)
	validator.Required(FieldDescription, comic.Description).MaxLen(FieldDescription, comic.Description, 1000)
	validator.Required(FieldThumbnail, comic.ThumbnailURL)
	validator.OneOf(FieldOrganization, string(comic.Organization),
		string(OrganizationVolumes), string(OrganizationChapters), string(OrganizationPages))

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, comic); err != nil {
		return err
	}

	service.logger.Info("comic_created",
		slog.Int64("comic_id", comic.ID),
		slog.Int64("account_id", comic.AccountID),
		slog.String("organization", string(comic.Organization)),
	)

	return nil
}

// ListPublished returns one page of the public catalogue with its
// pagination metadata.
func (service *Service) ListPublished(ctx context.Context, params pagination.Params) ([]*Comic, pagination.Meta, error) {
	total, err := service.repo.CountPublished(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	comics, err := service.repo.ListPublished(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return comics, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ListOwned returns every comic belonging to the authenticated account.
func (service *Service) ListOwned(ctx context.Context, accountID int64) ([]*Comic, error) {
	return service.repo.ListByOwner(ctx, accountID)
}

/*
GetByURL retrieves a comic with its hierarchy.

Description: Anonymous readers and non-owners get the published view. The
owner and moderators get the full view including unpublished content.

Parameters:
  - ctx: context.Context
  - comicURL: string
  - claims: *sec.AuthClaims (nil for anonymous readers)

Returns:
  - *Comic: Hydrated comic
  - error: ErrNotFound when missing or hidden from the caller
*/
func (service *Service) GetByURL(ctx context.Context, comicURL string, claims *sec.AuthClaims) (*Comic, error) {
	comic, err := service.repo.FindByURL(ctx, comicURL, true)
	if err != nil {
		return nil, err
	}

	if canModify(claims, comic.AccountID) {
		return comic, nil
	}

	// Reader view: refetch with the published filter applied at every level.
	return service.repo.FindByURL(ctx, comicURL, false)
}

// URLAvailable reports whether a comic URL is free to register.
func (service *Service) URLAvailable(ctx context.Context, comicURL string) (bool, error) {
	validator := &validate.Validator{}
	validator.Required(FieldComicURL, comicURL).Slug(FieldComicURL, comicURL)
	if err := validator.Err(); err != nil {
		return false, err
	}

	taken, err := service.repo.URLTaken(ctx, comicURL)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

/*
UpdateMetadata replaces a comic's presentation fields.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims
  - comicID: int64
  - title, description, tagline: string
  - published: bool

Returns:
  - error: Forbidden for non-owners, validation or persistence failures
*/
func (service *Service) UpdateMetadata(ctx context.Context, claims *sec.AuthClaims, comicID int64, title, description, tagline string, published bool) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, 50)
	validator.Required(FieldTagline, tagline).MaxLen(FieldTagline, tagline, 60)
	validator.Required(FieldDescription, description).MaxLen(FieldDescription, description, 1000)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorizeComic(ctx, claims, comicID); err != nil {
		return err
	}

	if err := service.repo.UpdateMetadata(ctx, comicID, title, description, tagline, published); err != nil {
		return err
	}

	service.logger.Info("comic_updated",
		slog.Int64("comic_id", comicID),
		slog.Bool("published", published),
	)
	return nil
}

// UpdateThumbnail replaces a comic's thumbnail file key.
func (service *Service) UpdateThumbnail(ctx context.Context, claims *sec.AuthClaims, comicID int64, fileKey string) error {
	validator := &validate.Validator{}
	validator.Required(FieldThumbnail, fileKey)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorizeComic(ctx, claims, comicID); err != nil {
		return err
	}

	return service.repo.UpdateThumbnail(ctx, comicID, fileKey)
}

// DeleteComic removes a comic and everything beneath it.
func (service *Service) DeleteComic(ctx context.Context, claims *sec.AuthClaims, comicID int64) error {
	if err := service.authorizeComic(ctx, claims, comicID); err != nil {
		return err
	}

	if err := service.repo.DeleteComic(ctx, comicID); err != nil {
		return err
	}

	service.logger.Info("comic_deleted", slog.Int64("comic_id", comicID))
	return nil
}

// # Hierarchy Management

/*
AddVolume appends a volume to an owned comic.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims
  - volume: *Volume

Returns:
  - error: Forbidden for non-owners, validation or persistence failures
*/
func (service *Service) AddVolume(ctx context.Context, claims *sec.AuthClaims, volume *Volume) error {
	validator := &validate.Validator{}
	validator.Positive("comic_id", volume.ComicID)
	validator.Range(FieldVolumeNumber, volume.VolumeNumber, 1, 10000)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorizeComic(ctx, claims, volume.ComicID); err != nil {
		return err
	}

	return service.repo.AddVolume(ctx, volume)
}

// AddChapter appends a chapter to an owned comic.
func (service *Service) AddChapter(ctx context.Context, claims *sec.AuthClaims, chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Positive("comic_id", chapter.ComicID)
	validator.Range(FieldChapterNum, chapter.ChapterNumber, 1, 10000)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorizeComic(ctx, claims, chapter.ComicID); err != nil {
		return err
	}

	return service.repo.AddChapter(ctx, chapter)
}

// AddPage appends an unpublished page; it becomes visible once the release
// job or an owner edit publishes it.
func (service *Service) AddPage(ctx context.Context, claims *sec.AuthClaims, page *Page) error {
	validator := &validate.Validator{}
	validator.Positive("comic_id", page.ComicID)
	validator.Range(FieldPageNumber, page.PageNumber, 1, 100000)
	validator.Required(FieldThumbnail, page.FileKey)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.authorizeComic(ctx, claims, page.ComicID); err != nil {
		return err
	}

	return service.repo.AddPage(ctx, page)
}

// MovePage relocates an owned page into another chapter of the same comic.
func (service *Service) MovePage(ctx context.Context, claims *sec.AuthClaims, pageID, chapterID int64) error {
	ownerID, err := service.repo.OwnerOfPage(ctx, pageID)
	if err != nil {
		return err
	}
	if !canModify(claims, ownerID) {
		return errNotOwner()
	}

	return service.repo.MovePage(ctx, pageID, chapterID)
}

// MoveChapter relocates an owned chapter into another volume of the same comic.
func (service *Service) MoveChapter(ctx context.Context, claims *sec.AuthClaims, chapterID, volumeID int64) error {
	ownerID, err := service.repo.OwnerOfChapter(ctx, chapterID)
	if err != nil {
		return err
	}
	if !canModify(claims, ownerID) {
		return errNotOwner()
	}

	return service.repo.MoveChapter(ctx, chapterID, volumeID)
}

// DeletePage removes an owned page.
func (service *Service) DeletePage(ctx context.Context, claims *sec.AuthClaims, pageID int64) error {
	ownerID, err := service.repo.OwnerOfPage(ctx, pageID)
	if err != nil {
		return err
	}
	if !canModify(claims, ownerID) {
		return errNotOwner()
	}

	return service.repo.DeletePage(ctx, pageID)
}

// DeleteChapter removes an owned chapter and its pages.
func (service *Service) DeleteChapter(ctx context.Context, claims *sec.AuthClaims, chapterID int64) error {
	ownerID, err := service.repo.OwnerOfChapter(ctx, chapterID)
	if err != nil {
		return err
	}
	if !canModify(claims, ownerID) {
		return errNotOwner()
	}

	return service.repo.DeleteChapter(ctx, chapterID)
}

// DeleteVolume removes an owned volume and everything beneath it.
func (service *Service) DeleteVolume(ctx context.Context, claims *sec.AuthClaims, volumeID int64) error {
	ownerID, err := service.repo.OwnerOfVolume(ctx, volumeID)
	if err != nil {
		return err
	}
	if !canModify(claims, ownerID) {
		return errNotOwner()
	}

	return service.repo.DeleteVolume(ctx, volumeID)
}

// authorizeComic resolves the comic's owner and checks modify rights.
func (service *Service) authorizeComic(ctx context.Context, claims *sec.AuthClaims, comicID int64) error {
	ownerID, err := service.repo.OwnerOfComic(ctx, comicID)
	if err != nil {
		return err
	}
	if !canModify(claims, ownerID) {
		return errNotOwner()
	}
	return nil
}
