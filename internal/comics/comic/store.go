// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import "context"

// # Catalogue Data Access

// Repository defines the data access contract for comics and their hierarchy.
type Repository interface {

	/*
		Create persists a new comic and seeds its default hierarchy rows
		according to the organization mode.

		Parameters:
		  - ctx: context.Context
		  - comic: *Comic (ID and CreatedAt populated on return)

		Returns:
		  - error: Conflict on duplicate comic URL, persistence failures
	*/
	Create(ctx context.Context, comic *Comic) error

	/*
		ListPublished returns a page of published comics, newest first.

		Parameters:
		  - ctx: context.Context
		  - limit: int (page size)
		  - offset: int (rows to skip)

		Returns:
		  - []*Comic: Slice of published comics without hierarchy
		  - error: Retrieval failures
	*/
	ListPublished(ctx context.Context, limit, offset int) ([]*Comic, error)

	/*
		CountPublished returns the total number of published comics.

		Returns:
		  - int: Catalogue size, for pagination metadata
		  - error: Retrieval failures
	*/
	CountPublished(ctx context.Context) (int, error)

	/*
		ListByOwner returns every comic owned by an account, published or not.

		Parameters:
		  - ctx: context.Context
		  - accountID: int64

		Returns:
		  - []*Comic: Slice of owned comics without hierarchy
		  - error: Retrieval failures
	*/
	ListByOwner(ctx context.Context, accountID int64) ([]*Comic, error)

	/*
		FindByURL retrieves a comic with its full hierarchy hydrated.

		Parameters:
		  - ctx: context.Context
		  - comicURL: string
		  - includeUnpublished: bool (owner and moderator view)

		Returns:
		  - *Comic: Hydrated comic with volumes, chapters, and pages
		  - error: ErrNotFound if missing, or unpublished in the reader view
	*/
	FindByURL(ctx context.Context, comicURL string, includeUnpublished bool) (*Comic, error)

	/*
		URLTaken reports whether a comic URL is already registered.

		Parameters:
		  - ctx: context.Context
		  - comicURL: string

		Returns:
		  - bool: True when the URL exists
		  - error: Retrieval failures
	*/
	URLTaken(ctx context.Context, comicURL string) (bool, error)

	// # Ownership Resolution

	/*
		OwnerOfComic resolves the owning account of a comic.

		Parameters:
		  - ctx: context.Context
		  - comicID: int64

		Returns:
		  - int64: Owning account ID
		  - error: ErrNotFound if the comic does not exist
	*/
	OwnerOfComic(ctx context.Context, comicID int64) (int64, error)

	/*
		OwnerOfVolume resolves a volume's owning account via its comic.
	*/
	OwnerOfVolume(ctx context.Context, volumeID int64) (int64, error)

	/*
		OwnerOfChapter resolves a chapter's owning account via its comic.
	*/
	OwnerOfChapter(ctx context.Context, chapterID int64) (int64, error)

	/*
		OwnerOfPage resolves a page's owning account via its comic.
	*/
	OwnerOfPage(ctx context.Context, pageID int64) (int64, error)

	// # Hierarchy Mutation

	/*
		AddVolume inserts a volume (ID populated on return).
	*/
	AddVolume(ctx context.Context, volume *Volume) error

	/*
		AddChapter inserts a chapter (ID populated on return).
	*/
	AddChapter(ctx context.Context, chapter *Chapter) error

	/*
		AddPage inserts an unpublished page (ID populated on return).
	*/
	AddPage(ctx context.Context, page *Page) error

	/*
		UpdateMetadata replaces a comic's presentation fields.

		Parameters:
		  - ctx: context.Context
		  - comicID: int64
		  - title, description, tagline: string
		  - published: bool

		Returns:
		  - error: ErrNotFound if missing, persistence failures
	*/
	UpdateMetadata(ctx context.Context, comicID int64, title, description, tagline string, published bool) error

	/*
		UpdateThumbnail replaces a comic's thumbnail file key.
	*/
	UpdateThumbnail(ctx context.Context, comicID int64, fileKey string) error

	/*
		MovePage relocates a page to another chapter in the same comic.

		Description: The page is appended at MAX(pageNumber)+1 in the target
		chapter and reset to unpublished; page numbers above the vacated slot
		in the source chapter shift down by one. Runs in a transaction.

		Parameters:
		  - ctx: context.Context
		  - pageID: int64
		  - chapterID: int64 (target chapter)

		Returns:
		  - error: Unprocessable if the chapter belongs to a different comic
	*/
	MovePage(ctx context.Context, pageID, chapterID int64) error

	/*
		MoveChapter relocates a chapter to another volume in the same comic.

		Description: The chapter is appended at MAX(chapterNumber)+1 in the
		target volume; the chapter and all its pages reset to unpublished;
		chapter numbers above the vacated slot in the source volume shift
		down by one. Runs in a transaction.

		Parameters:
		  - ctx: context.Context
		  - chapterID: int64
		  - volumeID: int64 (target volume)

		Returns:
		  - error: Unprocessable if the volume belongs to a different comic
	*/
	MoveChapter(ctx context.Context, chapterID, volumeID int64) error

	// # Deletion

	/*
		DeletePage removes a page and shifts later page numbers down.
	*/
	DeletePage(ctx context.Context, pageID int64) error

	/*
		DeleteChapter removes a chapter and its pages.
	*/
	DeleteChapter(ctx context.Context, chapterID int64) error

	/*
		DeleteVolume removes a volume with its chapters and pages.
	*/
	DeleteVolume(ctx context.Context, volumeID int64) error

	/*
		DeleteComic removes a comic and its entire hierarchy.
	*/
	DeleteComic(ctx context.Context, comicID int64) error
}
