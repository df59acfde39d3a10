// Copyright (c) 2026 ComicHub. All rights reserved.

package schedule

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
)

type fakeRepository struct {
	entries       []*Entry
	replacedDays  []int
	upsertedEntry *Entry
}

func (f *fakeRepository) ListByComic(ctx context.Context, comicID int64) ([]*Entry, error) {
	return f.entries, nil
}

func (f *fakeRepository) ReplaceWeekly(ctx context.Context, comicID int64, updateDays []int) error {
	f.replacedDays = updateDays
	return nil
}

func (f *fakeRepository) Upsert(ctx context.Context, entry *Entry) error {
	f.upsertedEntry = entry
	return nil
}

type fakeOwners map[int64]int64

func (f fakeOwners) OwnerOfComic(ctx context.Context, comicID int64) (int64, error) {
	owner, ok := f[comicID]
	if !ok {
		return 0, apperr.NotFound("Comic")
	}
	return owner, nil
}

func claims(accountID int64, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{AccountID: accountID, Username: "artist", Role: string(role)}
}

func newTestService(repo Repository, owners OwnerResolver) *Service {
	return NewService(repo, owners, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSetWeeklySchedule(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, fakeOwners{1: 7})

	err := service.SetWeeklySchedule(context.Background(), claims(7, sec.RoleUser), 1, []int{1, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, repo.replacedDays)
}

func TestSetWeeklySchedule_InvalidDay(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, fakeOwners{1: 7})

	err := service.SetWeeklySchedule(context.Background(), claims(7, sec.RoleUser), 1, []int{0, 8})
	require.Error(t, err)
	assert.Nil(t, repo.replacedDays)
}

func TestSetWeeklySchedule_NonOwnerForbidden(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, fakeOwners{1: 7})

	err := service.SetWeeklySchedule(context.Background(), claims(8, sec.RoleUser), 1, []int{2})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)
}

func TestEditSchedule(t *testing.T) {
	week := 2

	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{"weekly entry", Entry{ComicID: 1, UpdateDay: 3, UpdateType: UpdateWeekly}, false},
		{"monthly entry", Entry{ComicID: 1, UpdateDay: 6, UpdateType: UpdateMonthly, UpdateWeek: &week}, false},
		{"monthly without week", Entry{ComicID: 1, UpdateDay: 6, UpdateType: UpdateMonthly}, true},
		{"bad weekday", Entry{ComicID: 1, UpdateDay: 9, UpdateType: UpdateWeekly}, true},
		{"bad type", Entry{ComicID: 1, UpdateDay: 2, UpdateType: "fortnightly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := newTestService(repo, fakeOwners{1: 7})

			entry := tt.entry
			err := service.EditSchedule(context.Background(), claims(7, sec.RoleUser), &entry)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, repo.upsertedEntry)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, repo.upsertedEntry)
		})
	}
}

func TestEditSchedule_MonthlyRequiresWeek(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, fakeOwners{1: 7})

	entry := &Entry{ComicID: 1, UpdateDay: 6, UpdateType: UpdateMonthly}
	err := service.EditSchedule(context.Background(), claims(7, sec.RoleUser), entry)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, FieldUpdateWeek, appErr.Details[0].Field)
	assert.Contains(t, appErr.Details[0].Message, "required")
}

func TestEditSchedule_WeeklyDropsStrayWeek(t *testing.T) {
	week := 4
	repo := &fakeRepository{}
	service := newTestService(repo, fakeOwners{1: 7})

	entry := &Entry{ComicID: 1, UpdateDay: 3, UpdateType: UpdateWeekly, UpdateWeek: &week}
	require.NoError(t, service.EditSchedule(context.Background(), claims(7, sec.RoleUser), entry))
	assert.Nil(t, repo.upsertedEntry.UpdateWeek)
}

func TestEditSchedule_ModeratorAllowed(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, fakeOwners{1: 7})

	entry := &Entry{ComicID: 1, UpdateDay: 1, UpdateType: UpdateWeekly}
	require.NoError(t, service.EditSchedule(context.Background(), claims(99, sec.RoleModerator), entry))
	assert.NotNil(t, repo.upsertedEntry)
}
