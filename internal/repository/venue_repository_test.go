package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/model"
)

var testNow = time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestVenueRepoCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO venues").
		WithArgs("The Musical Hop", "Jazz,Reggae", "1015 Folsom Street", "San Francisco", "CA",
			"123-123-1234", nil, "https://www.facebook.com/TheMusicalHop", true, "Looking for local acts", nil).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	v := &model.Venue{
		Name:               "The Musical Hop",
		Genres:             model.Genres{model.GenreJazz, model.GenreReggae},
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		SeekingTalent:      true,
		SeekingDescription: "Looking for local acts",
	}
	require.NoError(t, repo.Create(context.Background(), v))
	assert.Equal(t, uint64(42), v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	cols := []string{"id", "name", "genres", "address", "city", "state", "phone", "website", "facebook_link",
		"seeking_talent", "seeking_description", "image_link", "created_at", "updated_at"}
	mock.ExpectQuery("FROM venues WHERE id").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			1, "The Dueling Pianos Bar", "Classical,R&B,Hip-Hop", "335 Delancey Street", "New York", "NY",
			"914-003-1132", "https://www.theduelingpianos.com", nil, false, nil, nil, testNow, testNow,
		))

	v, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "The Dueling Pianos Bar", v.Name)
	assert.Equal(t, model.Genres{model.GenreClassical, model.GenreRnB, model.GenreHipHop}, v.Genres)
	assert.Equal(t, "https://www.theduelingpianos.com", v.Website)
	assert.Empty(t, v.FacebookLink)
	assert.Empty(t, v.SeekingDescription)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("FROM venues WHERE id").WithArgs(uint64(999)).WillReturnError(sql.ErrNoRows)

	v, err := repo.GetByID(context.Background(), 999)
	assert.Nil(t, v)
	assert.True(t, apperror.IsNotFound(err))
}

func TestVenueRepoDeleteRemovesShowsThenVenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM shows WHERE venue_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM venues WHERE id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoDeleteRollsBackWhenVenueDeleteFails(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	boom := errors.New("lock wait timeout exceeded")
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM shows WHERE venue_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM venues WHERE id").WithArgs(uint64(5)).WillReturnError(boom)
	mock.ExpectRollback()

	removed, err := repo.Delete(context.Background(), 5)
	assert.Zero(t, removed)
	var pe *apperror.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "venue.delete", pe.Op)
	assert.ErrorIs(t, err, boom)
	// no commit was issued, so the show rows are untouched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoDeleteMissingVenueRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM shows WHERE venue_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM venues WHERE id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), 77)
	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoUpdateMissingVenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE venues").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &model.Venue{ID: 3, Name: "Gone"})
	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoSearchBlankTermSkipsQuery(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	got, err := repo.Search(context.Background(), "   ", testNow)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoSearch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("WHERE LOWER").
		WithArgs(testNow, "%hop%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 2))

	got, err := repo.Search(context.Background(), "HOP", testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Musical Hop", got[0].Name)
	assert.Equal(t, 2, got[0].NumUpcomingShows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepoListWithUpcoming(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("FROM venues v").
		WithArgs(testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 0).
			AddRow(2, "The Dueling Pianos Bar", "New York", "NY", 1))

	got, err := repo.ListWithUpcoming(context.Background(), testNow)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestVenueRepoShows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("JOIN artists a").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "name", "image_link", "start_time"}).
			AddRow(4, "Guns N Petals", "", testNow.Add(-time.Hour)))

	got, err := repo.Shows(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Guns N Petals", got[0].ArtistName)
	assert.Equal(t, time.UTC, got[0].StartTime.Location())
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\% dive%`, likePattern("100% Dive"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`C:\X`))
}
