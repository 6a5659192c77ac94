package accounts

import (
	"bytes"
	"context"
	"encoding/csv"
	"sync"
	"testing"
	"time"

	"fym/proj/internal/domain/models"
	"fym/proj/internal/lib/logger"
	badgerstore "fym/proj/internal/storage/badger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type syncExecutor struct{}

func (syncExecutor) TryAdd(task func()) bool {
	task()
	return true
}

type sentMail struct {
	recipient string
	tmpl      string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(recipient string, tmplName string, tmplData any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{recipient, tmplName})
	return nil
}

func newTestService(t *testing.T) (*AccountService, *badgerstore.Storage, *recordingMailer) {
	t.Helper()
	store, err := badgerstore.New("", true, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	mailer := &recordingMailer{}
	s := New(logger.Discard(), store, mailer, syncExecutor{})
	s.hashCost = bcrypt.MinCost
	return s, store, mailer
}

func signUp(t *testing.T, s *AccountService, sid, email string) *models.Account {
	t.Helper()
	acc, err := s.SignUp(context.Background(), sid, SignUpInput{Email: email, Password: "secret123", Username: "ann"})
	require.NoError(t, err)
	return acc
}

var shawshank = models.WatchlistItem{ImdbID: "tt0111161", Title: "The Shawshank Redemption", Year: "1994", Type: "movie"}

func TestSignUpThenCurrentUser(t *testing.T) {
	s, _, mailer := newTestService(t)
	ctx := context.Background()

	acc := signUp(t, s, "sid-1", "Ann@Example.com")
	assert.Nil(t, acc.PasswordHash)
	assert.Equal(t, models.AccountSchemaVersion, acc.SchemaVersion)

	cur, err := s.CurrentUser(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "ann@example.com", cur.Email)
	assert.Equal(t, "ann", cur.Username)
	assert.Empty(t, cur.Watchlists)
	assert.Empty(t, cur.Reviews)
	assert.Empty(t, cur.Friends)
	assert.Nil(t, cur.PasswordHash)
	assert.Equal(t, "dark", cur.Settings.Theme)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentMail{"ann@example.com", "welcome.tmpl"}, mailer.sent[0])

	other, err := s.CurrentUser(ctx, "sid-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSignUpStoresHashNotPassword(t *testing.T) {
	s, store, _ := newTestService(t)
	acc := signUp(t, s, "sid", "a@b.com")
	stored, err := store.GetAccount(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(stored.PasswordHash), "secret123")
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("secret123")))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s, store, _ := newTestService(t)
	ctx := context.Background()
	first := signUp(t, s, "sid", "a@b.com")

	_, err := s.SignUp(ctx, "sid", SignUpInput{Email: "A@B.com", Password: "x", Username: "dup"})
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	stored, err := store.GetAccountByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "ann", stored.Username)
}

func TestAccountIDsAreIncreasing(t *testing.T) {
	s, _, _ := newTestService(t)
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }
	a := signUp(t, s, "s1", "a@b.com")
	b := signUp(t, s, "s2", "b@b.com")
	assert.Equal(t, "1700000000000", a.ID)
	assert.Equal(t, "1700000000001", b.ID)
}

func TestSignIn(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignIn(ctx, "sid", "a@b.com", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	signUp(t, s, "other", "a@b.com")
	_, err = s.SignIn(ctx, "sid", "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	acc, err := s.SignIn(ctx, "sid", " A@b.com ", "secret123")
	require.NoError(t, err)
	cur, err := s.CurrentUser(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, cur.ID)

	require.NoError(t, s.SignOut(ctx, "sid"))
	cur, err = s.CurrentUser(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = s.Get(ctx, acc.ID)
	assert.NoError(t, err)
}

func TestAddToWatchlistIsIdempotent(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")

	_, err := s.AddToWatchlist(ctx, acc.ID, shawshank, "")
	require.NoError(t, err)
	updated, err := s.AddToWatchlist(ctx, acc.ID, shawshank, "default")
	require.NoError(t, err)

	list := updated.Watchlist("default")
	require.NotNil(t, list)
	assert.Len(t, list.Items, 1)
	assert.False(t, list.Items[0].AddedAt.IsZero())

	_, err = s.AddToWatchlist(ctx, "missing", shawshank, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveThenReAdd(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")

	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	first, err := s.AddToWatchlist(ctx, acc.ID, shawshank, "favs")
	require.NoError(t, err)
	firstAdded := first.Watchlist("favs").Items[0].AddedAt

	removed, err := s.RemoveFromWatchlist(ctx, acc.ID, shawshank.ImdbID, "favs")
	require.NoError(t, err)
	assert.Empty(t, removed.Watchlist("favs").Items)

	clock = clock.Add(time.Hour)
	readded, err := s.AddToWatchlist(ctx, acc.ID, shawshank, "favs")
	require.NoError(t, err)
	items := readded.Watchlist("favs").Items
	require.Len(t, items, 1)
	assert.True(t, items[0].AddedAt.After(firstAdded))
}

func TestRemoveIsLenient(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")

	got, err := s.RemoveFromWatchlist(ctx, acc.ID, "tt0000001", "nope")
	require.NoError(t, err)
	assert.Equal(t, acc.Version, got.Version)

	_, err = s.AddToWatchlist(ctx, acc.ID, shawshank, "")
	require.NoError(t, err)
	_, err = s.RemoveFromWatchlist(ctx, acc.ID, "tt0000001", "")
	assert.NoError(t, err)

	_, err = s.RemoveFromWatchlist(ctx, "missing", "tt0000001", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddReviewUpserts(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")

	_, err := s.AddReview(ctx, acc.ID, "tt0111161", ReviewInput{Rating: 5, Text: "great", Watched: true})
	require.NoError(t, err)
	updated, err := s.AddReview(ctx, acc.ID, "tt0111161", ReviewInput{Rating: 4, Text: "still great", Watched: true})
	require.NoError(t, err)

	require.Len(t, updated.Reviews, 1)
	assert.Equal(t, "still great", updated.Reviews[0].Text)
	assert.Equal(t, 4, updated.Reviews[0].Rating)

	reviews, err := s.Reviews(ctx, acc.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = s.AddReview(ctx, acc.ID, "tt0111161", ReviewInput{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidReview)
}

func TestMarkWatchedAndNotes(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")
	_, err := s.AddToWatchlist(ctx, acc.ID, shawshank, "")
	require.NoError(t, err)

	_, err = s.MarkWatched(ctx, acc.ID, "tt9999999", "")
	assert.ErrorIs(t, err, ErrWatchlistItemNotFound)

	updated, err := s.MarkWatched(ctx, acc.ID, shawshank.ImdbID, "")
	require.NoError(t, err)
	item := updated.Watchlist("default").Item(shawshank.ImdbID)
	assert.True(t, item.Watched)
	require.NotNil(t, item.WatchedAt)

	rating := 5
	updated, err = s.UpdateItemNotes(ctx, acc.ID, shawshank.ImdbID, "", "hope", &rating)
	require.NoError(t, err)
	item = updated.Watchlist("default").Item(shawshank.ImdbID)
	assert.Equal(t, "hope", item.Notes)
	assert.Equal(t, 5, *item.Rating)

	history, err := s.WatchHistory(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, shawshank.ImdbID, history[0].ImdbID)
}

func TestSettingsAndProfile(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")
	signUp(t, s, "sid2", "taken@b.com")

	settings := models.DefaultSettings()
	settings.Theme = "light"
	updated, err := s.UpdateSettings(ctx, acc.ID, settings)
	require.NoError(t, err)
	assert.Equal(t, "light", updated.Settings.Theme)

	name := "annie"
	updated, err = s.UpdateProfile(ctx, acc.ID, ProfileInput{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "annie", updated.Username)

	taken := "Taken@b.com"
	_, err = s.UpdateProfile(ctx, acc.ID, ProfileInput{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

type racingStorage struct {
	*badgerstore.Storage
	once sync.Once
}

// GetAccount lets another writer update the account right after it was read.
func (r *racingStorage) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	acc, err := r.Storage.GetAccount(ctx, id)
	if err == nil {
		r.once.Do(func() {
			other := *acc
			other.Username = "other tab"
			_, _ = r.Storage.UpdateAccount(ctx, &other)
		})
	}
	return acc, err
}

func TestConcurrentEditConflict(t *testing.T) {
	s, store, _ := newTestService(t)
	ctx := context.Background()
	acc := signUp(t, s, "sid", "a@b.com")

	s.storage = &racingStorage{Storage: store}
	_, err := s.AddToWatchlist(ctx, acc.ID, shawshank, "")
	assert.ErrorIs(t, err, ErrEditConflict)

	stored, err := store.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "other tab", stored.Username)
	assert.Empty(t, stored.Watchlists)

	// The next attempt reads the new version and succeeds.
	_, err = s.AddToWatchlist(ctx, acc.ID, shawshank, "")
	assert.NoError(t, err)
}

func TestExportWatchlistCSV(t *testing.T) {
	watchedAt := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	rating := 4
	acc := &models.Account{Watchlists: []models.Watchlist{{
		Name: "default",
		Items: []models.WatchlistItem{
			{Title: "Heat, Part 1", Year: "1995", Type: "movie", Rating: &rating, Watched: true, WatchedAt: &watchedAt, Notes: `said "wow"`},
			{Title: "Dark", Year: "2017–2020", Type: "series"},
		},
	}}}

	var buf bytes.Buffer
	require.NoError(t, ExportWatchlistCSV(&buf, acc, ""))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Title", "Year", "Type", "Rating", "Watched", "Watched Date", "Notes"}, rows[0])
	assert.Equal(t, []string{"Heat, Part 1", "1995", "movie", "4", "Yes", "2024-02-03T04:05:06Z", `said "wow"`}, rows[1])
	assert.Equal(t, []string{"Dark", "2017–2020", "series", "", "No", "", ""}, rows[2])

	buf.Reset()
	require.NoError(t, ExportWatchlistCSV(&buf, acc, "missing"))
	assert.Equal(t, "Title,Year,Type,Rating,Watched,Watched Date,Notes\n", buf.String())
}

func TestExportWatchlistCSVNeutralisesFormulas(t *testing.T) {
	acc := &models.Account{Watchlists: []models.Watchlist{{
		Name: "default",
		Items: []models.WatchlistItem{
			{Title: "=HYPERLINK(\"http://x\")", Year: "+1", Type: "movie", Notes: "@SUM(A1)"},
			{Title: "-1 Below", Year: "2001", Type: "movie", Notes: "plain - text"},
		},
	}}}

	var buf bytes.Buffer
	require.NoError(t, ExportWatchlistCSV(&buf, acc, ""))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", rows[1][0])
	assert.Equal(t, "'+1", rows[1][1])
	assert.Equal(t, "'@SUM(A1)", rows[1][6])
	assert.Equal(t, "'-1 Below", rows[2][0])
	assert.Equal(t, "plain - text", rows[2][6])
}
