package social

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/filters"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/mails"

	"github.com/google/uuid"
)

// Mock is the in-memory Provider. It starts from a fixed seed every time the
// process starts.
type Mock struct {
	log          *slog.Logger
	searcher     Searcher
	mailer       mails.Sender
	taskExecutor TaskExecutor
	now          func() time.Time
	newID        func() string

	mu        sync.Mutex
	activity  []models.FriendActivity
	interests map[string][]models.CommonInterest
	gems      []models.HiddenGem
	parties   []models.WatchParty
	lists     []models.CollaborativeList
	moods     []models.MoodCollection
	streaming map[string][]string
}

var _ Provider = (*Mock)(nil)

// NewMock builds a seeded provider. searcher, mailer and taskExecutor may be
// nil; gems then keep an unknown id and invitations are not sent.
func NewMock(log *slog.Logger, searcher Searcher, mailer mails.Sender, taskExecutor TaskExecutor) *Mock {
	s := seed()
	return &Mock{
		log:          log,
		searcher:     searcher,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
		activity:     s.activity,
		interests:    s.interests,
		gems:         s.gems,
		parties:      s.parties,
		lists:        s.lists,
		moods:        s.moods,
		streaming:    s.streaming,
	}
}

func (m *Mock) FriendActivity(ctx context.Context) ([]models.FriendActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.activity)
	slices.SortStableFunc(out, func(a, b models.FriendActivity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out, nil
}

// CommonInterests lists titles shared with friendID. An unknown friend shares
// the default set.
func (m *Mock) CommonInterests(ctx context.Context, friendID string) ([]models.CommonInterest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if items, ok := m.interests[friendID]; ok {
		return slices.Clone(items), nil
	}
	return slices.Clone(m.interests[""]), nil
}

func (m *Mock) HiddenGems(ctx context.Context, filter, sortBy, query string) ([]models.HiddenGem, error) {
	m.mu.Lock()
	gems := filters.FilterGems(m.gems, filter, query)
	m.mu.Unlock()
	filters.SortGems(gems, sortBy)
	return gems, nil
}

func (m *Mock) SubmitGem(ctx context.Context, userID string, in GemInput) (*models.HiddenGem, error) {
	const op = "social.Mock.SubmitGem"
	log := m.log.With("op", op, "title", in.Title)

	imdbID, poster := UnknownImdbID, ""
	if m.searcher != nil {
		env, err := m.searcher.Search(ctx, omdb.SearchParams{Query: in.Title})
		switch {
		case err != nil:
			log.Warn("failed to resolve gem title", "errMsg", err.Error())
		case len(env.Search) > 0:
			imdbID = env.Search[0].ImdbID
			if hit := env.Search[0]; hit.Poster != models.NotAvailable {
				poster = hit.Poster
			}
		}
	}

	typ := in.Type
	if typ == "" {
		typ = models.TypeMovie
	}
	gem := models.HiddenGem{
		ID:          m.newID(),
		ImdbID:      imdbID,
		Title:       strings.TrimSpace(in.Title),
		Year:        strings.TrimSpace(in.Year),
		Type:        typ,
		Poster:      poster,
		Description: strings.TrimSpace(in.Description),
		SubmittedBy: userID,
		SubmittedAt: m.now().UTC(),
		Tags:        splitTags(in.Tags),
	}

	m.mu.Lock()
	m.gems = append([]models.HiddenGem{gem}, m.gems...)
	m.mu.Unlock()
	log.Info("gem submitted", "id", gem.ID, "imdbId", imdbID)
	return &gem, nil
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (m *Mock) VoteGem(ctx context.Context, gemID, direction string) (*models.HiddenGem, error) {
	if direction != VoteUp && direction != VoteDown {
		return nil, ErrInvalidVote
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.gems {
		if m.gems[i].ID != gemID {
			continue
		}
		if direction == VoteUp {
			m.gems[i].Upvotes++
		} else {
			m.gems[i].Downvotes++
		}
		gem := m.gems[i]
		return &gem, nil
	}
	return nil, ErrGemNotFound
}

func (m *Mock) WatchParties(ctx context.Context) ([]models.WatchParty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WatchParty, len(m.parties))
	for i, p := range m.parties {
		out[i] = cloneParty(p)
	}
	return out, nil
}

func cloneParty(p models.WatchParty) models.WatchParty {
	p.Participants = slices.Clone(p.Participants)
	p.ChatMessages = slices.Clone(p.ChatMessages)
	return p
}

func (m *Mock) CreateWatchParty(ctx context.Context, host Host, in WatchPartyInput) (*models.WatchParty, error) {
	const op = "social.Mock.CreateWatchParty"
	log := m.log.With("op", op, "host", host.ID)

	seats := in.MaxParticipants
	if seats < 1 {
		seats = len(in.Invitees) + 1
	}
	party := models.WatchParty{
		ID:            m.newID(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		HostID:        host.ID,
		Participants:  []string{host.ID},
		MovieID:       in.MovieID,
		ScheduledDate: in.ScheduledDate.UTC(),
		Duration:      in.Duration,
		Cost:          in.Cost,
		CostPerPerson: math.Round(in.Cost/float64(seats)*100) / 100,
		Status:        "scheduled",
		ChatMessages:  []models.ChatMessage{},
		CreatedAt:     m.now().UTC(),
	}

	m.mu.Lock()
	m.parties = append([]models.WatchParty{party}, m.parties...)
	m.mu.Unlock()

	title := in.MovieTitle
	if title == "" {
		title = in.MovieID
	}
	for _, email := range in.Invitees {
		m.sendInvite(log, email, map[string]any{
			"Host":         host.Username,
			"Title":        title,
			"Name":         party.Title,
			"ScheduledFor": party.ScheduledDate,
		})
	}
	log.Info("watch party created", "id", party.ID, "invitees", len(in.Invitees))
	out := cloneParty(party)
	return &out, nil
}

func (m *Mock) sendInvite(log *slog.Logger, email string, data map[string]any) {
	if m.mailer == nil || m.taskExecutor == nil {
		return
	}
	queued := m.taskExecutor.TryAdd(func() {
		if err := m.mailer.Send(email, mails.WatchPartyInviteTemplate, data); err != nil {
			log.Error("Error sending watch party invite", "errMsg", err.Error())
		}
	})
	if !queued {
		log.Warn("invite dropped, task queue is full", "email", email)
	}
}

func (m *Mock) PostMessage(ctx context.Context, partyID string, author Host, text string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:        m.newID(),
		UserID:    author.ID,
		Username:  author.Username,
		Message:   strings.TrimSpace(text),
		Timestamp: m.now().UTC(),
		Reactions: []models.Reaction{},
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.parties {
		if m.parties[i].ID == partyID {
			m.parties[i].ChatMessages = append(m.parties[i].ChatMessages, msg)
			return &msg, nil
		}
	}
	return nil, ErrPartyNotFound
}

func (m *Mock) CollaborativeLists(ctx context.Context) ([]models.CollaborativeList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CollaborativeList, len(m.lists))
	for i, l := range m.lists {
		l.Collaborators = slices.Clone(l.Collaborators)
		l.Items = slices.Clone(l.Items)
		out[i] = l
	}
	return out, nil
}

func (m *Mock) CreateCollaborativeList(ctx context.Context, ownerID string, in ListInput) (*models.CollaborativeList, error) {
	now := m.now().UTC()
	list := models.CollaborativeList{
		ID:            m.newID(),
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		OwnerID:       ownerID,
		Collaborators: []string{ownerID},
		Items:         []models.WatchlistItem{},
		IsPublic:      in.IsPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.mu.Lock()
	m.lists = append([]models.CollaborativeList{list}, m.lists...)
	m.mu.Unlock()
	list.Collaborators = slices.Clone(list.Collaborators)
	return &list, nil
}

// AddCollaborator is a no-op for a user already on the list.
func (m *Mock) AddCollaborator(ctx context.Context, listID, userID string) (*models.CollaborativeList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lists {
		l := &m.lists[i]
		if l.ID != listID {
			continue
		}
		if !slices.Contains(l.Collaborators, userID) {
			l.Collaborators = append(l.Collaborators, userID)
			l.UpdatedAt = m.now().UTC()
		}
		out := *l
		out.Collaborators = slices.Clone(l.Collaborators)
		out.Items = slices.Clone(l.Items)
		return &out, nil
	}
	return nil, ErrListNotFound
}

func (m *Mock) MoodCollections(ctx context.Context) ([]models.MoodCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MoodCollection, len(m.moods))
	for i, c := range m.moods {
		c.Items = slices.Clone(c.Items)
		c.Followers = slices.Clone(c.Followers)
		out[i] = c
	}
	return out, nil
}

const defaultMoodColor = "#dc2626"

func (m *Mock) CreateMoodCollection(ctx context.Context, userID string, in MoodInput) (*models.MoodCollection, error) {
	now := m.now().UTC()
	color := in.Color
	if color == "" {
		color = defaultMoodColor
	}
	c := models.MoodCollection{
		ID:          m.newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Mood:        in.Mood,
		Color:       color,
		Banner:      in.Banner,
		Items:       []models.WatchlistItem{},
		IsPublic:    in.IsPublic,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Followers:   []string{},
	}
	m.mu.Lock()
	m.moods = append([]models.MoodCollection{c}, m.moods...)
	m.mu.Unlock()
	return &c, nil
}

// StreamingAvailability lists the services carrying imdbID in region. A title
// the catalog does not know has no platforms.
func (m *Mock) StreamingAvailability(ctx context.Context, imdbID, region string) (*models.StreamingAvailability, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	m.mu.Lock()
	serviceIDs := m.streaming[imdbID]
	m.mu.Unlock()

	out := &models.StreamingAvailability{
		ImdbID:      imdbID,
		Platforms:   []models.StreamingPlatform{},
		LastUpdated: m.now().UTC(),
	}
	for _, id := range serviceIDs {
		svc, ok := streamingServices[id]
		if !ok || !slices.Contains(svc.regions, region) {
			continue
		}
		price := svc.monthlyPrice
		out.Platforms = append(out.Platforms, models.StreamingPlatform{
			Name:         svc.name,
			Region:       region,
			URL:          svc.url,
			Price:        &price,
			Subscription: true,
		})
	}
	return out, nil
}
