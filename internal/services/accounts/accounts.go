package accounts

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"fym/proj/internal/domain/models"
	"fym/proj/internal/mails"
	"fym/proj/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type AccountStorage interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	InsertAccount(ctx context.Context, acc *models.Account) error
	UpdateAccount(ctx context.Context, acc *models.Account) (*models.Account, error)
}

// SessionStorage holds the current-user pointer of every session.
type SessionStorage interface {
	SetSession(ctx context.Context, sid, accountID string) error
	GetSession(ctx context.Context, sid string) (string, error)
	DeleteSession(ctx context.Context, sid string) error
}

type Storage interface {
	AccountStorage
	SessionStorage
}

type TaskExecutor interface {
	TryAdd(task func()) bool
}

type AccountService struct {
	log          *slog.Logger
	storage      Storage
	mailer       mails.Sender
	taskExecutor TaskExecutor
	hashCost     int
	now          func() time.Time

	idMu   sync.Mutex
	lastID int64
}

// New builds the service. mailer may be nil, in which case no mail is sent.
func New(log *slog.Logger, storage Storage, mailer mails.Sender, taskExecutor TaskExecutor) *AccountService {
	return &AccountService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		hashCost:     bcrypt.DefaultCost,
		now:          time.Now,
	}
}

// nextID returns the wall-clock millisecond timestamp, bumped when needed so
// ids stay unique within the process.
func (s *AccountService) nextID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type SignUpInput struct {
	Email    string
	Password string
	Username string
}

func (s *AccountService) SignUp(ctx context.Context, sid string, in SignUpInput) (*models.Account, error) {
	const op = "accounts.AccountService.SignUp"
	email := normalizeEmail(in.Email)
	log := s.log.With("op", op, "email", email)

	_, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		log.Info("account already exists")
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Error("failed to look up account", "errMsg", err.Error())
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		log.Error("failed to hash password", "errMsg", err.Error())
		return nil, err
	}
	acc := &models.Account{
		ID:            s.nextID(),
		Email:         email,
		PasswordHash:  hash,
		Username:      strings.TrimSpace(in.Username),
		CreatedAt:     s.now().UTC(),
		Watchlists:    []models.Watchlist{},
		Reviews:       []models.Review{},
		Friends:       []string{},
		Preferences:   models.Preferences{},
		Settings:      models.DefaultSettings(),
		SchemaVersion: models.AccountSchemaVersion,
	}
	if err := s.storage.InsertAccount(ctx, acc); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("account already exists")
			return nil, ErrDuplicateAccount
		}
		log.Error("failed to insert account", "errMsg", err.Error())
		return nil, err
	}
	if err := s.storage.SetSession(ctx, sid, acc.ID); err != nil {
		log.Error("failed to set session", "errMsg", err.Error())
		return nil, err
	}
	s.sendWelcomeEmail(acc.Email, acc.Username)
	log.Info("account created", "id", acc.ID)
	return acc.Public(), nil
}

func (s *AccountService) sendWelcomeEmail(email, username string) {
	if s.mailer == nil || s.taskExecutor == nil {
		return
	}
	queued := s.taskExecutor.TryAdd(func() {
		err := s.mailer.Send(email, mails.WelcomeTemplate, map[string]any{"Username": username})
		if err != nil {
			s.log.Error("Error sending welcome email", "errMsg", err.Error())
		}
	})
	if !queued {
		s.log.Warn("welcome email dropped, task queue is full", "email", email)
	}
}

func (s *AccountService) SignIn(ctx context.Context, sid, email, password string) (*models.Account, error) {
	const op = "accounts.AccountService.SignIn"
	email = normalizeEmail(email)
	log := s.log.With("op", op, "email", email)

	acc, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up account", "errMsg", err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, ErrInvalidCredentials
	}
	if err := s.storage.SetSession(ctx, sid, acc.ID); err != nil {
		log.Error("failed to set session", "errMsg", err.Error())
		return nil, err
	}
	return acc.Public(), nil
}

// SignOut clears the session pointer. Stored accounts are untouched.
func (s *AccountService) SignOut(ctx context.Context, sid string) error {
	return s.storage.DeleteSession(ctx, sid)
}

// CurrentUser resolves the session pointer. It returns nil, nil for an
// anonymous session or a pointer to an account that no longer exists.
func (s *AccountService) CurrentUser(ctx context.Context, sid string) (*models.Account, error) {
	const op = "accounts.AccountService.CurrentUser"
	id, err := s.storage.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to read session", "op", op, "errMsg", err.Error())
		return nil, err
	}
	acc, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to read account", "op", op, "errMsg", err.Error())
		return nil, err
	}
	return acc.Public(), nil
}

func (s *AccountService) Get(ctx context.Context, userID string) (*models.Account, error) {
	acc, err := s.storage.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return acc.Public(), nil
}

// mutate is the one read-modify-write path for a single account. fn reports
// whether it changed anything; unchanged accounts are not written back.
func (s *AccountService) mutate(ctx context.Context, op, userID string, fn func(acc *models.Account) (bool, error)) (*models.Account, error) {
	log := s.log.With("op", op, "user_id", userID)
	acc, err := s.storage.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error("failed to read account", "errMsg", err.Error())
		return nil, err
	}
	changed, err := fn(acc)
	if err != nil {
		return nil, err
	}
	if !changed {
		return acc.Public(), nil
	}
	updated, err := s.storage.UpdateAccount(ctx, acc)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEditConflict):
			log.Warn("edit conflict", "version", acc.Version)
			return nil, ErrEditConflict
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, storage.ErrConflict):
			return nil, ErrDuplicateAccount
		}
		log.Error("failed to update account", "errMsg", err.Error())
		return nil, err
	}
	return updated.Public(), nil
}
