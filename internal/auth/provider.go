package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tinytelemetry/smileguide/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidInput       = errors.New("auth: invalid input")
)

// Provider is a local identity provider. Accounts live in a UserStore and
// the signed-in user's ID is remembered in the value store so a session
// survives restarts. Safe for concurrent use.
type Provider struct {
	users  model.UserStore
	values model.ValueStore
	log    *zap.Logger
	cost   int
	now    func() time.Time

	mu      sync.RWMutex
	current *model.User
}

// Option configures a Provider.
type Option func(*Provider)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(p *Provider) { p.cost = cost }
}

// WithClock overrides the time source used for account creation.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider creates a signed-out provider.
func NewProvider(users model.UserStore, values model.ValueStore, log *zap.Logger, opts ...Option) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Provider{
		users:  users,
		values: values,
		log:    log,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current returns a copy of the signed-in user, or nil.
func (p *Provider) Current() *model.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

func (p *Provider) setCurrent(u *model.User) *model.User {
	p.mu.Lock()
	p.current = u
	p.mu.Unlock()
	return p.Current()
}

// Restore signs in the user remembered by a previous session, if any.
// A session pointing at a deleted account is cleared.
func (p *Provider) Restore(ctx context.Context) (*model.User, error) {
	id, found, err := p.values.GetValue(ctx, model.KeySessionUser)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if !found || id == "" {
		return p.setCurrent(nil), nil
	}

	u, err := p.users.UserByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		p.log.Warn("auth: session refers to unknown user, clearing", zap.String("user_id", id))
		if err := p.values.DeleteValue(ctx, model.KeySessionUser); err != nil {
			return nil, fmt.Errorf("clearing session: %w", err)
		}
		return p.setCurrent(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session user: %w", err)
	}

	p.log.Info("auth: session restored", zap.String("user_id", u.ID))
	return p.setCurrent(&u), nil
}

// Register creates an account and signs it in.
func (p *Provider) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: p.now().UTC(),
	}
	if err := p.users.CreateUser(ctx, u, string(hash)); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	p.log.Info("auth: user registered", zap.String("user_id", u.ID))
	return p.startSession(ctx, u)
}

// Login verifies credentials and signs the user in.
func (p *Provider) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, hash, err := p.users.UserByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		p.log.Info("auth: rejected login", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}
	return p.startSession(ctx, u)
}

// Logout forgets the session and signs the user out.
func (p *Provider) Logout(ctx context.Context) error {
	if err := p.values.DeleteValue(ctx, model.KeySessionUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	p.setCurrent(nil)
	p.log.Info("auth: signed out")
	return nil
}

func (p *Provider) startSession(ctx context.Context, u model.User) (*model.User, error) {
	if err := p.values.SetValue(ctx, model.KeySessionUser, u.ID); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return p.setCurrent(&u), nil
}
