package auth

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/auth"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/metrics"
	"github.com/jwalitptl/bizmanager-api/pkg/security"
	"github.com/jwalitptl/bizmanager-api/pkg/session"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	User      *model.User
	Account   *model.Account
	SessionID string
}

type AuthServicer interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.UserSummary, error)
	// Login opens a session and returns the summary carrying its token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.UserSummary, *session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a session token to its live principal.
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

type Service struct {
	users     repository.UserRepository
	accounts  repository.AccountRepository
	sessions  session.Store
	tokens    auth.TokenService
	hasher    security.PasswordHasher
	validator *validator.Validator
	metrics   *metrics.Metrics
	// dummyHash is compared against when the username is unknown so both
	// rejections cost one hash comparison.
	dummyHash string
}

const dummyPassword = "bizmanager-no-such-user"

func NewService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions session.Store,
	tokens auth.TokenService,
	hasher security.PasswordHasher,
	v *validator.Validator,
	m *metrics.Metrics,
) *Service {
	s := &Service{
		users:     users,
		accounts:  accounts,
		sessions:  sessions,
		tokens:    tokens,
		hasher:    hasher,
		validator: v,
		metrics:   m,
	}
	hash, err := hasher.Hash(dummyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prepare login timing hash")
	}
	s.dummyHash = hash
	return s
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserSummary, error) {
	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Struct(req))

	if _, invalid := errs["username"]; !invalid {
		exists, err := s.users.UsernameExists(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			errs.Add("username", model.MsgUsernameTaken)
		}
	}
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.CreateWithAccount(ctx, user, &model.Account{}); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User registered")
	return user.Summary(), nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.UserSummary, *session.Session, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return nil, nil, errors.Validation(errs)
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		if s.dummyHash != "" {
			_ = s.hasher.Compare(s.dummyHash, req.Password)
		}
		return nil, nil, s.rejectLogin(req.Username, model.ErrInvalidCredentials)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if stderrors.Is(err, security.ErrMismatch) {
			return nil, nil, s.rejectLogin(req.Username, model.ErrInvalidCredentials)
		}
		return nil, nil, errors.Internal(fmt.Errorf("failed to verify password: %w", err))
	}
	if !user.IsActive {
		return nil, nil, s.rejectLogin(req.Username, fmt.Errorf("%w: user inactive", model.ErrInvalidCredentials))
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, errors.Internal(fmt.Errorf("failed to create session: %w", err))
	}

	token, err := s.tokens.Issue(sess.ID, user.ID, sess.ExpiresAt)
	if err != nil {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, nil, errors.Internal(err)
	}

	s.metrics.SessionCreated()
	log.Info().Str("user_id", user.ID.String()).Msg("User logged in")

	summary := user.Summary()
	summary.Token = token
	return summary, sess, nil
}

func (s *Service) rejectLogin(username string, cause error) error {
	s.metrics.LoginFailed()
	log.Warn().Str("username", username).Err(cause).Msg("Login rejected")
	return &errors.AppError{
		Code:    errors.ErrValidation,
		Message: model.MsgInvalidCredentials,
		Fields:  errors.FieldErrors{errors.NonFieldErrorKey: {model.MsgInvalidCredentials}},
		Err:     cause,
	}
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return errors.Internal(fmt.Errorf("failed to delete session: %w", err))
	}
	s.metrics.SessionRevoked()
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, errors.Unauthorized(err)
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if stderrors.Is(err, session.ErrNotFound) {
			return nil, errors.Unauthorized(err)
		}
		return nil, errors.Internal(fmt.Errorf("failed to load session: %w", err))
	}
	if sess.UserID != userID {
		return nil, errors.Unauthorized(fmt.Errorf("session %s belongs to another user", sess.ID))
	}

	return s.principal(ctx, userID, sess.ID)
}

func (s *Service) principal(ctx context.Context, userID uuid.UUID, sessionID string) (*Principal, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Unauthorized(err)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, errors.Unauthorized(fmt.Errorf("user %s is inactive", user.ID))
	}

	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Unauthorized(err)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return &Principal{User: user, Account: account, SessionID: sessionID}, nil
}
