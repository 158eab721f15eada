package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/identity"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
	"github.com/blazern/recipe-calculator-server-sub000/internal/repository"
)

var ErrProviderTokenRejected = errors.New("identity provider rejected the supplied token")

// UserService registers devices and issues the client tokens they present
// on every subsequent request.
type UserService struct {
	repos    *repository.RepositoryContainer
	verifier identity.ProviderVerifier
	issuer   *identity.ClientTokenIssuer
	logger   *logger.Logger
}

func NewUserService(
	repos *repository.RepositoryContainer,
	verifier identity.ProviderVerifier,
	issuer *identity.ClientTokenIssuer,
	log *logger.Logger,
) *UserService {
	if log == nil {
		log = logger.NewNop()
	}
	return &UserService{repos: repos, verifier: verifier, issuer: issuer, logger: log.Named("user_service")}
}

// Register verifies a device's identity-provider token and either creates a
// fresh AppUser or rotates the client token of an existing one.
func (s *UserService) Register(ctx context.Context, providerToken, name string) (*domain.AppUser, error) {
	externalUID, err := s.verifier.Verify(ctx, providerToken)
	if err != nil {
		s.logger.WithContext(ctx).Warn("provider token rejected", zap.Error(err))
		return nil, ErrProviderTokenRejected
	}

	existing, err := s.repos.Users.GetByExternalUID(ctx, externalUID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("look up existing user: %w", err)
	}

	if existing != nil {
		token, err := s.issuer.Issue(existing.ID, existing.ExternalUID)
		if err != nil {
			return nil, fmt.Errorf("issue client token: %w", err)
		}
		if err := s.repos.Users.UpdateClientToken(ctx, existing.ID, token); err != nil {
			return nil, fmt.Errorf("rotate client token: %w", err)
		}
		existing.ClientToken = token
		return existing, nil
	}

	user := domain.NewAppUser(externalUID, name, "")
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.ExternalUID)
	if err != nil {
		return nil, fmt.Errorf("issue client token: %w", err)
	}
	if err := s.repos.Users.UpdateClientToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("persist client token: %w", err)
	}
	user.ClientToken = token

	s.logger.WithContext(ctx).Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.Time("created_at", user.CreatedAt))

	return user, nil
}

// Authenticate verifies a client token and returns the user it belongs to.
func (s *UserService) Authenticate(ctx context.Context, clientToken string) (*domain.AppUser, error) {
	claims, err := s.issuer.Verify(clientToken)
	if err != nil {
		return nil, err
	}
	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.ClientToken != clientToken {
		return nil, identity.ErrTokenInvalid
	}
	return user, nil
}
