package application

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

// SessionSecretKey names the secret holding the session cookie for serverURL.
func SessionSecretKey(serverURL string) string {
	host := strings.TrimSpace(serverURL)
	if parsed, err := url.Parse(host); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.NewReplacer(":", "_", "/", "_").Replace(strings.ToLower(host))
	return "artemis/" + host + "/session"
}

type AuthService struct {
	platform  ports.PlatformClient
	store     ports.SecretStore
	serverURL string
}

func NewAuthService(platform ports.PlatformClient, store ports.SecretStore, serverURL string) *AuthService {
	return &AuthService{platform: platform, store: store, serverURL: serverURL}
}

// Login authenticates and stores the session cookie. It returns the account
// the session belongs to.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Account, error) {
	if strings.TrimSpace(s.serverURL) == "" {
		return domain.Account{}, domain.ErrServerURLMissing
	}

	cookie, err := s.platform.Authenticate(ctx, username, password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("authenticate: %w", err)
	}
	if cookie == "" {
		return domain.Account{}, domain.ErrSessionTokenMissing
	}

	if err := s.store.Put(ctx, SessionSecretKey(s.serverURL), cookie); err != nil {
		return domain.Account{}, fmt.Errorf("store session: %w", err)
	}

	account, err := s.platform.Account(ctx)
	if err != nil {
		return domain.Account{Login: username}, nil
	}
	return account, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, SessionSecretKey(s.serverURL)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
