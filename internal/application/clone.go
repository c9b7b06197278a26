package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

type CloneRequest struct {
	ParticipationID domain.ParticipationID
	RepositoryURI   string
	ExerciseID      domain.ExerciseID
	ExerciseTitle   string
	Directory       string
}

type CloneService struct {
	platform ports.PlatformClient
	sessions ports.SessionProvider
	terminal ports.Terminal
	notices  ports.CloneNoticeRepository
	clock    ports.Clock
	logger   *zap.Logger

	mu     sync.Mutex
	cloned *domain.ClonedRepos
}

func NewCloneService(platform ports.PlatformClient, sessions ports.SessionProvider, terminal ports.Terminal, notices ports.CloneNoticeRepository, clock ports.Clock, logger *zap.Logger) *CloneService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CloneService{
		platform: platform,
		sessions: sessions,
		terminal: terminal,
		notices:  notices,
		clock:    clock,
		logger:   logger.Named("clone"),
		cloned:   domain.NewClonedRepos(),
	}
}

// Clone hands a credentialed `git clone` to the terminal and remembers the
// destination for the "open it" shortcut.
func (s *CloneService) Clone(ctx context.Context, req CloneRequest) (domain.ClonedRepo, error) {
	if strings.TrimSpace(req.RepositoryURI) == "" {
		return domain.ClonedRepo{}, fmt.Errorf("clone exercise %d: repository uri is empty", req.ExerciseID)
	}

	token, err := s.accessToken(ctx, req.ParticipationID)
	if err != nil {
		return domain.ClonedRepo{}, err
	}

	username, err := s.username(ctx)
	if err != nil {
		return domain.ClonedRepo{}, err
	}

	cloneURL, err := domain.CredentialedCloneURL(req.RepositoryURI, username, token)
	if err != nil {
		return domain.ClonedRepo{}, fmt.Errorf("build clone url: %w", err)
	}

	directory := req.Directory
	if directory == "" {
		directory = "."
	}
	directory, err = filepath.Abs(directory)
	if err != nil {
		return domain.ClonedRepo{}, fmt.Errorf("resolve clone directory: %w", err)
	}
	destination := filepath.Join(directory, domain.RepositoryDirName(req.RepositoryURI))

	s.logger.Info("cloning repository",
		zap.String("repository", domain.RedactURL(cloneURL)),
		zap.String("destination", destination),
	)
	if err := s.terminal.Run(ctx, directory, "git", "clone", cloneURL); err != nil {
		return domain.ClonedRepo{}, fmt.Errorf("run git clone: %w", err)
	}

	repo := domain.ClonedRepo{ExerciseID: req.ExerciseID, Path: destination, Title: req.ExerciseTitle}
	s.mu.Lock()
	s.cloned.Record(repo)
	s.mu.Unlock()

	if s.notices != nil {
		notice := domain.CloneNotice{ExerciseID: req.ExerciseID, Timestamp: s.clock.Now(), Title: req.ExerciseTitle}
		if err := s.notices.PutCloneNotice(ctx, notice); err != nil {
			s.logger.Warn("persist clone notice", zap.Error(err))
		}
	}

	return repo, nil
}

func (s *CloneService) accessToken(ctx context.Context, participationID domain.ParticipationID) (string, error) {
	token, err := s.platform.VCSAccessToken(ctx, participationID)
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return "", fmt.Errorf("get vcs access token: %w", err)
	}

	token, err = s.platform.CreateVCSAccessToken(ctx, participationID)
	if err != nil {
		return "", fmt.Errorf("create vcs access token: %w", err)
	}
	return token, nil
}

func (s *CloneService) username(ctx context.Context) (string, error) {
	if s.sessions != nil {
		session, err := s.sessions.SessionToken(ctx)
		if err == nil && session.Username != "" {
			return session.Username, nil
		}
	}

	account, err := s.platform.Account(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve username: %w", err)
	}
	if account.Login == "" {
		return "", fmt.Errorf("resolve username: %w", domain.ErrNotAuthenticated)
	}
	return account.Login, nil
}

// Cloned returns the clone recorded for id during this process.
func (s *CloneService) Cloned(id domain.ExerciseID) (domain.ClonedRepo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cloned.Get(id)
}

// PendingNotice returns a still relevant clone notice for id and consumes it.
func (s *CloneService) PendingNotice(ctx context.Context, id domain.ExerciseID) (domain.CloneNotice, bool, error) {
	if s.notices == nil {
		return domain.CloneNotice{}, false, nil
	}

	notice, ok, err := s.notices.GetCloneNotice(ctx, id)
	if err != nil {
		return domain.CloneNotice{}, false, fmt.Errorf("get clone notice: %w", err)
	}
	if !ok {
		return domain.CloneNotice{}, false, nil
	}

	if err := s.notices.DeleteCloneNotice(ctx, id); err != nil {
		return domain.CloneNotice{}, false, fmt.Errorf("delete clone notice: %w", err)
	}

	return notice, notice.IsRelevant(s.clock.Now()), nil
}
