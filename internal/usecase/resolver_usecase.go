package usecase

import (
	"context"
	"fmt"

	"tikify/internal/entity"
	"tikify/internal/hdcache"
	"tikify/internal/repo/persistent"
	"tikify/internal/tikwm"
	"tikify/pkg/logger"
)

// URLResolver follows a shared link to its content identifier.
type URLResolver interface {
	Resolve(ctx context.Context, rawURL string) (*entity.ResolvedLink, error)
}

type ResolverUseCase interface {
	Resolve(ctx context.Context, rawURL string) (*entity.ResolvedLink, error)
	SaveLink(ctx context.Context, contentID string) (*entity.SavedLink, error)
	ListSavedLinks() ([]*entity.SavedLink, error)
	ListCreatorLinks() ([]*entity.CreatorLink, error)
}

type resolverUseCase struct {
	resolver URLResolver
	linkRepo persistent.LinkRepository
	hdCache  hdcache.Cache
	logger   *logger.Logger
}

func NewResolverUseCase(
	resolver URLResolver,
	linkRepo persistent.LinkRepository,
	hdCache hdcache.Cache,
	logger *logger.Logger,
) ResolverUseCase {
	return &resolverUseCase{
		resolver: resolver,
		linkRepo: linkRepo,
		hdCache:  hdCache,
		logger:   logger,
	}
}

func (uc *resolverUseCase) Resolve(ctx context.Context, rawURL string) (*entity.ResolvedLink, error) {
	link, err := uc.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	uc.hdCache.Put(ctx, link.ContentID, link.HDPlayURL)
	return link, nil
}

// SaveLink pins a content ID into the creator-agnostic saved collection.
// Idempotent: pinning the same ID twice leaves a single entry.
func (uc *resolverUseCase) SaveLink(ctx context.Context, contentID string) (*entity.SavedLink, error) {
	link := &entity.SavedLink{
		ContentID: contentID,
		PlayURL:   tikwm.PlayURL(contentID),
		HDPlayURL: tikwm.HDPlayURL(contentID),
	}

	uc.hdCache.Put(ctx, contentID, link.HDPlayURL)

	if err := uc.linkRepo.SaveLink(link); err != nil {
		return nil, fmt.Errorf("failed to save link %s: %w", contentID, err)
	}
	return link, nil
}

func (uc *resolverUseCase) ListSavedLinks() ([]*entity.SavedLink, error) {
	return uc.linkRepo.ListSavedLinks()
}

func (uc *resolverUseCase) ListCreatorLinks() ([]*entity.CreatorLink, error) {
	return uc.linkRepo.ListCreatorLinks()
}
