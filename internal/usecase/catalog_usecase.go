package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tikify/internal/entity"
	"tikify/internal/hdcache"
	"tikify/internal/repo/persistent"
	"tikify/internal/tikwm"
	"tikify/pkg/logger"
	"tikify/pkg/queue"
)

// DefaultTopLimit is the ranking cutoff when the caller does not supply one.
const DefaultTopLimit = 20

// Fetcher drives the upstream paginated listing for one creator.
// maxItems <= 0 means unbounded.
type Fetcher interface {
	FetchUserPosts(ctx context.Context, username string, pageSize, maxItems int) []tikwm.RawVideo
}

type CatalogUseCase interface {
	Ingest(ctx context.Context, username string) ([]*entity.Post, error)
	IngestBatch(ctx context.Context, usernames []string) error
	LatestPerCreator() ([]*entity.Post, error)
	TopPosts(limit int) ([]*entity.Post, error)
	IncrementPlayCount(contentID string) (int, error)
	GetPost(contentID string) (*entity.Post, error)
	ListCreators() ([]*entity.Creator, error)
}

type catalogUseCase struct {
	catalogRepo   persistent.CatalogRepository
	linkRepo      persistent.LinkRepository
	fetcher       Fetcher
	hdCache       hdcache.Cache
	queueClient   *queue.Client
	logger        *logger.Logger
	pageSize      int
	maxItems      int
	defaultAvatar string
}

func NewCatalogUseCase(
	catalogRepo persistent.CatalogRepository,
	linkRepo persistent.LinkRepository,
	fetcher Fetcher,
	hdCache hdcache.Cache,
	queueClient *queue.Client,
	logger *logger.Logger,
	pageSize, maxItems int,
	defaultAvatar string,
) CatalogUseCase {
	return &catalogUseCase{
		catalogRepo:   catalogRepo,
		linkRepo:      linkRepo,
		fetcher:       fetcher,
		hdCache:       hdCache,
		queueClient:   queueClient,
		logger:        logger,
		pageSize:      pageSize,
		maxItems:      maxItems,
		defaultAvatar: defaultAvatar,
	}
}

// Ingest re-fetches one creator's posts and atomically replaces their
// catalog. fetched_at advances even when the fetch comes back empty, and a
// failed upstream page just shortens the result.
func (uc *catalogUseCase) Ingest(ctx context.Context, username string) ([]*entity.Post, error) {
	creator := &entity.Creator{
		Username:  username,
		Avatar:    uc.defaultAvatar,
		FetchedAt: time.Now().UTC(),
	}

	raws := uc.fetcher.FetchUserPosts(ctx, username, uc.pageSize, uc.maxItems)

	posts := make([]*entity.Post, 0, len(raws))
	for _, raw := range raws {
		post := tikwm.Normalize(username, raw)
		uc.hdCache.Put(ctx, post.ContentID, tikwm.HDPlayURL(post.ContentID))
		posts = append(posts, post)
	}

	if err := uc.catalogRepo.ReplaceCatalog(creator, posts); err != nil {
		return nil, fmt.Errorf("failed to replace catalog for %s: %w", username, err)
	}

	uc.logger.Info("ingested %d posts for creator %s", len(posts), username)

	if uc.queueClient != nil {
		go uc.publishIngestEvent([]string{username}, len(posts), false)
	}

	return posts, nil
}

type linkKey struct {
	username  string
	contentID string
}

// IngestBatch runs the unbounded fetch for several creators and appends the
// results to the curated creator-link collection. Entries are deduped by
// (creator, content ID) against both the stored collection and earlier
// usernames of the same call, accumulated in memory, and persisted once at
// the end. A single username routes through the normal ingestion path.
func (uc *catalogUseCase) IngestBatch(ctx context.Context, usernames []string) error {
	if len(usernames) == 0 {
		return nil
	}
	if len(usernames) == 1 {
		_, err := uc.Ingest(ctx, usernames[0])
		return err
	}

	existing, err := uc.linkRepo.ListCreatorLinks()
	if err != nil {
		return fmt.Errorf("failed to load creator links: %w", err)
	}
	seen := make(map[linkKey]bool, len(existing))
	for _, link := range existing {
		seen[linkKey{link.Username, link.ContentID}] = true
	}

	var creators []*entity.Creator
	var links []*entity.CreatorLink

	for _, username := range usernames {
		creators = append(creators, &entity.Creator{
			Username:  username,
			Avatar:    uc.defaultAvatar,
			FetchedAt: time.Now().UTC(),
		})

		raws := uc.fetcher.FetchUserPosts(ctx, username, uc.pageSize, 0)
		for _, raw := range raws {
			post := tikwm.Normalize(username, raw)
			uc.hdCache.Put(ctx, post.ContentID, tikwm.HDPlayURL(post.ContentID))

			key := linkKey{username, post.ContentID}
			if seen[key] {
				continue
			}
			seen[key] = true

			links = append(links, &entity.CreatorLink{
				Username:  username,
				ContentID: post.ContentID,
				PlayURL:   post.PlayURL,
				HDPlayURL: tikwm.HDPlayURL(post.ContentID),
				Images:    post.Images,
			})
		}
	}

	if err := uc.catalogRepo.TouchCreators(creators); err != nil {
		return fmt.Errorf("failed to persist creators: %w", err)
	}
	if err := uc.linkRepo.AppendCreatorLinks(links); err != nil {
		return fmt.Errorf("failed to append creator links: %w", err)
	}

	uc.logger.Info("batch ingested %d creators, %d new links", len(usernames), len(links))

	if uc.queueClient != nil {
		go uc.publishIngestEvent(usernames, len(links), true)
	}

	return nil
}

func (uc *catalogUseCase) LatestPerCreator() ([]*entity.Post, error) {
	return uc.catalogRepo.LatestPerCreator()
}

// TopPosts ranks the per-creator play count maxima globally, descending,
// truncated to limit. A limit of zero yields an empty result.
func (uc *catalogUseCase) TopPosts(limit int) ([]*entity.Post, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", limit)
	}
	if limit == 0 {
		return []*entity.Post{}, nil
	}

	posts, err := uc.catalogRepo.TopPerCreator()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PlayCount > posts[j].PlayCount
	})

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (uc *catalogUseCase) IncrementPlayCount(contentID string) (int, error) {
	return uc.catalogRepo.IncrementPlayCount(contentID)
}

func (uc *catalogUseCase) GetPost(contentID string) (*entity.Post, error) {
	return uc.catalogRepo.FindByContentID(contentID)
}

func (uc *catalogUseCase) ListCreators() ([]*entity.Creator, error) {
	return uc.catalogRepo.ListCreators()
}

func (uc *catalogUseCase) publishIngestEvent(usernames []string, count int, batch bool) {
	event := map[string]interface{}{
		"type":      "ingest_completed",
		"usernames": usernames,
		"count":     count,
		"batch":     batch,
	}

	if err := uc.queueClient.PublishIngestEvent(event); err != nil {
		uc.logger.Error("failed to publish ingest event: %v", err)
	}
}
