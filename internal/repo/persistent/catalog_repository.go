package persistent

import (
	"errors"

	"tikify/internal/entity"
	"tikify/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	ReplaceCatalog(creator *entity.Creator, posts []*entity.Post) error
	TouchCreators(creators []*entity.Creator) error
	ListCreators() ([]*entity.Creator, error)
	GetCreatorPosts(username string) ([]*entity.Post, error)
	FindByContentID(contentID string) (*entity.Post, error)
	IncrementPlayCount(contentID string) (int, error)
	LatestPerCreator() ([]*entity.Post, error)
	TopPerCreator() ([]*entity.Post, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// ReplaceCatalog swaps out a creator's entire post list in one transaction:
// upsert the creator row (fetched_at advances even on an empty fetch), drop
// the old posts, insert the new set in fetch order. Replace-not-merge: old
// play counts do not survive a re-ingest.
func (r *catalogRepository) ReplaceCatalog(creator *entity.Creator, posts []*entity.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		creatorModel := ToCreatorModel(creator)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"fetched_at"}),
		}).Create(creatorModel).Error; err != nil {
			return err
		}

		if err := tx.Where("username = ?", creator.Username).Delete(&model.PostModel{}).Error; err != nil {
			return err
		}

		for _, post := range posts {
			if err := tx.Create(ToPostModel(post)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// TouchCreators upserts the accumulated creator rows of one batch run in a
// single transaction. Existing avatars are kept; only fetched_at moves.
func (r *catalogRepository) TouchCreators(creators []*entity.Creator) error {
	if len(creators) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, creator := range creators {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "username"}},
				DoUpdates: clause.AssignmentColumns([]string{"fetched_at"}),
			}).Create(ToCreatorModel(creator)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *catalogRepository) ListCreators() ([]*entity.Creator, error) {
	var creatorModels []model.CreatorModel
	if err := r.db.Order("username ASC").Find(&creatorModels).Error; err != nil {
		return nil, err
	}

	creators := make([]*entity.Creator, len(creatorModels))
	for i := range creatorModels {
		creators[i] = ToCreatorEntity(&creatorModels[i])
	}
	return creators, nil
}

// GetCreatorPosts returns the stored catalog, most recently appended first.
func (r *catalogRepository) GetCreatorPosts(username string) ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := r.db.Where("username = ?", username).Order("seq DESC").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *catalogRepository) FindByContentID(contentID string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("content_id = ?", contentID).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// IncrementPlayCount bumps the counter with a single SQL expression so that
// concurrent increments on the same content ID cannot lose updates.
func (r *catalogRepository) IncrementPlayCount(contentID string) (int, error) {
	var newCount int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PostModel{}).
			Where("content_id = ?", contentID).
			UpdateColumn("play_count", clause.Expr{SQL: "play_count + ?", Vars: []interface{}{1}})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}

		var postModel model.PostModel
		if err := tx.Select("play_count").Where("content_id = ?", contentID).First(&postModel).Error; err != nil {
			return err
		}
		newCount = postModel.PlayCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

// LatestPerCreator returns the most recently appended post of every creator
// that has at least one post.
func (r *catalogRepository) LatestPerCreator() ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.
		Joins("INNER JOIN (SELECT username, MAX(seq) AS max_seq FROM posts GROUP BY username) latest ON posts.seq = latest.max_seq").
		Order("posts.username ASC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// TopPerCreator returns one post per creator: the highest play count, ties
// broken by the lowest seq (first in storage order). Ranking and limiting
// happen in the usecase layer.
func (r *catalogRepository) TopPerCreator() ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.
		Raw("SELECT DISTINCT ON (username) * FROM posts ORDER BY username, play_count DESC, seq ASC").
		Scan(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}
