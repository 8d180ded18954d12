package persistent

import (
	"tikify/internal/entity"
	"tikify/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepository interface {
	SaveLink(link *entity.SavedLink) error
	ListSavedLinks() ([]*entity.SavedLink, error)
	AppendCreatorLinks(links []*entity.CreatorLink) error
	ListCreatorLinks() ([]*entity.CreatorLink, error)
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// SaveLink pins a content ID. Idempotent: a second save of the same ID is a
// no-op, enforced by the unique index rather than a read-then-write.
func (r *linkRepository) SaveLink(link *entity.SavedLink) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoNothing: true,
	}).Create(ToSavedLinkModel(link)).Error
}

func (r *linkRepository) ListSavedLinks() ([]*entity.SavedLink, error) {
	var linkModels []model.SavedLinkModel
	if err := r.db.Order("created_at DESC").Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]*entity.SavedLink, len(linkModels))
	for i := range linkModels {
		links[i] = ToSavedLinkEntity(&linkModels[i])
	}
	return links, nil
}

// AppendCreatorLinks persists one batch run's accumulated entries in a
// single transaction. The (username, content_id) unique index backstops the
// in-memory dedup against writers racing the same pair.
func (r *linkRepository) AppendCreatorLinks(links []*entity.CreatorLink) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, link := range links {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "username"}, {Name: "content_id"}},
				DoNothing: true,
			}).Create(ToCreatorLinkModel(link)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *linkRepository) ListCreatorLinks() ([]*entity.CreatorLink, error) {
	var linkModels []model.CreatorLinkModel
	if err := r.db.Order("created_at DESC").Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]*entity.CreatorLink, len(linkModels))
	for i := range linkModels {
		links[i] = ToCreatorLinkEntity(&linkModels[i])
	}
	return links, nil
}
