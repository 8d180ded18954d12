package persistent

import (
	"tikify/internal/entity"
	"tikify/internal/model"
)

func ToCreatorEntity(m *model.CreatorModel) *entity.Creator {
	if m == nil {
		return nil
	}
	return &entity.Creator{
		Username:  m.Username,
		Avatar:    m.Avatar,
		FetchedAt: m.FetchedAt,
	}
}

func ToCreatorModel(e *entity.Creator) *model.CreatorModel {
	if e == nil {
		return nil
	}
	return &model.CreatorModel{
		Username:  e.Username,
		Avatar:    e.Avatar,
		FetchedAt: e.FetchedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}
	return &entity.Post{
		ContentID: m.ContentID,
		Username:  m.Username,
		Caption:   m.Caption,
		Cover:     m.Cover,
		PlayURL:   m.PlayURL,
		PlayCount: m.PlayCount,
		Images:    []string(m.Images),
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}
	return &model.PostModel{
		ContentID: e.ContentID,
		Username:  e.Username,
		Caption:   e.Caption,
		Cover:     e.Cover,
		PlayURL:   e.PlayURL,
		PlayCount: e.PlayCount,
		Images:    e.Images,
	}
}

func ToSavedLinkEntity(m *model.SavedLinkModel) *entity.SavedLink {
	if m == nil {
		return nil
	}
	return &entity.SavedLink{
		ID:        m.ID,
		ContentID: m.ContentID,
		PlayURL:   m.PlayURL,
		HDPlayURL: m.HDPlayURL,
		CreatedAt: m.CreatedAt,
	}
}

func ToSavedLinkModel(e *entity.SavedLink) *model.SavedLinkModel {
	if e == nil {
		return nil
	}
	return &model.SavedLinkModel{
		ID:        e.ID,
		ContentID: e.ContentID,
		PlayURL:   e.PlayURL,
		HDPlayURL: e.HDPlayURL,
		CreatedAt: e.CreatedAt,
	}
}

func ToCreatorLinkEntity(m *model.CreatorLinkModel) *entity.CreatorLink {
	if m == nil {
		return nil
	}
	return &entity.CreatorLink{
		ID:        m.ID,
		Username:  m.Username,
		ContentID: m.ContentID,
		PlayURL:   m.PlayURL,
		HDPlayURL: m.HDPlayURL,
		Images:    []string(m.Images),
		CreatedAt: m.CreatedAt,
	}
}

func ToCreatorLinkModel(e *entity.CreatorLink) *model.CreatorLinkModel {
	if e == nil {
		return nil
	}
	return &model.CreatorLinkModel{
		ID:        e.ID,
		Username:  e.Username,
		ContentID: e.ContentID,
		PlayURL:   e.PlayURL,
		HDPlayURL: e.HDPlayURL,
		Images:    e.Images,
		CreatedAt: e.CreatedAt,
	}
}

func ToAccountEntity(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}
	return &entity.Account{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
