package persistent

import (
	"inkwell/internal/entity"
	"inkwell/internal/model"
)

func ToAccountEntity(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:               m.ID,
		Email:            m.Email,
		Phone:            m.Phone,
		Username:         m.Username,
		PasswordHash:     m.PasswordHash,
		Role:             entity.Role(m.Role),
		Status:           entity.AccountStatus(m.Status),
		AvatarURL:        m.AvatarURL,
		VerifyCode:       m.VerifyCode,
		VerifyCodeExpiry: m.VerifyCodeExpiry,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToAccountModel(e *entity.Account) *model.AccountModel {
	if e == nil {
		return nil
	}

	return &model.AccountModel{
		ID:               e.ID,
		Email:            e.Email,
		Phone:            e.Phone,
		Username:         e.Username,
		PasswordHash:     e.PasswordHash,
		Role:             string(e.Role),
		Status:           string(e.Status),
		AvatarURL:        e.AvatarURL,
		VerifyCode:       e.VerifyCode,
		VerifyCodeExpiry: e.VerifyCodeExpiry,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Excerpt:     m.Excerpt,
		Body:        m.Body,
		Tags:        m.Tags,
		Category:    entity.PostCategory(m.Category),
		AuthorID:    m.AuthorID,
		Status:      entity.PostStatus(m.Status),
		IsPublished: m.IsPublished,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		Slug:        e.Slug,
		Title:       e.Title,
		Excerpt:     e.Excerpt,
		Body:        e.Body,
		Tags:        e.Tags,
		Category:    string(e.Category),
		AuthorID:    e.AuthorID,
		Status:      string(e.Status),
		IsPublished: e.IsPublished,
		PublishedAt: e.PublishedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		ParentID:  m.ParentID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		PostID:    e.PostID,
		AuthorID:  e.AuthorID,
		ParentID:  e.ParentID,
		Body:      e.Body,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToNewsletterEntity(m *model.NewsletterSubscriptionModel) *entity.NewsletterSubscription {
	if m == nil {
		return nil
	}

	return &entity.NewsletterSubscription{
		ID:        m.ID,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
