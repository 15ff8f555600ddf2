package service

import (
	"fmt"
	"strings"

	"blogd/database"
	"blogd/database/model"
	"blogd/web/policy"

	"gorm.io/gorm"
)

// PostService implements post CRUD and nested comment management. Policy
// decisions come first; the database is only written after an allow.
type PostService struct {
	DB *gorm.DB
}

func NewPostService() *PostService {
	return &PostService{DB: database.GetDB()}
}

// ListPosts returns every post with its comments in insertion order. Reads
// require no authentication.
func (s *PostService) ListPosts() ([]model.Post, error) {
	var posts []model.Post
	err := s.DB.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&posts).Error
	return posts, err
}

func (s *PostService) GetPost(id int) (*model.Post, error) {
	var post model.Post
	err := s.DB.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&post, id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post authored by actor. Admins and authors only.
func (s *PostService) CreatePost(actor policy.Actor, title, content string) (*model.Post, error) {
	if !policy.CanCreatePost(actor) {
		return nil, fmt.Errorf("%w: role %s cannot create posts", ErrForbidden, actor.Role)
	}
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content required", ErrValidation)
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorId: actor.Id,
		Comments: []model.Comment{},
	}
	if err := s.DB.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost changes title and content. The author reference is immutable.
func (s *PostService) UpdatePost(actor policy.Actor, id int, title, content string) (*model.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyPost(actor, post) {
		return nil, fmt.Errorf("%w: not the author of post %d", ErrForbidden, id)
	}
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content required", ErrValidation)
	}

	post.Title = title
	post.Content = content
	if err := s.DB.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(actor policy.Actor, id int) error {
	post, err := s.GetPost(id)
	if err != nil {
		return err
	}
	if !policy.CanModifyPost(actor, post) {
		return fmt.Errorf("%w: not the author of post %d", ErrForbidden, id)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

// AddComment appends a comment to a post. Any authenticated actor may.
func (s *PostService) AddComment(actor policy.Actor, postId int, body string) (*model.Comment, error) {
	if !policy.CanComment(actor) {
		return nil, fmt.Errorf("%w: unknown role %s", ErrForbidden, actor.Role)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment body required", ErrValidation)
	}
	post, err := s.GetPost(postId)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostId:   post.Id,
		AuthorId: actor.Id,
		Body:     body,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment from its owning post. Allowed for the
// comment's author, the post's author and any admin.
func (s *PostService) DeleteComment(actor policy.Actor, postId, commentId int) error {
	post, err := s.GetPost(postId)
	if err != nil {
		return err
	}

	var comment model.Comment
	if err := s.DB.Where("post_id = ?", postId).First(&comment, commentId).Error; err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("%w: comment %d on post %d", ErrNotFound, commentId, postId)
		}
		return err
	}

	if !policy.CanDeleteComment(actor, post, &comment) {
		return fmt.Errorf("%w: cannot delete comment %d", ErrForbidden, commentId)
	}

	return s.DB.Delete(&model.Comment{}, comment.Id).Error
}
