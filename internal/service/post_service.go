package service

import (
	"context"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// PostService implements CRUD over posts behind the authorization gate.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields of a create request. The author is
// always the verified identity, never a client-supplied field.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput carries the fields of an update request. Title and content
// replace the stored values wholesale; an omitted content becomes empty.
type UpdatePostInput struct {
	Title   string
	Content string
}

// NewPostService returns a PostService using the given repository.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns posts visible to the identity, in creation order.
// Anonymous callers and users see everything; admins see only their own.
func (s *PostService) ListPosts(ctx context.Context, identity auth.Identity) ([]*models.Post, error) {
	scope := auth.ReadScope(identity)
	return s.postRepo.List(ctx, scope.AuthorID)
}

// GetPost fetches a single post by id. Public by design: no identity required.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost creates a post owned by the identity.
func (s *PostService) CreatePost(ctx context.Context, identity auth.Identity, in CreatePostInput) (*models.Post, error) {
	if err := auth.CanWrite(identity, auth.ActionCreate); err != nil {
		observability.PostOperations.WithLabelValues("create", "denied").Inc()
		return nil, err
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: identity.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		observability.PostOperations.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	observability.PostOperations.WithLabelValues("create", "success").Inc()
	// Reload so the response carries the author association.
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost replaces a post's title and content. Any admin may update any
// post; missing targets yield NotFound regardless of caller role.
func (s *PostService) UpdatePost(ctx context.Context, identity auth.Identity, id uint, in UpdatePostInput) (*models.Post, error) {
	if err := auth.CanWrite(identity, auth.ActionUpdate); err != nil {
		observability.PostOperations.WithLabelValues("update", "denied").Inc()
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		observability.PostOperations.WithLabelValues("update", "error").Inc()
		return nil, err
	}

	observability.PostOperations.WithLabelValues("update", "success").Inc()
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post. Not idempotent: deleting an already-deleted id
// returns NotFound.
func (s *PostService) DeletePost(ctx context.Context, identity auth.Identity, id uint) error {
	if err := auth.CanWrite(identity, auth.ActionDelete); err != nil {
		observability.PostOperations.WithLabelValues("delete", "denied").Inc()
		return err
	}

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		observability.PostOperations.WithLabelValues("delete", "error").Inc()
		return err
	}

	observability.PostOperations.WithLabelValues("delete", "success").Inc()
	return nil
}
