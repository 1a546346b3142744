package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/chirp/internal/domain"
	"github.com/dmarkovic/chirp/internal/media"
	"github.com/dmarkovic/chirp/internal/repository"
)

var (
	ErrPostNoContent = errors.New("post must have text or an image")
	ErrPostNotFound  = errors.New("post not found")
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	uploader media.Uploader
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, uploader media.Uploader) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

type CreatePostInput struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

func (s *PostService) Create(ctx context.Context, userID uuid.UUID, input CreatePostInput) (*domain.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Text == "" && input.Img == "" {
		return nil, ErrPostNoContent
	}

	post := &domain.Post{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      input.Text,
		CreatedAt: time.Now(),
	}

	if input.Img != "" {
		url, err := s.uploader.Upload(ctx, input.Img)
		if err != nil {
			return nil, err
		}
		post.Img = &url
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}
