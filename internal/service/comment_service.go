package service

import (
	"context"

	"techblog/internal/models"
	"techblog/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) CreateComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		PostID:      req.PostID,
	}

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
