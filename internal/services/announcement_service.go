package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bersih-backend/internal/models"
)

// AnnouncementStore is satisfied by *repositories.AnnouncementRepository.
type AnnouncementStore interface {
	Create(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context) ([]*models.Announcement, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AnnouncementService manages the public information feed.
type AnnouncementService struct {
	announcements AnnouncementStore
}

func NewAnnouncementService(announcements AnnouncementStore) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

func (s *AnnouncementService) Create(ctx context.Context, session models.Session, req *models.CreateAnnouncementRequest) (*models.Announcement, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: title and body are required", ErrValidation)
	}
	a := &models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Body:      strings.TrimSpace(req.Body),
		CreatedBy: session.UserID,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Printf("[AnnouncementService] Admin %s published announcement %d", session.UserID, a.ID)
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context) ([]*models.Announcement, error) {
	return s.announcements.List(ctx)
}

func (s *AnnouncementService) Delete(ctx context.Context, session models.Session, id int64) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}
	found, err := s.announcements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
