package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

type ReviewRequest struct {
	Name          string
	Rating        int
	Message       string
	AcceptPrivacy bool
}

// ReviewService handles public reviews and their moderation. New reviews
// start pending and are only listed publicly once approved.
type ReviewService struct {
	Store    store.Store
	Notifier notify.Notifier
	Now      func() time.Time

	wg sync.WaitGroup
}

func (s *ReviewService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeReview(req ReviewRequest) (ReviewRequest, error) {
	req.Name = clean(req.Name)
	req.Message = clean(req.Message)

	if err := checkLen("name", req.Name, 2, 120); err != nil {
		return req, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return req, invalid("rating", "must be between 1 and 5")
	}
	if err := checkLen("message", req.Message, 10, 2000); err != nil {
		return req, err
	}
	if !req.AcceptPrivacy {
		return req, invalid("acceptPrivacy", "must be accepted")
	}
	return req, nil
}

// Submit stores a pending review. The staff notification is sent in the
// background; Wait blocks until outstanding notifications finish.
func (s *ReviewService) Submit(ctx context.Context, req ReviewRequest) (string, error) {
	req, err := normalizeReview(req)
	if err != nil {
		return "", err
	}

	now := s.now()
	r := domain.Review{
		ID:        idx.NewAt(now).String(),
		Name:      req.Name,
		Rating:    req.Rating,
		Message:   req.Message,
		Status:    domain.ReviewPending,
		CreatedAt: now,
	}
	if err := s.Store.Reviews().CreateReview(ctx, r); err != nil {
		slogx.FromContext(ctx).Error("failed to store review", slog.Any("error", err))
		return "", fmt.Errorf("store review: %w", err)
	}

	if s.Notifier != nil {
		msg := notify.Message{
			Subject: "Nueva reseña pendiente de aprobación",
			Text:    "Nombre: " + req.Name + "\nCalificación: " + strconv.Itoa(req.Rating) + "/5\n\n" + req.Message,
		}
		bg := context.WithoutCancel(ctx)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			bestEffort(bg, "review_email", s.Notifier.Notify(bg, msg))
		}()
	}

	slogx.FromContext(ctx).Info("review submitted", slog.String("review_id", r.ID), slog.Int("rating", r.Rating))
	return r.ID, nil
}

// Wait blocks until background notifications have finished.
func (s *ReviewService) Wait() { s.wg.Wait() }

// ListApproved returns approved reviews for the public site. Store errors
// yield an empty list.
func (s *ReviewService) ListApproved(ctx context.Context, limit int) []domain.Review {
	items, err := s.Store.Reviews().ListApprovedReviews(ctx, limit)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to list approved reviews", slog.Any("error", err))
		return []domain.Review{}
	}
	return items
}

// ListByStatus is the moderation queue.
func (s *ReviewService) ListByStatus(ctx context.Context, status domain.ReviewStatus, limit int) ([]domain.Review, error) {
	if !status.Valid() {
		return nil, invalid("status", "unknown status")
	}
	return s.Store.Reviews().ListReviewsByStatus(ctx, status, limit)
}

func (s *ReviewService) Approve(ctx context.Context, id string) error {
	now := s.now()
	return s.setStatus(ctx, id, domain.ReviewApproved, &now)
}

func (s *ReviewService) Reject(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.ReviewRejected, nil)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Store.Reviews().DeleteReview(ctx, id); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("review deleted", slog.String("review_id", id))
	return nil
}

func (s *ReviewService) setStatus(ctx context.Context, id string, status domain.ReviewStatus, approvedAt *time.Time) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Store.Reviews().SetReviewStatus(ctx, id, status, approvedAt); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("review moderated", slog.String("review_id", id), slog.String("status", string(status)))
	return nil
}

