// Package complaint stores user complaints and administrator responses.
package complaint

import (
	"context"
	"errors"
	"strings"
	"time"

	"smarthub/database"
	complaintRepo "smarthub/database/repository/complaint"
	providerRepo "smarthub/database/repository/provider"
	"smarthub/models"
	"smarthub/services/apperr"

	"go.uber.org/zap"
)

type ComplaintService interface {
	Create(ctx context.Context, actor models.Actor, req models.ComplaintRequest) (*models.Complaint, error)
	ListAll(ctx context.Context) ([]models.Complaint, error)
	// Respond stores the administrator's answer and resolves the complaint.
	Respond(ctx context.Context, complaintID int64, response string) (*models.Complaint, error)
}

type DefaultComplaintService struct {
	Complaints complaintRepo.ComplaintRepository
	Providers  providerRepo.ProviderRepository
	Logger     *zap.Logger
	Now        func() time.Time
}

func (s *DefaultComplaintService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultComplaintService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *DefaultComplaintService) Create(ctx context.Context, actor models.Actor, req models.ComplaintRequest) (*models.Complaint, error) {
	if actor.Role != models.RoleUser {
		return nil, apperr.Forbidden("only users can file complaints")
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, apperr.Validation("message is required")
	}
	if req.ProviderID != nil {
		_, err := s.Providers.GetByID(ctx, *req.ProviderID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("provider %d not found", *req.ProviderID)
		}
		if err != nil {
			return nil, apperr.Transport(err, "failed to load provider")
		}
	}

	now := s.now()
	c := &models.Complaint{
		UserID:     actor.ID,
		ProviderID: req.ProviderID,
		Message:    msg,
		Status:     models.ComplaintOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Complaints.Create(ctx, c); err != nil {
		return nil, apperr.Transport(err, "failed to store complaint")
	}
	s.logger().Info("Complaint filed", zap.Int64("complaintId", c.ID), zap.Int64("userId", c.UserID))
	return c, nil
}

func (s *DefaultComplaintService) ListAll(ctx context.Context) ([]models.Complaint, error) {
	complaints, err := s.Complaints.ListAll(ctx)
	if err != nil {
		return nil, apperr.Transport(err, "failed to load complaints")
	}
	return complaints, nil
}

func (s *DefaultComplaintService) Respond(ctx context.Context, complaintID int64, response string) (*models.Complaint, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, apperr.Validation("response is required")
	}
	c, err := s.Complaints.Resolve(ctx, complaintID, response, s.now())
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("complaint %d not found", complaintID)
	}
	if err != nil {
		return nil, apperr.Transport(err, "failed to resolve complaint")
	}
	s.logger().Info("Complaint resolved", zap.Int64("complaintId", c.ID))
	return c, nil
}
