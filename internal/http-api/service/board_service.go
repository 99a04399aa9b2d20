package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/policy"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type BoardService interface {
	Create(requesterID string, req dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetByID(boardID int64) (*dto.BoardResponse, error)
	Update(boardID int64, requesterID string, req dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	Delete(boardID int64, requesterID string) error
	List(filters map[string]string, page, pageSize int) ([]dto.BoardResponse, int64, error)

	AppointModerator(requesterID string, req dto.AppointModeratorRequest) (*dto.AssignmentResponse, bool, error)
	RemoveModerator(requesterID string, assignmentID int64) error
	ListAssignments(filters map[string]string, page, pageSize int) ([]dto.AssignmentResponse, int64, error)
}

type boardService struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
	notifier  NotificationService
	logger    *slog.Logger
}

func NewBoardService(
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	logger *slog.Logger,
) BoardService {
	return &boardService{
		boardRepo: boardRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *boardService) Create(requesterID string, req dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if err := s.requireCapability(requesterID, policy.ActionCreateBoard); err != nil {
		return nil, err
	}
	board := &models.Board{Name: req.Name, Description: req.Description}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, err
	}
	return dto.FromModelToBoardResponse(board), nil
}

func (s *boardService) GetByID(boardID int64) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("board %d: %w", boardID, ErrNotFound)
		}
		return nil, err
	}
	return dto.FromModelToBoardResponse(board), nil
}

func (s *boardService) Update(boardID int64, requesterID string, req dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("board %d: %w", boardID, ErrNotFound)
		}
		return nil, err
	}
	if err := s.requireCapability(requesterID, policy.ActionChangeBoard); err != nil {
		return nil, err
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if err := s.boardRepo.Update(board); err != nil {
		return nil, err
	}
	return dto.FromModelToBoardResponse(board), nil
}

func (s *boardService) Delete(boardID int64, requesterID string) error {
	if _, err := s.boardRepo.GetByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("board %d: %w", boardID, ErrNotFound)
		}
		return err
	}
	if err := s.requireCapability(requesterID, policy.ActionDeleteBoard); err != nil {
		return err
	}
	return s.boardRepo.Delete(boardID)
}

func (s *boardService) List(filters map[string]string, page, pageSize int) ([]dto.BoardResponse, int64, error) {
	boards, total, err := s.boardRepo.List(filters, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.BoardResponse, 0, len(boards))
	for i := range boards {
		responses = append(responses, *dto.FromModelToBoardResponse(&boards[i]))
	}
	return responses, total, nil
}

// AppointModerator creates the assignment, re-derives the appointee's
// moderator role, and notifies them. Re-appointing an existing moderator
// reports created=false and dispatches nothing.
func (s *boardService) AppointModerator(requesterID string, req dto.AppointModeratorRequest) (*dto.AssignmentResponse, bool, error) {
	if err := s.requireCapability(requesterID, policy.ActionManageModerators); err != nil {
		return nil, false, err
	}
	board, err := s.boardRepo.GetByID(req.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("board %d: %w", req.BoardID, ErrNotFound)
		}
		return nil, false, err
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("user %s: %w", req.UserID, ErrNotFound)
		}
		return nil, false, err
	}

	assignment, created, err := s.boardRepo.AppointModerator(board.ID, req.UserID)
	if err != nil {
		return nil, false, err
	}

	if created {
		boardID := board.ID
		err := s.notifier.Dispatch(context.Background(), Event{
			ActorID:     requesterID,
			RecipientID: req.UserID,
			Verb:        models.VerbModerator,
			Description: "appointed you as moderator",
			TargetKind:  models.KindBoard,
			TargetID:    boardID,
			ActionKind:  models.KindBoard,
			ActionID:    &boardID,
		})
		if err != nil {
			s.logger.Warn("notification dispatch failed",
				"verb", models.VerbModerator, "board_id", board.ID, "error", err)
		}
	}

	full, err := s.boardRepo.GetAssignment(assignment.ID)
	if err != nil {
		return nil, false, err
	}
	return dto.FromModelToAssignmentResponse(full), created, nil
}

// RemoveModerator deletes the assignment (re-deriving the role), pulls
// back the original appointment notification, and announces the removal.
func (s *boardService) RemoveModerator(requesterID string, assignmentID int64) error {
	if err := s.requireCapability(requesterID, policy.ActionManageModerators); err != nil {
		return err
	}

	assignment, err := s.boardRepo.RemoveModerator(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("assignment %d: %w", assignmentID, ErrNotFound)
		}
		return err
	}

	ctx := context.Background()
	err = s.notifier.Retract(ctx, assignment.UserID, models.VerbModerator,
		models.KindBoard, assignment.BoardID)
	if err != nil {
		s.logger.Warn("notification retract failed",
			"verb", models.VerbModerator, "board_id", assignment.BoardID, "error", err)
	}

	boardID := assignment.BoardID
	err = s.notifier.Dispatch(ctx, Event{
		ActorID:     requesterID,
		RecipientID: assignment.UserID,
		Verb:        models.VerbRemoveModerator,
		Description: "removed you as moderator",
		TargetKind:  models.KindBoard,
		TargetID:    boardID,
		ActionKind:  models.KindBoard,
		ActionID:    &boardID,
	})
	if err != nil {
		s.logger.Warn("notification dispatch failed",
			"verb", models.VerbRemoveModerator, "board_id", assignment.BoardID, "error", err)
	}
	return nil
}

func (s *boardService) ListAssignments(filters map[string]string, page, pageSize int) ([]dto.AssignmentResponse, int64, error) {
	assignments, total, err := s.boardRepo.ListAssignments(filters, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, *dto.FromModelToAssignmentResponse(&assignments[i]))
	}
	return responses, total, nil
}

func (s *boardService) requireCapability(requesterID string, action policy.Action) error {
	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return err
	}
	allowed := policy.Decide(policy.Requester{
		ID:          requester.ID,
		IsSuperuser: requester.IsSuperuser,
		IsStaff:     requester.IsStaff,
	}, action, policy.Resource{})
	if !allowed {
		return ErrForbidden
	}
	return nil
}
