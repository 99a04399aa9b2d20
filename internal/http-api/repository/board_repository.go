package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardRepository covers boards and their moderator assignments. The
// assignment operations re-derive the appointee's "moderator" group
// membership inside the same transaction as the assignment row, so the
// role always reflects the current assignment count.
type BoardRepository interface {
	Create(board *models.Board) error
	Update(board *models.Board) error
	Delete(boardID int64) error
	GetByID(boardID int64) (*models.Board, error)
	List(filters map[string]string, page, pageSize int) ([]models.Board, int64, error)

	AppointModerator(boardID int64, userID string) (*models.ModeratorAssignment, bool, error)
	RemoveModerator(assignmentID int64) (*models.ModeratorAssignment, error)
	GetAssignment(assignmentID int64) (*models.ModeratorAssignment, error)
	ListAssignments(filters map[string]string, page, pageSize int) ([]models.ModeratorAssignment, int64, error)
	IsModerator(boardID int64, userID string) (bool, error)
	ModeratorsOf(boardID int64) ([]models.ModeratorAssignment, error)
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

func (r *boardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

func (r *boardRepository) Delete(boardID int64) error {
	return r.db.Where("id = ?", boardID).Delete(&models.Board{}).Error
}

func (r *boardRepository) GetByID(boardID int64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, "id = ?", boardID).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// boardFilterFields is the allow-list for board list filtering; string
// fields match by substring, the rest exactly.
var boardFilterFields = map[string]bool{
	"id":   false,
	"name": true,
}

func (r *boardRepository) List(filters map[string]string, page, pageSize int) ([]models.Board, int64, error) {
	q := applyFilters(r.db.Model(&models.Board{}), boardFilterFields, filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var boards []models.Board
	err := q.Order("id").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&boards).Error
	if err != nil {
		return nil, 0, err
	}
	return boards, total, nil
}

// AppointModerator creates the assignment if it does not exist yet and
// returns whether a new row was created. Appointing someone who already
// moderates the board is the success case, not a conflict.
func (r *boardRepository) AppointModerator(boardID int64, userID string) (*models.ModeratorAssignment, bool, error) {
	assignment := &models.ModeratorAssignment{BoardID: boardID, UserID: userID}
	created := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(assignment)
		if res.Error != nil && !isUniqueViolation(res.Error) {
			return res.Error
		}
		created = res.Error == nil && res.RowsAffected > 0
		if !created {
			if err := tx.Where("board_id = ? AND user_id = ?", boardID, userID).
				First(assignment).Error; err != nil {
				return err
			}
		}
		return rederiveModeratorRole(tx, userID)
	})
	if err != nil {
		return nil, false, err
	}
	return assignment, created, nil
}

// RemoveModerator deletes the assignment and returns it so the caller
// can retract the matching notification.
func (r *boardRepository) RemoveModerator(assignmentID int64) (*models.ModeratorAssignment, error) {
	var assignment models.ModeratorAssignment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, "id = ?", assignmentID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&assignment).Error; err != nil {
			return err
		}
		return rederiveModeratorRole(tx, assignment.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *boardRepository) GetAssignment(assignmentID int64) (*models.ModeratorAssignment, error) {
	var assignment models.ModeratorAssignment
	err := r.db.Preload("Board").Preload("User").
		First(&assignment, "id = ?", assignmentID).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

var assignmentFilterFields = map[string]bool{
	"board_id": false,
	"user_id":  false,
}

func (r *boardRepository) ListAssignments(filters map[string]string, page, pageSize int) ([]models.ModeratorAssignment, int64, error) {
	q := applyFilters(r.db.Model(&models.ModeratorAssignment{}), assignmentFilterFields, filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []models.ModeratorAssignment
	err := q.Preload("Board").Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

func (r *boardRepository) IsModerator(boardID int64, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ModeratorAssignment{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *boardRepository) ModeratorsOf(boardID int64) ([]models.ModeratorAssignment, error) {
	var assignments []models.ModeratorAssignment
	err := r.db.Where("board_id = ?", boardID).Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// rederiveModeratorRole syncs the "moderator" group with the user's
// current assignment count. Count-based on purpose: removing one of two
// assignments must not drop the role.
func rederiveModeratorRole(tx *gorm.DB, userID string) error {
	var count int64
	if err := tx.Model(&models.ModeratorAssignment{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return addToGroup(tx, userID, models.GroupModerator)
	}
	return removeFromGroup(tx, userID, models.GroupModerator)
}
