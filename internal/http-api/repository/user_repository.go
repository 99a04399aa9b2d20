package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	AddToGroup(userID, groupName string) error
	RemoveFromGroup(userID, groupName string) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create persists the user and attaches the base "member" group, the
// role every registered account starts with.
func (r *userRepository) Create(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return addToGroup(tx, user.ID, models.GroupMember)
	})
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.User{}).Error
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	// return nil on error instead of a zero-value struct, which would
	// make callers think the user was found
	if err := r.db.Preload("Groups").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Groups").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Groups").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Groups").Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) AddToGroup(userID, groupName string) error {
	return addToGroup(r.db, userID, groupName)
}

func (r *userRepository) RemoveFromGroup(userID, groupName string) error {
	return removeFromGroup(r.db, userID, groupName)
}

// addToGroup is shared with the moderator-assignment transaction, which
// must re-derive group membership on the same tx as the assignment row.
func addToGroup(tx *gorm.DB, userID, groupName string) error {
	var group models.Group
	if err := tx.Where(models.Group{Name: groupName}).FirstOrCreate(&group).Error; err != nil {
		return err
	}
	err := tx.Exec(
		"INSERT INTO user_groups (user_id, group_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		userID, group.ID,
	).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func removeFromGroup(tx *gorm.DB, userID, groupName string) error {
	var group models.Group
	if err := tx.Where("name = ?", groupName).First(&group).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	return tx.Exec(
		"DELETE FROM user_groups WHERE user_id = ? AND group_id = ?",
		userID, group.ID,
	).Error
}
