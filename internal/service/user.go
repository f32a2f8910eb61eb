package service

import (
	"errors"
	"fmt"

	"github.com/thiagofalasca/finance-api/internal/apperr"
	"github.com/thiagofalasca/finance-api/internal/models"
	"github.com/thiagofalasca/finance-api/internal/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, authentication and user management.
type UserService struct {
	db         *gorm.DB
	tokens     *token.Manager
	bcryptCost int
}

func NewUserService(db *gorm.DB, tokens *token.Manager, bcryptCost int) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: db, tokens: tokens, bcryptCost: bcryptCost}
}

// UserFilter drives List. Zero-valued fields are not applied.
type UserFilter struct {
	Page
	ID    uint
	Name  string
	Email string
}

// UserList is the paginated list response.
type UserList struct {
	TotalItems  int64         `json:"totalItems"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Users       []models.User `json:"users"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries a partial update; nil fields were not supplied.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserUpdateResult is the {message, user} update response.
type UserUpdateResult struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// LoginResult is the token plus the authenticated user record.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// FindByID returns the user or NotFound.
func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

// findByEmail returns nil without error when no user matches.
func (s *UserService) findByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// checkEmail enforces email uniqueness, ignoring the record being updated.
// Check-then-act only; the unique index on users.email backstops races.
func (s *UserService) checkEmail(email string, excludeID uint) error {
	user, err := s.findByEmail(email)
	if err != nil {
		return err
	}
	if user != nil && user.ID != excludeID {
		return apperr.Conflict("Email already in use.")
	}
	return nil
}

// List returns a page of users matching the filter: exact match on id,
// substring match on name and email.
func (s *UserService) List(f UserFilter) (*UserList, error) {
	page, limit, offset := f.normalize()

	q := s.db.Model(&models.User{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Email != "" {
		q = q.Where("email LIKE ?", "%"+f.Email+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var users []models.User
	if err := q.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("No users found.")
	}

	return &UserList{
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		Users:       users,
	}, nil
}

// Register creates a user with a hashed password. The plaintext is never
// stored.
func (s *UserService) Register(in RegisterInput, isAdmin bool) (*models.User, error) {
	if err := s.checkEmail(in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		IsAdmin:  isAdmin,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update applies a partial update to the target user. Fields equal to the
// stored value are dropped; when nothing differs, no write is issued.
func (s *UserService) Update(targetID uint, in UpdateUserInput) (*UserUpdateResult, error) {
	user, err := s.FindByID(targetID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		if err := s.checkEmail(*in.Email, user.ID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if in.Name != nil && *in.Name != "" && *in.Name != user.Name {
		updates["name"] = *in.Name
	}
	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		updates["email"] = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) == 0 {
		return &UserUpdateResult{Message: "No data changed.", User: user}, nil
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user %d: %w", user.ID, err)
	}

	updated, err := s.FindByID(user.ID)
	if err != nil {
		return nil, err
	}
	return &UserUpdateResult{Message: "Data updated successfully!", User: updated}, nil
}

// Delete removes the user. Categories and transactions cascade at the
// storage layer.
func (s *UserService) Delete(targetID uint) (*Message, error) {
	user, err := s.FindByID(targetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(user).Error; err != nil {
		return nil, fmt.Errorf("delete user %d: %w", targetID, err)
	}
	return &Message{Message: "User deleted successfully."}, nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password are distinct failures.
func (s *UserService) Login(email, password string) (*LoginResult, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Incorrect password.")
	}

	tok, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: tok, User: user}, nil
}

// AddTransactionCount adjusts the user's running transaction counter with
// a single atomic increment at the storage layer.
func (s *UserService) AddTransactionCount(userID uint, delta int) error {
	err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("num_transactions", gorm.Expr("num_transactions + ?", delta)).Error
	if err != nil {
		return fmt.Errorf("update transaction count for user %d: %w", userID, err)
	}
	return nil
}
