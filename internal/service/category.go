package service

import (
	"errors"
	"fmt"

	"github.com/thiagofalasca/finance-api/internal/apperr"
	"github.com/thiagofalasca/finance-api/internal/models"

	"gorm.io/gorm"
)

// CategoryService handles ownership-scoped category management.
type CategoryService struct {
	db    *gorm.DB
	users *UserService
}

func NewCategoryService(db *gorm.DB, users *UserService) *CategoryService {
	return &CategoryService{db: db, users: users}
}

// CategoryFilter drives List. OwnerID is only honored for admins.
type CategoryFilter struct {
	Page
	ID      uint
	Name    string
	OwnerID uint
}

// CategoryList is the paginated list response.
type CategoryList struct {
	TotalItems  int64             `json:"totalItems"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
	Categories  []models.Category `json:"categories"`
}

// CategoryUpdateResult is the {message, category} update response.
type CategoryUpdateResult struct {
	Message  string           `json:"message"`
	Category *models.Category `json:"category"`
}

// FindByID returns the category. Non-admin callers only see their own
// records; a category owned by someone else is indistinguishable from a
// missing one.
func (s *CategoryService) FindByID(id, callerID uint, isAdmin bool) (*models.Category, error) {
	q := s.db.Where("id = ?", id)
	if !isAdmin {
		q = q.Where("user_id = ?", callerID)
	}

	var category models.Category
	if err := q.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found.")
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return &category, nil
}

// FindByNameForOwner returns the owner's category with that exact name,
// or nil when absent.
func (s *CategoryService) FindByNameForOwner(name string, ownerID uint) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("name = ? AND user_id = ?", name, ownerID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return &category, nil
}

// FindAllByName returns every category whose name contains the pattern,
// across all owners. Used by transaction list filtering.
func (s *CategoryService) FindAllByName(pattern string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("name LIKE ?", "%"+pattern+"%").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("find categories by name: %w", err)
	}
	return categories, nil
}

// checkName enforces per-owner name uniqueness, ignoring the record being
// updated.
func (s *CategoryService) checkName(name string, ownerID, excludeID uint) error {
	category, err := s.FindByNameForOwner(name, ownerID)
	if err != nil {
		return err
	}
	if category != nil && category.ID != excludeID {
		return apperr.Conflict("Name already in use.")
	}
	return nil
}

// List returns a page of categories. Non-admin callers are scoped to
// their own records; admins may target any owner explicitly.
func (s *CategoryService) List(f CategoryFilter, callerID uint, isAdmin bool) (*CategoryList, error) {
	page, limit, offset := f.normalize()

	q := s.db.Model(&models.Category{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if !isAdmin {
		q = q.Where("user_id = ?", callerID)
	} else if f.OwnerID != 0 {
		q = q.Where("user_id = ?", f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	var categories []models.Category
	if err := q.Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, apperr.NotFound("No categories found.")
	}

	return &CategoryList{
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		Categories:  categories,
	}, nil
}

// Create makes a category for the effective owner: the explicit owner id
// when the caller is an admin, else the caller. The owner must exist and
// must not already use the name.
func (s *CategoryService) Create(name string, explicitOwner, callerID uint, isAdmin bool) (*models.Category, error) {
	ownerID := callerID
	if isAdmin && explicitOwner != 0 {
		ownerID = explicitOwner
	}

	if _, err := s.users.FindByID(ownerID); err != nil {
		return nil, err
	}
	if err := s.checkName(name, ownerID, 0); err != nil {
		return nil, err
	}

	category := models.Category{Name: name, UserID: ownerID}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update renames a category within the caller's scope. Renaming to the
// current name is a no-op and issues no write.
func (s *CategoryService) Update(id uint, newName string, callerID uint, isAdmin bool) (*CategoryUpdateResult, error) {
	category, err := s.FindByID(id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.checkName(newName, category.UserID, category.ID); err != nil {
		return nil, err
	}

	if newName == category.Name {
		return &CategoryUpdateResult{Message: "No data changed.", Category: category}, nil
	}

	if err := s.db.Model(category).Update("name", newName).Error; err != nil {
		return nil, fmt.Errorf("update category %d: %w", category.ID, err)
	}
	return &CategoryUpdateResult{Message: "Data updated successfully!", Category: category}, nil
}

// Delete removes the category. Transactions referencing it keep existing
// with a NULL category (storage-layer referential action).
func (s *CategoryService) Delete(id, callerID uint, isAdmin bool) (*Message, error) {
	category, err := s.FindByID(id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return nil, fmt.Errorf("delete category %d: %w", id, err)
	}
	return &Message{Message: "Category deleted successfully."}, nil
}
