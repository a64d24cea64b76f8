package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/montaro/algohub/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	Create(name string) (models.Category, error)
	Get(id int64) (models.Category, error)
	List() ([]models.Category, error)
	Rename(id int64, name string) (models.Category, error)
	Delete(id int64) error
}

// CategoryService provides business logic for category management.
type CategoryService struct {
	db *sql.DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Create persists a new category. A duplicate name is a conflict, settled
// by the store's UNIQUE constraint so concurrent creates stay correct.
func (s *CategoryService) Create(name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	res, err := s.db.Exec("INSERT INTO categories(name) VALUES(?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, fmt.Errorf("category %s: %w", name, ErrConflict)
		}
		return models.Category{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}

	return models.Category{ID: id, Name: name}, nil
}

// Get retrieves a single category by its ID.
func (s *CategoryService) Get(id int64) (models.Category, error) {
	var cat models.Category
	row := s.db.QueryRow("SELECT id, name FROM categories WHERE id = ?", id)
	if err := row.Scan(&cat.ID, &cat.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return models.Category{}, err
	}
	return cat, nil
}

// List retrieves all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// Rename changes a category's name. Renaming to an existing name is a
// conflict.
func (s *CategoryService) Rename(id int64, name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	res, err := s.db.Exec("UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, fmt.Errorf("category %s: %w", name, ErrConflict)
		}
		return models.Category{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Category{}, err
	}
	if affected == 0 {
		return models.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	return models.Category{ID: id, Name: name}, nil
}

// Delete removes a category. Algorithms referencing it keep existing with
// their category_id nulled by the store (ON DELETE SET NULL).
func (s *CategoryService) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}
