package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/montaro/algohub/internal/models"
)

// AlgorithmServiceProvider defines the interface for algorithm services.
type AlgorithmServiceProvider interface {
	Create(title, content, subCategory string, categoryID, userID int64) (models.Algorithm, error)
	Get(id int64) (models.Algorithm, error)
	ListPublic() ([]models.Algorithm, error)
	ListByUser(userID int64) ([]models.Algorithm, error)
	Update(id int64, patch models.AlgorithmPatch) (models.Algorithm, error)
	Delete(id int64) error
}

// AlgorithmService provides business logic for algorithm records.
type AlgorithmService struct {
	db *sql.DB
}

// NewAlgorithmService creates a new AlgorithmService.
func NewAlgorithmService(db *sql.DB) *AlgorithmService {
	return &AlgorithmService{db: db}
}

// Create persists a new algorithm owned by userID. The title is required
// and the category must exist; access defaults to public.
func (s *AlgorithmService) Create(title, content, subCategory string, categoryID, userID int64) (models.Algorithm, error) {
	if title == "" {
		return models.Algorithm{}, fmt.Errorf("algorithm title is required: %w", ErrValidation)
	}

	res, err := s.db.Exec(
		"INSERT INTO algorithms(title, content, sub_category, category_id, user_id, access) VALUES(?, ?, ?, ?, ?, ?)",
		title, content, subCategory, categoryID, userID, models.AccessPublic,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Algorithm{}, fmt.Errorf("category %d does not exist: %w", categoryID, ErrValidation)
		}
		return models.Algorithm{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Algorithm{}, err
	}

	return models.Algorithm{
		ID:          id,
		Title:       title,
		Content:     content,
		CategoryID:  &categoryID,
		SubCategory: subCategory,
		UserID:      userID,
		Access:      models.AccessPublic,
	}, nil
}

// Get retrieves a single algorithm by its ID.
func (s *AlgorithmService) Get(id int64) (models.Algorithm, error) {
	row := s.db.QueryRow(
		"SELECT id, title, content, sub_category, category_id, user_id, access FROM algorithms WHERE id = ?", id)
	algo, err := scanAlgorithm(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Algorithm{}, fmt.Errorf("algorithm %d: %w", id, ErrNotFound)
		}
		return models.Algorithm{}, err
	}
	return algo, nil
}

// ListPublic retrieves every algorithm with public access.
func (s *AlgorithmService) ListPublic() ([]models.Algorithm, error) {
	return s.list("SELECT id, title, content, sub_category, category_id, user_id, access FROM algorithms WHERE access = ? ORDER BY id", models.AccessPublic)
}

// ListByUser retrieves every algorithm owned by the given user.
func (s *AlgorithmService) ListByUser(userID int64) ([]models.Algorithm, error) {
	return s.list("SELECT id, title, content, sub_category, category_id, user_id, access FROM algorithms WHERE user_id = ? ORDER BY id", userID)
}

// Update applies a partial update field by field. Setting an empty title is
// a validation failure; pointing at a missing category likewise.
func (s *AlgorithmService) Update(id int64, patch models.AlgorithmPatch) (models.Algorithm, error) {
	algo, err := s.Get(id)
	if err != nil {
		return models.Algorithm{}, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return models.Algorithm{}, fmt.Errorf("algorithm title is required: %w", ErrValidation)
		}
		algo.Title = *patch.Title
	}
	if patch.Content != nil {
		algo.Content = *patch.Content
	}
	if patch.SubCategory != nil {
		algo.SubCategory = *patch.SubCategory
	}
	if patch.CategoryID != nil {
		algo.CategoryID = patch.CategoryID
	}
	if patch.Access != nil {
		algo.Access = *patch.Access
	}

	_, err = s.db.Exec(
		"UPDATE algorithms SET title = ?, content = ?, sub_category = ?, category_id = ?, access = ? WHERE id = ?",
		algo.Title, algo.Content, algo.SubCategory, algo.CategoryID, algo.Access, algo.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Algorithm{}, fmt.Errorf("category does not exist: %w", ErrValidation)
		}
		return models.Algorithm{}, err
	}
	return algo, nil
}

// Delete removes an algorithm.
func (s *AlgorithmService) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM algorithms WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("algorithm %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *AlgorithmService) list(query string, arg any) ([]models.Algorithm, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	algos := []models.Algorithm{}
	for rows.Next() {
		algo, err := scanAlgorithm(rows.Scan)
		if err != nil {
			return nil, err
		}
		algos = append(algos, algo)
	}
	return algos, rows.Err()
}

func scanAlgorithm(scan func(dest ...any) error) (models.Algorithm, error) {
	var algo models.Algorithm
	var content, subCategory sql.NullString
	err := scan(&algo.ID, &algo.Title, &content, &subCategory, &algo.CategoryID, &algo.UserID, &algo.Access)
	if err != nil {
		return models.Algorithm{}, err
	}
	algo.Content = content.String
	algo.SubCategory = subCategory.String
	return algo, nil
}
