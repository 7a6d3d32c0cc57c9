package repositories

import (
	"errors"
	"fmt"
	"strings"

	"credops/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const operationSequence = "operations"

// GORMOperationRepository is a GORM implementation of OperationRepository.
type GORMOperationRepository struct {
	db *gorm.DB
}

// NewGORMOperationRepository creates a new instance of GORMOperationRepository.
func NewGORMOperationRepository(db *gorm.DB) *GORMOperationRepository {
	return &GORMOperationRepository{
		db: db,
	}
}

// Create persists a new operation.
func (r *GORMOperationRepository) Create(op *models.Operation) error {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	if err := r.db.Create(op).Error; err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}
	return nil
}

// GetByID retrieves a single operation by id, scoped to its owner.
func (r *GORMOperationRepository) GetByID(id, ownerID string) (*models.Operation, error) {
	var op models.Operation
	if err := r.db.First(&op, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("operation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get operation %s: %w", id, err)
	}
	return &op, nil
}

// List retrieves the owner's operations matching the filter, newest first.
func (r *GORMOperationRepository) List(filter OperationFilter) ([]models.Operation, error) {
	query := r.db.Where("user_id = ?", filter.OwnerID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(client_name) LIKE ? OR LOWER(number) LIKE ?)", pattern, pattern)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	var ops []models.Operation
	if err := query.Order("created_at DESC").Find(&ops).Error; err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return ops, nil
}

// Update writes back a previously loaded operation.
func (r *GORMOperationRepository) Update(op *models.Operation) error {
	res := r.db.Save(op) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update operation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("operation %s for update: %w", op.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an operation outright, scoped to its owner.
func (r *GORMOperationRepository) Delete(id, ownerID string) error {
	// Unscoped: operations are hard-deleted, no recycle bin.
	res := r.db.Unscoped().Delete(&models.Operation{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete operation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("operation %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// NextNumber reserves the next display number from the operations sequence.
// The single-statement increment keeps concurrent creates from ever reading
// the same value.
func (r *GORMOperationRepository) NextNumber() (string, error) {
	var next int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Sequence{}).
			Where("name = ?", operationSequence).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// First ever number. A concurrent first-create may win the
			// insert; fall back to the increment in that case.
			if err := tx.Create(&models.Sequence{Name: operationSequence, Value: 1}).Error; err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				res = tx.Model(&models.Sequence{}).
					Where("name = ?", operationSequence).
					UpdateColumn("value", gorm.Expr("value + 1"))
				if res.Error != nil {
					return res.Error
				}
			}
		}
		var seq models.Sequence
		if err := tx.First(&seq, "name = ?", operationSequence).Error; err != nil {
			return err
		}
		next = seq.Value
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to reserve operation number: %w", err)
	}
	return fmt.Sprintf("OP%03d", next), nil
}

// Summary aggregates the owner's operations by status plus total value.
func (r *GORMOperationRepository) Summary(ownerID string) (*StatusSummary, error) {
	var rows []struct {
		Status models.Status
		Cnt    int64
		Total  float64
	}
	err := r.db.Model(&models.Operation{}).
		Select("status, COUNT(*) AS cnt, COALESCE(SUM(value), 0) AS total").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize operations: %w", err)
	}

	summary := &StatusSummary{Counts: make(map[models.Status]int64)}
	for _, row := range rows {
		summary.Counts[row.Status] = row.Cnt
		summary.TotalValue += row.Total
	}
	return summary, nil
}
