package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"credops/internal/models"

	"github.com/google/uuid"
)

// MockOperationRepository is an in-memory implementation of
// OperationRepository. It mirrors the query semantics of the GORM
// implementation so service tests exercise the real filtering rules.
type MockOperationRepository struct {
	operations map[string]models.Operation
	sequence   int64
	mu         sync.RWMutex
}

// NewMockOperationRepository creates a new instance of MockOperationRepository.
func NewMockOperationRepository() *MockOperationRepository {
	return &MockOperationRepository{
		operations: make(map[string]models.Operation),
	}
}

// Create adds a new operation.
func (r *MockOperationRepository) Create(op *models.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	op.UpdatedAt = time.Now()
	r.operations[op.ID] = *op
	return nil
}

// GetByID returns an operation by id, scoped to its owner.
func (r *MockOperationRepository) GetByID(id, ownerID string) (*models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operations[id]
	if !ok || op.UserID != ownerID {
		return nil, fmt.Errorf("operation %s: %w", id, ErrNotFound)
	}
	return &op, nil
}

// List returns the owner's operations matching the filter, newest first.
func (r *MockOperationRepository) List(filter OperationFilter) ([]models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)

	ops := make([]models.Operation, 0)
	for _, op := range r.operations {
		if op.UserID != filter.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(op.ClientName), search) &&
			!strings.Contains(strings.ToLower(op.Number), search) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(op.Status) != filter.Status {
			continue
		}
		ops = append(ops, op)
	}

	sort.Slice(ops, func(i, j int) bool {
		return ops[i].CreatedAt.After(ops[j].CreatedAt)
	})
	return ops, nil
}

// Update modifies an existing operation.
func (r *MockOperationRepository) Update(op *models.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.operations[op.ID]; !ok {
		return fmt.Errorf("operation %s for update: %w", op.ID, ErrNotFound)
	}
	op.UpdatedAt = time.Now()
	r.operations[op.ID] = *op
	return nil
}

// Delete removes an operation by id, scoped to its owner.
func (r *MockOperationRepository) Delete(id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.operations[id]
	if !ok || op.UserID != ownerID {
		return fmt.Errorf("operation %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.operations, id)
	return nil
}

// NextNumber reserves the next display number.
func (r *MockOperationRepository) NextNumber() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	return fmt.Sprintf("OP%03d", r.sequence), nil
}

// Summary aggregates the owner's operations by status plus total value.
func (r *MockOperationRepository) Summary(ownerID string) (*StatusSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := &StatusSummary{Counts: make(map[models.Status]int64)}
	for _, op := range r.operations {
		if op.UserID != ownerID {
			continue
		}
		summary.Counts[op.Status]++
		summary.TotalValue += op.Value
	}
	return summary, nil
}
