package repositories

import "credops/internal/models"

// OperationFilter is an explicit filter specification for listing
// operations. OwnerID is mandatory; Search and Status are optional.
type OperationFilter struct {
	OwnerID string
	// Search matches case-insensitively against client name and display
	// number.
	Search string
	// Status filters by exact status; empty or "all" means no filter.
	Status string
}

// StatusSummary aggregates an owner's operations for the dashboard views.
type StatusSummary struct {
	Counts     map[models.Status]int64
	TotalValue float64
}

// OperationRepository defines the interface for operation data access.
// Every read and write is scoped to an owner; a mismatch is reported as
// ErrNotFound, never revealing existence to a non-owner.
type OperationRepository interface {
	Create(op *models.Operation) error
	GetByID(id, ownerID string) (*models.Operation, error)
	List(filter OperationFilter) ([]models.Operation, error)
	Update(op *models.Operation) error
	Delete(id, ownerID string) error
	// NextNumber atomically reserves the next display number ("OP001", ...).
	NextNumber() (string, error)
	Summary(ownerID string) (*StatusSummary, error)
}
