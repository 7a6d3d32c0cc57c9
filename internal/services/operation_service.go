package services

import (
	"encoding/json"
	"fmt"
	"log"

	"credops/internal/models"
	"credops/internal/repositories"
	"credops/pkg/rabbitmq"
)

// OperationService handles business logic related to credit operations.
type OperationService struct {
	opRepo   repositories.OperationRepository
	mqClient *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOperationService creates a new OperationService.
func NewOperationService(opRepo repositories.OperationRepository, mqClient *rabbitmq.Client) *OperationService {
	return &OperationService{
		opRepo:   opRepo,
		mqClient: mqClient,
	}
}

// CreateOperation creates a new operation for the given owner. The display
// number and initial status are server-assigned; whatever the client sent
// for them is ignored.
func (s *OperationService) CreateOperation(request models.Operation, ownerID string) (*models.Operation, error) {
	if err := validatePersonType(&request); err != nil {
		return nil, err
	}

	number, err := s.opRepo.NextNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to assign operation number: %w", err)
	}

	request.ID = ""
	request.UserID = ownerID
	request.Number = number
	request.Status = models.DefaultStatus

	if err := s.opRepo.Create(&request); err != nil {
		return nil, fmt.Errorf("failed to create operation in repository: %w", err)
	}

	s.publishEvent("operation.created", map[string]interface{}{
		"operationID": request.ID,
		"number":      request.Number,
		"userID":      request.UserID,
		"status":      request.Status,
		"value":       request.Value,
	})

	return &request, nil
}

// GetOperation retrieves a single operation, scoped to its owner.
func (s *OperationService) GetOperation(id, ownerID string) (*models.Operation, error) {
	return s.opRepo.GetByID(id, ownerID)
}

// ListOperations retrieves the owner's operations matching the filter.
func (s *OperationService) ListOperations(filter repositories.OperationFilter) ([]models.Operation, error) {
	return s.opRepo.List(filter)
}

// UpdateOperation applies the submitted fields onto an existing operation.
// Ownership is verified by the read; the owner, display number, id, and
// creation time can never change.
func (s *OperationService) UpdateOperation(id, ownerID string, updated models.Operation) (*models.Operation, error) {
	existing, err := s.opRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}

	if updated.Status != "" && !updated.Status.Valid() {
		return nil, fmt.Errorf("status %q: %w", updated.Status, ErrInvalidStatus)
	}
	if err := validatePersonType(&updated); err != nil {
		return nil, err
	}

	previousStatus := existing.Status
	applyUpdate(existing, &updated)

	if err := s.opRepo.Update(existing); err != nil {
		return nil, err
	}

	if existing.Status != previousStatus {
		s.publishEvent("operation.status_changed", map[string]interface{}{
			"operationID": existing.ID,
			"number":      existing.Number,
			"userID":      existing.UserID,
			"from":        previousStatus,
			"to":          existing.Status,
		})
	}

	return existing, nil
}

// DeleteOperation removes an operation, scoped to its owner.
func (s *OperationService) DeleteOperation(id, ownerID string) error {
	return s.opRepo.Delete(id, ownerID)
}

// Summarize aggregates the owner's operations for the dashboard.
func (s *OperationService) Summarize(ownerID string) (*repositories.StatusSummary, error) {
	return s.opRepo.Summary(ownerID)
}

// validatePersonType rejects operations whose detail block contradicts the
// person-type flag: an individual must not carry company details and vice
// versa.
func validatePersonType(op *models.Operation) error {
	switch op.PersonType {
	case models.PersonTypeIndividual:
		if op.Company != nil {
			return fmt.Errorf("individual operation with company details: %w", ErrPersonTypeMismatch)
		}
	case models.PersonTypeCompany:
		if op.Individual != nil {
			return fmt.Errorf("company operation with individual details: %w", ErrPersonTypeMismatch)
		}
	default:
		return fmt.Errorf("person type %q: %w", op.PersonType, ErrPersonTypeMismatch)
	}
	return nil
}

// applyUpdate copies the mutable fields of src onto dst. ID, UserID, Number
// and timestamps stay untouched.
func applyUpdate(dst, src *models.Operation) {
	if src.Status != "" {
		dst.Status = src.Status
	}
	dst.PersonType = src.PersonType
	dst.Client = src.Client
	dst.ClientName = src.ClientName
	dst.ClientEmail = src.ClientEmail
	dst.ClientPhone = src.ClientPhone
	dst.ClientAddress = src.ClientAddress
	dst.ClientDocument = src.ClientDocument
	dst.ClientSalary = src.ClientSalary
	dst.Profession = src.Profession
	dst.ProfessionalActivity = src.ProfessionalActivity
	dst.Value = src.Value
	dst.PropertyValue = src.PropertyValue
	dst.DesiredValue = src.DesiredValue
	dst.PropertyType = src.PropertyType
	dst.PropertyLocation = src.PropertyLocation
	dst.PropertyImage = src.PropertyImage
	dst.IncomeProof = src.IncomeProof
	dst.CreditDefense = src.CreditDefense
	dst.Documents = src.Documents
	dst.HasDebt = src.HasDebt
	dst.DebtValue = src.DebtValue
	dst.DebtInstitution = src.DebtInstitution
	dst.PersonalDebts = src.PersonalDebts
	dst.LegalProcesses = src.LegalProcesses
	dst.IsRental = src.IsRental
	dst.RentalValue = src.RentalValue
	dst.Individual = src.Individual
	dst.Company = src.Company
}

// publishEvent sends a lifecycle event to the queue. Publication is best
// effort: a broker failure is logged and never fails the request.
func (s *OperationService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
		return
	}
	log.Printf("Published %s event for operation %v", routingKey, payload["operationID"])
}
