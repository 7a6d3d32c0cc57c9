package handlers

import (
	"errors"
	"fmt"
	"log"

	"credops/internal/models"
	"credops/internal/repositories"
	"credops/internal/services"
	"credops/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OperationHandler handles HTTP requests for credit operations.
type OperationHandler struct {
	service  *services.OperationService
	store    *storage.LocalStore
	validate *validator.Validate
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(service *services.OperationService, store *storage.LocalStore) *OperationHandler {
	return &OperationHandler{
		service:  service,
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the operation routes with the Fiber app. All of
// them sit behind the auth middleware.
func (h *OperationHandler) RegisterRoutes(router fiber.Router) {
	opRoutes := router.Group("/operations")
	opRoutes.Get("/", h.HandleListOperations)
	opRoutes.Post("/", h.HandleCreateOperation)
	opRoutes.Get("/summary", h.HandleSummary)
	opRoutes.Post("/upload", h.HandleUpload)
	opRoutes.Get("/:id", h.HandleGetOperation)
	opRoutes.Put("/:id", h.HandleUpdateOperation)
	opRoutes.Delete("/:id", h.HandleDeleteOperation)
}

// ownerID extracts the authenticated user's id placed by the middleware.
func ownerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// HandleListOperations retrieves the caller's operations, optionally
// filtered by a search term and a status.
func (h *OperationHandler) HandleListOperations(c *fiber.Ctx) error {
	filter := repositories.OperationFilter{
		OwnerID: ownerID(c),
		Search:  c.Query("search"),
		Status:  c.Query("status"),
	}

	operations, err := h.service.ListOperations(filter)
	if err != nil {
		log.Printf("Error listing operations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar operações",
		})
	}
	return c.JSON(operations)
}

// HandleGetOperation retrieves a single operation by its ID.
func (h *OperationHandler) HandleGetOperation(c *fiber.Ctx) error {
	operation, err := h.service.GetOperation(c.Params("id"), ownerID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Operação não encontrada",
			})
		}
		log.Printf("Error getting operation %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar operação",
		})
	}
	return c.JSON(operation)
}

// HandleCreateOperation creates a new operation owned by the caller.
func (h *OperationHandler) HandleCreateOperation(c *fiber.Ctx) error {
	var request models.Operation
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing operation request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Requisição inválida",
		})
	}

	if err := h.validate.Struct(request); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Dados inválidos",
			"fields": errorMessages,
		})
	}

	created, err := h.service.CreateOperation(request, ownerID(c))
	if err != nil {
		if errors.Is(err, services.ErrPersonTypeMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Dados inválidos",
			})
		}
		log.Printf("Error creating operation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao criar operação",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateOperation applies submitted fields onto an existing operation.
func (h *OperationHandler) HandleUpdateOperation(c *fiber.Ctx) error {
	var request models.Operation
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing operation update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Requisição inválida",
		})
	}

	updated, err := h.service.UpdateOperation(c.Params("id"), ownerID(c), request)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Operação não encontrada",
			})
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrPersonTypeMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Dados inválidos",
			})
		}
		log.Printf("Error updating operation %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao atualizar operação",
		})
	}
	return c.JSON(updated)
}

// HandleDeleteOperation removes an operation outright.
func (h *OperationHandler) HandleDeleteOperation(c *fiber.Ctx) error {
	if err := h.service.DeleteOperation(c.Params("id"), ownerID(c)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Operação não encontrada",
			})
		}
		log.Printf("Error deleting operation %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao excluir operação",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleSummary aggregates the caller's operations for the dashboard and
// performance views.
func (h *OperationHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summarize(ownerID(c))
	if err != nil {
		log.Printf("Error summarizing operations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar operações",
		})
	}
	return c.JSON(fiber.Map{
		"counts":     summary.Counts,
		"totalValue": summary.TotalValue,
	})
}

// HandleUpload stores a supporting document and returns its public URL.
func (h *OperationHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nenhum arquivo enviado",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao fazer upload do arquivo",
		})
	}
	defer file.Close()

	url, err := h.store.Save(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "Arquivo excede o tamanho máximo",
			})
		}
		log.Printf("Error storing uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao fazer upload do arquivo",
		})
	}

	return c.JSON(fiber.Map{"url": url})
}
