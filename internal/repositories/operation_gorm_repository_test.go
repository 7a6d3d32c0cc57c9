package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"credops/internal/models"
	"credops/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Operation{}, &models.Sequence{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func sampleOperation(owner, clientName, number string) *models.Operation {
	return &models.Operation{
		UserID:               owner,
		Number:               number,
		Status:               models.DefaultStatus,
		PersonType:           models.PersonTypeIndividual,
		Client:               clientName,
		ClientName:           clientName,
		ClientEmail:          "cliente@example.com",
		ClientPhone:          "+55 11 99999-0000",
		ClientAddress:        "Rua das Flores, 100",
		ClientSalary:         8000,
		Profession:           "Engenheiro",
		ProfessionalActivity: "CLT",
		Value:                200000,
		PropertyValue:        300000,
		DesiredValue:         200000,
		PropertyType:         "Apartamento",
		PropertyLocation:     "São Paulo",
		IncomeProof:          "holerite",
		CreditDefense:        "sem restrições",
		Documents:            []string{"/uploads/a.pdf", "/uploads/b.pdf"},
		Individual: &models.IndividualDetails{
			CPF: "123.456.789-00",
			RG:  "12.345.678-9",
		},
	}
}

func TestGORMOperationRepository_NextNumber(t *testing.T) {
	repo := repositories.NewGORMOperationRepository(setupDB(t))

	for i := 1; i <= 5; i++ {
		number, err := repo.NextNumber()
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("OP%03d", i), number)
	}
}

func TestGORMOperationRepository_NumbersSurviveDeletes(t *testing.T) {
	repo := repositories.NewGORMOperationRepository(setupDB(t))

	first, err := repo.NextNumber()
	assert.NoError(t, err)
	op := sampleOperation("owner-a", "Fulano", first)
	assert.NoError(t, repo.Create(op))
	assert.NoError(t, repo.Delete(op.ID, "owner-a"))

	// A deleted operation never frees its number.
	second, err := repo.NextNumber()
	assert.NoError(t, err)
	assert.Equal(t, "OP002", second)
}

func TestGORMOperationRepository_RoundTrip(t *testing.T) {
	repo := repositories.NewGORMOperationRepository(setupDB(t))

	op := sampleOperation("owner-a", "Fulano", "OP001")
	assert.NoError(t, repo.Create(op))

	got, err := repo.GetByID(op.ID, "owner-a")
	assert.NoError(t, err)
	assert.Equal(t, op.Number, got.Number)
	assert.Equal(t, op.ClientName, got.ClientName)
	assert.Equal(t, op.Documents, got.Documents)
	assert.NotNil(t, got.Individual)
	assert.Equal(t, "123.456.789-00", got.Individual.CPF)
	assert.Nil(t, got.Company)
}

func TestGORMOperationRepository_OwnershipScoping(t *testing.T) {
	repo := repositories.NewGORMOperationRepository(setupDB(t))

	op := sampleOperation("owner-a", "Fulano", "OP001")
	assert.NoError(t, repo.Create(op))

	_, err := repo.GetByID(op.ID, "owner-b")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Delete(op.ID, "owner-b")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Still present for the real owner.
	_, err = repo.GetByID(op.ID, "owner-a")
	assert.NoError(t, err)
}

func TestGORMOperationRepository_ListFiltersAndOrder(t *testing.T) {
	repo := repositories.NewGORMOperationRepository(setupDB(t))

	older := sampleOperation("owner-a", "João Silva", "OP001")
	older.CreatedAt = time.Now().Add(-time.Hour)
	assert.NoError(t, repo.Create(older))

	newer := sampleOperation("owner-a", "Pedro Souza", "OP002")
	newer.Status = models.StatusRefused
	assert.NoError(t, repo.Create(newer))

	foreign := sampleOperation("owner-b", "Ana Silva", "OP003")
	assert.NoError(t, repo.Create(foreign))

	// No filter: only the owner's records, newest first.
	ops, err := repo.List(repositories.OperationFilter{OwnerID: "owner-a"})
	assert.NoError(t, err)
	assert.Len(t, ops, 2)
	assert.Equal(t, "OP002", ops[0].Number)
	assert.Equal(t, "OP001", ops[1].Number)

	// Case-insensitive search on client name.
	ops, err = repo.List(repositories.OperationFilter{OwnerID: "owner-a", Search: "SILVA"})
	assert.NoError(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, "João Silva", ops[0].ClientName)

	// Search on display number.
	ops, err = repo.List(repositories.OperationFilter{OwnerID: "owner-a", Search: "op002"})
	assert.NoError(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, "Pedro Souza", ops[0].ClientName)

	// Exact status filter; "all" disables it.
	ops, err = repo.List(repositories.OperationFilter{OwnerID: "owner-a", Status: string(models.StatusRefused)})
	assert.NoError(t, err)
	assert.Len(t, ops, 1)

	ops, err = repo.List(repositories.OperationFilter{OwnerID: "owner-a", Status: "all"})
	assert.NoError(t, err)
	assert.Len(t, ops, 2)
}

func TestGORMOperationRepository_Summary(t *testing.T) {
	repo := repositories.NewGORMOperationRepository(setupDB(t))

	a := sampleOperation("owner-a", "Fulano", "OP001")
	assert.NoError(t, repo.Create(a))
	b := sampleOperation("owner-a", "Beltrano", "OP002")
	b.Status = models.StatusCreditApproved
	b.Value = 150000
	assert.NoError(t, repo.Create(b))
	c := sampleOperation("owner-b", "Outro", "OP003")
	assert.NoError(t, repo.Create(c))

	summary, err := repo.Summary("owner-a")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), summary.Counts[models.DefaultStatus])
	assert.Equal(t, int64(1), summary.Counts[models.StatusCreditApproved])
	assert.Equal(t, float64(350000), summary.TotalValue)
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	user := &models.User{Name: "Ana", Email: "ana@x.com", Password: "hash"}
	assert.NoError(t, repo.Create(user))

	dup := &models.User{Name: "Outra Ana", Email: "ana@x.com", Password: "hash2"}
	err := repo.Create(dup)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

	// Only the first record exists.
	got, err := repo.GetByEmail("ana@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, user.ID, got.ID)
}
