package models

import "gorm.io/gorm"

// PersonType distinguishes individual clients from company clients.
type PersonType string

const (
	PersonTypeIndividual PersonType = "fisica"
	PersonTypeCompany    PersonType = "juridica"
)

// Partner is a shareholder of a company client.
type Partner struct {
	Name          string `json:"name" validate:"required"`
	CPF           string `json:"cpf" validate:"required"`
	CNPJ          string `json:"cnpj,omitempty"`
	Participation string `json:"participation" validate:"required"`
}

// IndividualDetails carries the fields that only apply to individual
// ("fisica") clients.
type IndividualDetails struct {
	CPF           string `json:"cpf,omitempty"`
	RG            string `json:"rg,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	SpouseName    string `json:"spouseName,omitempty"`
	SpouseCPF     string `json:"spouseCPF,omitempty"`
	SpouseRG      string `json:"spouseRG,omitempty"`
}

// CompanyDetails carries the fields that only apply to company
// ("juridica") clients.
type CompanyDetails struct {
	CNPJ           string    `json:"cnpj,omitempty"`
	Partners       []Partner `json:"partners,omitempty" validate:"omitempty,dive"`
	CompanyRevenue float64   `json:"companyRevenue,omitempty"`
	EmployeesCount int       `json:"employeesCount,omitempty"`
}

// Operation represents one credit/loan application owned by a user.
// Exactly one of Individual/Company is set, matching PersonType.
type Operation struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Number string `json:"number" gorm:"uniqueIndex;type:varchar(16)"`
	UserID string `json:"userId" gorm:"index;type:varchar(36)"`
	Status Status `json:"status" gorm:"type:varchar(64)"`

	PersonType PersonType `json:"personType" validate:"required,oneof=fisica juridica"`

	Client               string  `json:"client" validate:"required"`
	ClientName           string  `json:"clientName" validate:"required"`
	ClientEmail          string  `json:"clientEmail" validate:"required,email"`
	ClientPhone          string  `json:"clientPhone" validate:"required"`
	ClientAddress        string  `json:"clientAddress" validate:"required"`
	ClientDocument       string  `json:"clientDocument,omitempty"`
	ClientSalary         float64 `json:"clientSalary" validate:"gte=0"`
	Profession           string  `json:"profession" validate:"required"`
	ProfessionalActivity string  `json:"professionalActivity" validate:"required"`

	Value         float64 `json:"value" validate:"required,gt=0"`
	PropertyValue float64 `json:"propertyValue" validate:"required,gt=0"`
	DesiredValue  float64 `json:"desiredValue" validate:"required,gt=0"`

	PropertyType     string `json:"propertyType" validate:"required"`
	PropertyLocation string `json:"propertyLocation" validate:"required"`
	PropertyImage    string `json:"propertyImage,omitempty"`

	IncomeProof   string `json:"incomeProof" validate:"required"`
	CreditDefense string `json:"creditDefense" validate:"required"`

	Documents []string `json:"documents" gorm:"serializer:json"`

	HasDebt         bool    `json:"hasDebt"`
	DebtValue       float64 `json:"debtValue,omitempty"`
	DebtInstitution string  `json:"debtInstitution,omitempty"`
	PersonalDebts   string  `json:"personalDebts,omitempty"`
	LegalProcesses  string  `json:"legalProcesses,omitempty"`

	IsRental    bool    `json:"isRental"`
	RentalValue float64 `json:"rentalValue,omitempty"`

	Individual *IndividualDetails `json:"individual,omitempty" gorm:"serializer:json"`
	Company    *CompanyDetails    `json:"company,omitempty" gorm:"serializer:json"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
