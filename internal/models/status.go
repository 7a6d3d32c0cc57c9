package models

// Status is the lifecycle state of an operation.
type Status string

const (
	StatusPreAnalysis    Status = "Pré-Análise"
	StatusAnalysis       Status = "Análise"
	StatusCreditAnalysis Status = "Análise de Crédito"
	StatusLegalAnalysis  Status = "Análise Jurídica e Laudo de Engenharia"
	StatusCommittee      Status = "Comitê"
	StatusCreditApproved Status = "Crédito Aprovado"
	StatusContractSigned Status = "Contrato Assinado"
	StatusContractFiled  Status = "Contrato Registrado"
	StatusRefused        Status = "Recusada"
	// Legacy values kept for records created before the pipeline statuses.
	StatusInProgress Status = "Em andamento"
	StatusConcluded  Status = "Concluída"
)

// DefaultStatus is assigned to newly created operations.
const DefaultStatus = StatusPreAnalysis

var validStatuses = map[Status]bool{
	StatusPreAnalysis:    true,
	StatusAnalysis:       true,
	StatusCreditAnalysis: true,
	StatusLegalAnalysis:  true,
	StatusCommittee:      true,
	StatusCreditApproved: true,
	StatusContractSigned: true,
	StatusContractFiled:  true,
	StatusRefused:        true,
	StatusInProgress:     true,
	StatusConcluded:      true,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return validStatuses[s]
}
