package mapping

import (
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopledger/shop_ledger_app/internal/models"
)

// ToModelBankStatement converts a domain BankStatement to a model BankStatement
func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:      d.StatementID,
		AccountID:        d.AccountID,
		StatementDate:    d.StatementDate,
		Description:      d.Description,
		Reference:        d.Reference,
		Amount:           d.Amount,
		Direction:        string(d.Direction),
		IsReconciled:     d.IsReconciled,
		ReconciledLineID: d.ReconciledLineID,
		ReconciledAt:     d.ReconciledAt,
		ReconciledBy:     d.ReconciledBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankStatement converts a model BankStatement to a domain BankStatement
func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:      m.StatementID,
		AccountID:        m.AccountID,
		StatementDate:    m.StatementDate,
		Description:      m.Description,
		Reference:        m.Reference,
		Amount:           m.Amount,
		Direction:        domain.StatementDirection(m.Direction),
		IsReconciled:     m.IsReconciled,
		ReconciledLineID: m.ReconciledLineID,
		ReconciledAt:     m.ReconciledAt,
		ReconciledBy:     m.ReconciledBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankStatementSlice converts a slice of model statements to domain statements
func ToDomainBankStatementSlice(ms []models.BankStatement) []domain.BankStatement {
	ds := make([]domain.BankStatement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankStatement(m)
	}
	return ds
}
