package mapping

import (
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopledger/shop_ledger_app/internal/models"
)

// ToDomainExercise converts a model Exercise to a domain Exercise
func ToDomainExercise(m models.Exercise) domain.Exercise {
	return domain.Exercise{
		ExerciseID:  m.ExerciseID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDaily converts a model Daily to a domain Daily
func ToDomainDaily(m models.Daily) domain.Daily {
	return domain.Daily{
		DailyID:     m.DailyID,
		ExerciseID:  m.ExerciseID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExerciseClosing converts a model ExerciseClosing to a domain ExerciseClosing
func ToDomainExerciseClosing(m models.ExerciseClosing) domain.ExerciseClosing {
	return domain.ExerciseClosing{
		ClosingID:      m.ClosingID,
		ExerciseID:     m.ExerciseID,
		ClosedAt:       m.ClosedAt,
		ClosedBy:       m.ClosedBy,
		ResultAmount:   m.ResultAmount,
		ClosingEntryID: m.ClosingEntryID,
		OpeningEntryID: m.OpeningEntryID,
		NewExerciseID:  m.NewExerciseID,
		Notes:          m.Notes,
	}
}
