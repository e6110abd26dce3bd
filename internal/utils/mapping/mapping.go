// Package mapping converts between storage model shapes and domain shapes.
package mapping

import (
	"github.com/workexpress/wx_backend/internal/core/domain"
	"github.com/workexpress/wx_backend/internal/models"
)

func ToModelCashClosure(c domain.CashClosure) models.CashClosure {
	return models.CashClosure{
		CashClosureID: c.CashClosureID,
		Status:        models.CashClosureStatus(c.Status),
		CreatedAt:     c.CreatedAt,
		ClosedAt:      c.ClosedAt,
		ClosedBy:      c.ClosedBy,
		TotalAmount:   c.TotalAmount,
		TotalCredit:   c.TotalCredit,
		TotalDebit:    c.TotalDebit,
	}
}

func ToDomainCashClosure(m models.CashClosure) domain.CashClosure {
	return domain.CashClosure{
		CashClosureID: m.CashClosureID,
		Status:        domain.CashClosureStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		ClosedAt:      m.ClosedAt,
		ClosedBy:      m.ClosedBy,
		TotalAmount:   m.TotalAmount,
		TotalCredit:   m.TotalCredit,
		TotalDebit:    m.TotalDebit,
	}
}

func ToDomainCashClosureSlice(ms []models.CashClosure) []domain.CashClosure {
	out := make([]domain.CashClosure, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainCashClosure(m))
	}
	return out
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		PaymentMethodID: m.PaymentMethodID,
		Amount:          m.Amount,
		Direction:       domain.TransactionDirection(m.Direction),
		CashClosureID:   m.CashClosureID,
		CreatedAt:       m.CreatedAt,
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainTransaction(m))
	}
	return out
}

func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		Name:            m.Name,
	}
}

func ToModelPackage(p domain.Package) models.Package {
	stages := make([]models.ShippingStage, 0, len(p.ShippingStages))
	for _, s := range p.ShippingStages {
		stages = append(stages, models.ShippingStage{
			Stage:     s.Stage,
			Status:    s.Status,
			Location:  s.Location,
			Photo:     s.Photo,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return models.Package{
		PackageID:        p.PackageID,
		TrackingNumber:   p.TrackingNumber,
		Status:           string(p.Status),
		Weight:           p.Weight,
		VolumetricWeight: p.VolumetricWeight,
		Dimensions: models.Dimensions{
			Length: p.Dimensions.Length,
			Width:  p.Dimensions.Width,
			Height: p.Dimensions.Height,
			Unit:   p.Dimensions.Unit,
		},
		ShippingStages: stages,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

func ToDomainPackage(m models.Package) domain.Package {
	stages := make([]domain.ShippingStage, 0, len(m.ShippingStages))
	for _, s := range m.ShippingStages {
		stages = append(stages, domain.ShippingStage{
			Stage:     s.Stage,
			Status:    s.Status,
			Location:  s.Location,
			Photo:     s.Photo,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return domain.Package{
		PackageID:        m.PackageID,
		TrackingNumber:   m.TrackingNumber,
		Status:           domain.PackageStatus(m.Status),
		Weight:           m.Weight,
		VolumetricWeight: m.VolumetricWeight,
		Dimensions: domain.Dimensions{
			Length: m.Dimensions.Length,
			Width:  m.Dimensions.Width,
			Height: m.Dimensions.Height,
			Unit:   m.Dimensions.Unit,
		},
		ShippingStages: stages,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func ToDomainOperator(m models.Operator) domain.Operator {
	return domain.Operator{
		OperatorID:   m.OperatorID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         domain.OperatorRole(m.Role),
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
