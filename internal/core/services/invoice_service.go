package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// invoiceService records sales invoices, the receivable side of
// reconciliation. The open amount starts at the invoice total and is reduced
// only through matched payments.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepository
	auditSvc    portssvc.AuditSvc
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepository, auditSvc portssvc.AuditSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice records a new sales invoice with its open amount set to the total.
func (s *invoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: invoice total must be positive", apperrors.ErrValidation)
	}

	status := domain.InvoiceDraft
	if req.Status != "" {
		status = domain.InvoiceStatus(req.Status)
	}

	now := time.Now().UTC()
	invoice := domain.SalesInvoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      tenantID,
		InvoiceNumber: req.InvoiceNumber,
		CustomerName:  req.CustomerName,
		Status:        status,
		Total:         req.Total,
		OpenAmount:    req.Total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.auditSvc.Log(ctx, tenantID, creatorUserID, "invoice.create", "sales_invoice", invoice.InvoiceID, map[string]any{
		"invoiceNumber": invoice.InvoiceNumber,
		"total":         invoice.Total.String(),
	})

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.InvoiceNumber))
	return &invoice, nil
}

// GetInvoiceByID retrieves a single invoice.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.SalesInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, tenantID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

// ListOpenInvoices lists invoices with an open amount remaining.
func (s *invoiceService) ListOpenInvoices(ctx context.Context, tenantID string) ([]domain.SalesInvoice, error) {
	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.SalesInvoice{}
	}
	return invoices, nil
}
