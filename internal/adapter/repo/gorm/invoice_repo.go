package gormrepo

import (
	"context"
	"errors"

	"ventia/internal/adapter/repo/gorm/model"
	"ventia/internal/app/ports"
	"ventia/internal/domain/records"

	"gorm.io/gorm"
)

type InvoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepo {
	return InvoiceRepo{db: db}
}

func (r InvoiceRepo) Create(ctx context.Context, inv records.Invoice) (records.Invoice, error) {
	m := model.Invoice{
		SaleID:   inv.SaleID,
		Number:   inv.Number,
		IssuedAt: inv.IssuedAt,
		Status:   string(inv.Status),
		Total:    inv.Total,
	}
	if err := dbFromContext(ctx, r.db).Create(&m).Error; err != nil {
		return records.Invoice{}, translateError(err)
	}
	inv.ID = m.ID
	return inv, nil
}

func (r InvoiceRepo) List(ctx context.Context) ([]records.Invoice, error) {
	var rows []model.Invoice
	if err := dbFromContext(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]records.Invoice, 0, len(rows))
	for _, m := range rows {
		out = append(out, invoiceFromModel(m))
	}
	return out, nil
}

func (r InvoiceRepo) GetBySaleID(ctx context.Context, saleID int64) (records.Invoice, error) {
	var m model.Invoice
	err := dbFromContext(ctx, r.db).Where("sale_id = ?", saleID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return records.Invoice{}, ports.ErrNotFound
		}
		return records.Invoice{}, err
	}
	return invoiceFromModel(m), nil
}

func invoiceFromModel(m model.Invoice) records.Invoice {
	return records.Invoice{
		ID:       m.ID,
		SaleID:   m.SaleID,
		Number:   m.Number,
		IssuedAt: m.IssuedAt,
		Status:   records.InvoiceStatus(m.Status),
		Total:    m.Total,
	}
}
