package gormrepo

import (
	"context"
	"errors"

	"ventia/internal/adapter/repo/gorm/model"
	"ventia/internal/app/ports"
	"ventia/internal/domain/records"

	"gorm.io/gorm"
)

type SaleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepo {
	return SaleRepo{db: db}
}

func (r SaleRepo) Create(ctx context.Context, s records.Sale) (records.Sale, error) {
	m := model.Sale{
		CustomerID: s.CustomerID,
		SoldAt:     s.SoldAt,
		Total:      s.Total,
		Status:     string(s.Status),
	}
	for _, item := range s.Items {
		m.Items = append(m.Items, model.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	if err := dbFromContext(ctx, r.db).Create(&m).Error; err != nil {
		return records.Sale{}, translateError(err)
	}
	return saleFromModel(m), nil
}

func (r SaleRepo) List(ctx context.Context) ([]records.Sale, error) {
	var rows []model.Sale
	err := dbFromContext(ctx, r.db).Preload("Items").Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]records.Sale, 0, len(rows))
	for _, m := range rows {
		out = append(out, saleFromModel(m))
	}
	return out, nil
}

func (r SaleRepo) GetByID(ctx context.Context, id int64) (records.Sale, error) {
	var m model.Sale
	err := dbFromContext(ctx, r.db).Preload("Items").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return records.Sale{}, ports.ErrNotFound
		}
		return records.Sale{}, err
	}
	return saleFromModel(m), nil
}

func saleFromModel(m model.Sale) records.Sale {
	s := records.Sale{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		SoldAt:     m.SoldAt,
		Total:      m.Total,
		Status:     records.SaleStatus(m.Status),
	}
	for _, item := range m.Items {
		s.Items = append(s.Items, records.SaleItem{
			ID:        item.ID,
			SaleID:    item.SaleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return s
}
