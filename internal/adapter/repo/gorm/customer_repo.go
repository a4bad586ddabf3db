package gormrepo

import (
	"context"
	"errors"

	"ventia/internal/adapter/repo/gorm/model"
	"ventia/internal/app/ports"
	"ventia/internal/domain/records"

	"gorm.io/gorm"
)

type CustomerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepo {
	return CustomerRepo{db: db}
}

func (r CustomerRepo) Create(ctx context.Context, c records.Customer) (records.Customer, error) {
	m := model.Customer{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
	}
	if err := dbFromContext(ctx, r.db).Create(&m).Error; err != nil {
		return records.Customer{}, translateError(err)
	}
	c.ID = m.ID
	return c, nil
}

func (r CustomerRepo) List(ctx context.Context) ([]records.Customer, error) {
	var rows []model.Customer
	if err := dbFromContext(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]records.Customer, 0, len(rows))
	for _, m := range rows {
		out = append(out, customerFromModel(m))
	}
	return out, nil
}

func (r CustomerRepo) Search(ctx context.Context, query string) ([]records.Customer, error) {
	var rows []model.Customer
	pattern := "%" + query + "%"
	err := dbFromContext(ctx, r.db).
		Where("name ILIKE ? OR email ILIKE ?", pattern, pattern).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]records.Customer, 0, len(rows))
	for _, m := range rows {
		out = append(out, customerFromModel(m))
	}
	return out, nil
}

func (r CustomerRepo) GetByID(ctx context.Context, id int64) (records.Customer, error) {
	var m model.Customer
	if err := dbFromContext(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return records.Customer{}, ports.ErrNotFound
		}
		return records.Customer{}, err
	}
	return customerFromModel(m), nil
}

func (r CustomerRepo) Update(ctx context.Context, id int64, fields map[string]any) (records.Customer, error) {
	db := dbFromContext(ctx, r.db)
	res := db.Model(&model.Customer{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return records.Customer{}, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return records.Customer{}, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r CustomerRepo) Delete(ctx context.Context, id int64) error {
	res := dbFromContext(ctx, r.db).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func customerFromModel(m model.Customer) records.Customer {
	return records.Customer{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		RegisteredAt: m.RegisteredAt,
	}
}
