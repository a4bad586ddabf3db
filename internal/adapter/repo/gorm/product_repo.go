package gormrepo

import (
	"context"
	"errors"

	"ventia/internal/adapter/repo/gorm/model"
	"ventia/internal/app/ports"
	"ventia/internal/domain/records"

	"gorm.io/gorm"
)

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return ProductRepo{db: db}
}

func (r ProductRepo) Create(ctx context.Context, p records.Product) (records.Product, error) {
	m := model.Product{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
	if err := dbFromContext(ctx, r.db).Create(&m).Error; err != nil {
		return records.Product{}, translateError(err)
	}
	p.ID = m.ID
	return p, nil
}

func (r ProductRepo) List(ctx context.Context) ([]records.Product, error) {
	var rows []model.Product
	if err := dbFromContext(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]records.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, productFromModel(m))
	}
	return out, nil
}

func (r ProductRepo) Search(ctx context.Context, query string) ([]records.Product, error) {
	var rows []model.Product
	err := dbFromContext(ctx, r.db).
		Where("name ILIKE ?", "%"+query+"%").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]records.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, productFromModel(m))
	}
	return out, nil
}

func (r ProductRepo) GetByID(ctx context.Context, id int64) (records.Product, error) {
	var m model.Product
	if err := dbFromContext(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return records.Product{}, ports.ErrNotFound
		}
		return records.Product{}, err
	}
	return productFromModel(m), nil
}

func (r ProductRepo) Update(ctx context.Context, id int64, fields map[string]any) (records.Product, error) {
	db := dbFromContext(ctx, r.db)
	res := db.Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return records.Product{}, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return records.Product{}, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r ProductRepo) Delete(ctx context.Context, id int64) error {
	res := dbFromContext(ctx, r.db).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func productFromModel(m model.Product) records.Product {
	return records.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		CreatedAt:   m.CreatedAt,
	}
}
