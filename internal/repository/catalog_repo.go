package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	DB *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// GetProductInfo returns the raw product info row. The cart snapshots its
// price at add time, so this is the only place the core reads the catalog.
func (r *CatalogRepository) GetProductInfo(ctx context.Context, id int64) (*model.ProductInfo, error) {
	var pi model.ProductInfo
	query := `SELECT productinfoid, product_id, shop_id, name, quantity, price, price_rrc
			FROM product_infos WHERE productinfoid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&pi.ProductInfoID, &pi.ProductID, &pi.ShopID, &pi.Name, &pi.Quantity, &pi.Price, &pi.PriceRRC); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product info", services.ErrNotFound)
		}
		return nil, err
	}
	return &pi, nil
}

// List returns product info views, optionally filtered by a case-insensitive
// substring match on the product name.
func (r *CatalogRepository) List(ctx context.Context, search string) ([]model.ProductInfoView, error) {
	query := `
		SELECT pi.productinfoid, p.name, c.name, s.name, pi.price, pi.quantity
		FROM product_infos pi
		JOIN products p ON p.productid = pi.product_id
		JOIN categories c ON c.categoryid = p.category_id
		JOIN shops s ON s.shopid = pi.shop_id
	`
	args := []any{}
	if search != "" {
		query += ` WHERE p.name ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY pi.productinfoid`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []model.ProductInfoView{}
	ids := []int64{}
	for rows.Next() {
		var v model.ProductInfoView
		if err := rows.Scan(&v.ProductInfoID, &v.Product, &v.Category, &v.Shop, &v.Price, &v.Quantity); err != nil {
			return nil, err
		}
		v.Parameters = []model.ParameterValue{}
		views = append(views, v)
		ids = append(ids, v.ProductInfoID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return views, nil
	}

	params, err := r.parametersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		if pv, ok := params[views[i].ProductInfoID]; ok {
			views[i].Parameters = pv
		}
	}
	return views, nil
}

// Get returns a single product info view with its parameters.
func (r *CatalogRepository) Get(ctx context.Context, id int64) (*model.ProductInfoView, error) {
	var v model.ProductInfoView
	query := `
		SELECT pi.productinfoid, p.name, c.name, s.name, pi.price, pi.quantity
		FROM product_infos pi
		JOIN products p ON p.productid = pi.product_id
		JOIN categories c ON c.categoryid = p.category_id
		JOIN shops s ON s.shopid = pi.shop_id
		WHERE pi.productinfoid=$1
	`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&v.ProductInfoID, &v.Product, &v.Category, &v.Shop, &v.Price, &v.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product info", services.ErrNotFound)
		}
		return nil, err
	}
	v.Parameters = []model.ParameterValue{}
	params, err := r.parametersFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if pv, ok := params[id]; ok {
		v.Parameters = pv
	}
	return &v, nil
}

func (r *CatalogRepository) parametersFor(ctx context.Context, productInfoIDs []int64) (map[int64][]model.ParameterValue, error) {
	query := `
		SELECT pp.product_info_id, pa.name, pp.value
		FROM product_parameters pp
		JOIN parameters pa ON pa.parameterid = pp.parameter_id
		WHERE pp.product_info_id = ANY($1)
		ORDER BY pa.name
	`
	rows, err := r.DB.Query(ctx, query, productInfoIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]model.ParameterValue{}
	for rows.Next() {
		var id int64
		var pv model.ParameterValue
		if err := rows.Scan(&id, &pv.Name, &pv.Value); err != nil {
			return nil, err
		}
		out[id] = append(out[id], pv)
	}
	return out, rows.Err()
}
