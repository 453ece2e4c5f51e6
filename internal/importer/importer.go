// Package importer loads shop price lists from YAML straight into the
// catalog tables. It is an offline tool: the API server only ever reads the
// catalog and never triggers an import.
package importer

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money decodes YAML scalars (ints, floats, quoted strings) into exact
// decimals, bypassing float64 on the way in.
type Money struct {
	decimal.Decimal
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", value.Value, err)
	}
	m.Decimal = d
	return nil
}

// ParamValue keeps numeric and boolean parameter scalars as their literal
// text instead of failing the decode.
type ParamValue string

func (v *ParamValue) UnmarshalYAML(value *yaml.Node) error {
	*v = ParamValue(value.Value)
	return nil
}

type Category struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type Good struct {
	ID         int64                 `yaml:"id"`
	Category   int64                 `yaml:"category"`
	Name       string                `yaml:"name"`
	Model      string                `yaml:"model"`
	Price      Money                 `yaml:"price"`
	PriceRRC   Money                 `yaml:"price_rrc"`
	Quantity   int                   `yaml:"quantity"`
	Parameters map[string]ParamValue `yaml:"parameters"`
}

// File is the price-list document: one shop, its categories and goods.
type File struct {
	Shop       string     `yaml:"shop"`
	Categories []Category `yaml:"categories"`
	Goods      []Good     `yaml:"goods"`
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if f.Shop == "" {
		return nil, fmt.Errorf("yaml document must name a shop")
	}
	return &f, nil
}

func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Result reports what a run touched.
type Result struct {
	Shop     string
	Imported int
	Skipped  int
}

// Run upserts the whole document in one transaction. Goods referencing an
// unknown category are skipped with a warning, matching the tolerant
// behavior stores expect from repeated price-list uploads.
func Run(ctx context.Context, db *pgxpool.Pool, f *File) (*Result, error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var shopID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO shops (name, url) VALUES ($1, NULL)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING shopid
	`, f.Shop).Scan(&shopID)
	if err != nil {
		return nil, fmt.Errorf("upsert shop: %w", err)
	}

	known := map[int64]bool{}
	for _, c := range f.Categories {
		_, err = tx.Exec(ctx, `
			INSERT INTO categories (categoryid, name) VALUES ($1, $2)
			ON CONFLICT (categoryid) DO NOTHING
		`, c.ID, c.Name)
		if err != nil {
			return nil, fmt.Errorf("upsert category %d: %w", c.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO category_shops (category_id, shop_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, c.ID, shopID)
		if err != nil {
			return nil, fmt.Errorf("link category %d: %w", c.ID, err)
		}
		known[c.ID] = true
	}

	res := &Result{Shop: f.Shop}
	for _, g := range f.Goods {
		if !known[g.Category] {
			log.Printf("category %d not found, skipping good %q", g.Category, g.Name)
			res.Skipped++
			continue
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO products (productid, name, category_id) VALUES ($1, $2, $3)
			ON CONFLICT (productid) DO NOTHING
		`, g.ID, g.Name, g.Category)
		if err != nil {
			return nil, fmt.Errorf("upsert product %d: %w", g.ID, err)
		}

		var productInfoID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO product_infos (product_id, shop_id, name, quantity, price, price_rrc)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (product_id, shop_id) DO UPDATE
			SET name = EXCLUDED.name, quantity = EXCLUDED.quantity,
			    price = EXCLUDED.price, price_rrc = EXCLUDED.price_rrc
			RETURNING productinfoid
		`, g.ID, shopID, g.Model, g.Quantity, g.Price.Decimal, g.PriceRRC.Decimal).Scan(&productInfoID)
		if err != nil {
			return nil, fmt.Errorf("upsert product info %d: %w", g.ID, err)
		}

		// map iteration order is random; keep inserts deterministic
		names := make([]string, 0, len(g.Parameters))
		for name := range g.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			var parameterID int64
			err = tx.QueryRow(ctx, `
				INSERT INTO parameters (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING parameterid
			`, name).Scan(&parameterID)
			if err != nil {
				return nil, fmt.Errorf("upsert parameter %q: %w", name, err)
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO product_parameters (product_info_id, parameter_id, value)
				VALUES ($1, $2, $3)
				ON CONFLICT (product_info_id, parameter_id) DO UPDATE SET value = EXCLUDED.value
			`, productInfoID, parameterID, string(g.Parameters[name]))
			if err != nil {
				return nil, fmt.Errorf("upsert product parameter %q: %w", name, err)
			}
		}
		res.Imported++
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}
