package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"petshop-backend/internal/model"
	"petshop-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

const productColumns = `id, name, size, pet_type, price, color, image, description, created_at, updated_at`

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *productRepository {
	return &productRepository{db}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO products (name, size, pet_type, price, color, image, description) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Size, p.PetType, p.Price, p.Color, p.Image, p.Description)
	if err != nil {
		util.Logger.Error("创建商品失败", zap.Error(err))
		return fmt.Errorf("failed to create product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get product id: %w", err)
	}
	p.ID = int(id)
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// FindByFilter 按条件组合查询，未提供的条件不参与过滤
func (r *productRepository) FindByFilter(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	query, args := buildProductFilterQuery(filter)
	util.Logger.Debug("商品筛选", zap.String("query", query), zap.Any("args", args))

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		util.Logger.Error("商品筛选失败", zap.Error(err))
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer rows.Close()

	products := []*model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func buildProductFilterQuery(filter model.ProductFilter) (string, []interface{}) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`

	var args []interface{}
	var conditions []string

	if len(filter.Sizes) > 0 {
		conditions = append(conditions, "size IN ("+placeholders(len(filter.Sizes))+")")
		for _, s := range filter.Sizes {
			args = append(args, s)
		}
	}

	if len(filter.PetTypes) > 0 {
		conditions = append(conditions, "pet_type IN ("+placeholders(len(filter.PetTypes))+")")
		for _, p := range filter.PetTypes {
			args = append(args, p)
		}
	}

	if len(filter.Colors) > 0 {
		conditions = append(conditions, "LOWER(color) IN ("+placeholders(len(filter.Colors))+")")
		for _, c := range filter.Colors {
			args = append(args, strings.ToLower(c))
		}
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, "LOWER(name) LIKE ?")
		args = append(args, "%"+escapeLike(strings.ToLower(search))+"%")
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		UPDATE products
		SET name = ?, size = ?, pet_type = ?, price = ?, color = ?, image = ?, description = ?
		WHERE id = ?`,
		p.Name, p.Size, p.PetType, p.Price, p.Color, p.Image, p.Description, p.ID)
	if err != nil {
		util.Logger.Error("更新商品失败", zap.Error(err), zap.Int("product_id", p.ID))
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var description sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Size, &p.PetType, &p.Price, &p.Color, &p.Image,
		&description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}
