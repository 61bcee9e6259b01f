package service

import (
	"context"
	"petshop-backend/internal/cache"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

type ProductServiceInterface interface {
	FindProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	CreateProduct(ctx context.Context, input *model.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int, input *model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type ProductService struct {
	productRepo interfaces.ProductRepository
	cache       cache.ProductCache
}

func NewProductService(productRepo interfaces.ProductRepository, productCache cache.ProductCache) *ProductService {
	if productCache == nil {
		productCache = cache.NoopProductCache{}
	}
	return &ProductService{productRepo: productRepo, cache: productCache}
}

var _ ProductServiceInterface = (*ProductService)(nil)

var validSizes = map[model.Size]bool{
	model.SizeXS: true, model.SizeS: true, model.SizeM: true, model.SizeL: true, model.SizeXL: true,
}

var validPetTypes = map[model.PetType]bool{
	model.PetTypeDog: true, model.PetTypeCat: true,
}

// FindProducts 空条件返回全部商品
func (s *ProductService) FindProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	normalized, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByFilter(ctx, normalized)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to filter products", err)
	}
	return products, nil
}

func normalizeFilter(filter model.ProductFilter) (model.ProductFilter, error) {
	var out model.ProductFilter
	for _, raw := range filter.Sizes {
		size := model.Size(strings.ToUpper(strings.TrimSpace(string(raw))))
		if size == "" {
			continue
		}
		if !validSizes[size] {
			return out, errors.Newf(errors.ErrValidation, "Invalid size: %s", raw)
		}
		out.Sizes = append(out.Sizes, size)
	}
	for _, raw := range filter.PetTypes {
		pet := model.PetType(strings.ToUpper(strings.TrimSpace(string(raw))))
		if pet == "" {
			continue
		}
		if !validPetTypes[pet] {
			return out, errors.Newf(errors.ErrValidation, "Invalid pet type: %s", raw)
		}
		out.PetTypes = append(out.PetTypes, pet)
	}
	for _, raw := range filter.Colors {
		if color := strings.TrimSpace(raw); color != "" {
			out.Colors = append(out.Colors, color)
		}
	}
	out.Search = strings.TrimSpace(filter.Search)
	return out, nil
}

// GetProduct 优先读缓存，缓存故障时直接查库
func (s *ProductService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		util.Logger.Warn("读取商品缓存失败", zap.Error(err), zap.Int("product_id", id))
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find product", err)
	}
	if product == nil {
		return nil, errors.Newf(errors.ErrResourceNotFound, "Product with id %d not found", id)
	}

	if err := s.cache.Set(ctx, product); err != nil {
		util.Logger.Warn("写入商品缓存失败", zap.Error(err), zap.Int("product_id", id))
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	if input.Price.IsNegative() {
		return nil, errors.Validation("Price must not be negative")
	}
	product := &model.Product{}
	applyProductInput(product, input)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create product", err)
	}
	util.Logger.Info("商品创建成功", zap.Int("product_id", product.ID))
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, input *model.ProductInput) (*model.Product, error) {
	if input.Price.IsNegative() {
		return nil, errors.Validation("Price must not be negative")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find product", err)
	}
	if product == nil {
		return nil, errors.Newf(errors.ErrResourceNotFound, "Product with id %d not found", id)
	}

	applyProductInput(product, input)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update product", err)
	}
	s.invalidate(ctx, id)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete product", err)
	}
	if !deleted {
		return errors.Newf(errors.ErrResourceNotFound, "Product with id %d not found", id)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id int) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		util.Logger.Warn("清除商品缓存失败", zap.Error(err), zap.Int("product_id", id))
	}
}

func applyProductInput(p *model.Product, in *model.ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Size = in.Size
	p.PetType = in.PetType
	p.Price = in.Price
	p.Color = strings.TrimSpace(in.Color)
	p.Image = in.Image
	p.Description = in.Description
}
