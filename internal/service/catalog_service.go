package service

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/internal/apperr"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService composes product and variant rows into
// product-with-variants views and owns all admin catalog mutations.
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ProductRequest is the full product payload used by create and update.
// On update, the variant list is reconciled against the stored rows by id.
type ProductRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Price       float64        `json:"price"`
	Image       *string        `json:"image"`
	Stock       int            `json:"stock"`
	Variants    []VariantInput `json:"variants"`
}

// ListFilter selects which products a listing returns and in what order.
type ListFilter struct {
	InStockOnly bool
	Sort        store.ProductSort
	Limit       int
}

// ListProducts returns products with their variants attached. One variant
// query per product; acceptable at catalog scale.
func (s *CatalogService) ListProducts(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.store.ListProducts(ctx, filter.InStockOnly, filter.Sort, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	for i := range products {
		variants, err := s.store.ListVariantsByProduct(ctx, products[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load variants for product %d: %w", products[i].ID, err)
		}
		products[i].Variants = variants
	}

	return products, nil
}

// GetProductWithVariants returns a single product with its variants
// ordered by name.
func (s *CatalogService) GetProductWithVariants(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProductWithVariants")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	variants, err := s.store.ListVariantsByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	product.Variants = variants

	return product, nil
}

// CreateProduct validates the payload, inserts the product row and any
// variants, and returns the stored view.
func (s *CatalogService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		util.ProductWritesFailedTotal.WithLabelValues("create").Inc()
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	for _, v := range req.Variants {
		variant := &models.Variant{
			ProductID:  product.ID,
			Name:       strings.TrimSpace(v.Name),
			ExtraPrice: v.ExtraPrice,
			Stock:      v.Stock,
		}
		if err := s.store.CreateVariant(ctx, variant); err != nil {
			return nil, fmt.Errorf("failed to create variant: %w", err)
		}
		product.Variants = append(product.Variants, *variant)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("variants", len(product.Variants)))

	return product, nil
}

// UpdateProduct applies a full product payload. Stored variants absent from
// the payload are deleted, entries with an id are updated in place, entries
// without one are inserted.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *ProductRequest) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	if err := validateProductRequest(req); err != nil {
		return err
	}

	product := &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		if !apperr.IsNotFound(err) {
			util.ProductWritesFailedTotal.WithLabelValues("update").Inc()
		}
		return err
	}

	existing, err := s.store.ListVariantIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load variant ids: %w", err)
	}

	diff := DiffVariants(existing, req.Variants)

	for _, variantID := range diff.Delete {
		if err := s.store.DeleteVariant(ctx, variantID); err != nil {
			return fmt.Errorf("failed to delete variant %d: %w", variantID, err)
		}
	}

	for _, v := range diff.Update {
		variant := &models.Variant{
			ID:         *v.ID,
			ProductID:  id,
			Name:       strings.TrimSpace(v.Name),
			ExtraPrice: v.ExtraPrice,
			Stock:      v.Stock,
		}
		if err := s.store.UpdateVariant(ctx, variant); err != nil {
			return err
		}
	}

	for _, v := range diff.Insert {
		variant := &models.Variant{
			ProductID:  id,
			Name:       strings.TrimSpace(v.Name),
			ExtraPrice: v.ExtraPrice,
			Stock:      v.Stock,
		}
		if err := s.store.CreateVariant(ctx, variant); err != nil {
			return fmt.Errorf("failed to insert variant: %w", err)
		}
	}

	s.logger.Info("Product updated",
		zap.Int64("product_id", id),
		zap.Int("variants_deleted", len(diff.Delete)),
		zap.Int("variants_updated", len(diff.Update)),
		zap.Int("variants_inserted", len(diff.Insert)))

	return nil
}

// DeleteProduct removes a product and, through the cascade, its variants.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// Stats returns the admin dashboard counters.
func (s *CatalogService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.store.Stats(ctx)
}

// validateProductRequest applies the catalog input constraints: non-empty
// names, non-negative prices and stock.
func validateProductRequest(req *ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.Validationf("product name is required")
	}
	if req.Price < 0 {
		return apperr.Validationf("product price must not be negative")
	}
	if req.Stock < 0 {
		return apperr.Validationf("product stock must not be negative")
	}

	for i, v := range req.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return apperr.Validationf("variant %d: name is required", i+1)
		}
		if v.ExtraPrice < 0 {
			return apperr.Validationf("variant %q: extra price must not be negative", v.Name)
		}
		if v.Stock < 0 {
			return apperr.Validationf("variant %q: stock must not be negative", v.Name)
		}
	}

	return nil
}
