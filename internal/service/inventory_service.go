package service

import (
	"context"

	"backoffice/internal/catalog"
	"backoffice/internal/models"
	"backoffice/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService handles product catalog operations
type InventoryService struct {
	catalog        *catalog.Catalog
	eventPublisher EventPublisher
	logger         *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(catalog *catalog.Catalog, eventPublisher EventPublisher) *InventoryService {
	return &InventoryService{
		catalog:        catalog,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateProductRequest represents a request to add a product
type CreateProductRequest struct {
	Name     string             `json:"name" binding:"required"`
	SKU      string             `json:"sku" binding:"required"`
	Category string             `json:"category" binding:"required"`
	Stock    *int               `json:"stock" binding:"required"`
	Price    *decimal.Decimal   `json:"price" binding:"required"`
	Status   models.StockStatus `json:"status,omitempty"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name     *string             `json:"name,omitempty"`
	SKU      *string             `json:"sku,omitempty"`
	Category *string             `json:"category,omitempty"`
	Stock    *int                `json:"stock,omitempty"`
	Price    *decimal.Decimal    `json:"price,omitempty"`
	Status   *models.StockStatus `json:"status,omitempty"`
}

// AddProduct adds a product to the catalog. When no status is given it is
// derived from the stock level.
func (s *InventoryService) AddProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.AddProduct")
	defer span.End()

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}

	if stock < 0 {
		return nil, ErrInvalidStock
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	status := req.Status
	if status == "" {
		status = models.ClassifyStock(stock)
	}

	product := s.catalog.Add(models.Product{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Stock:    stock,
		Price:    price,
		Status:   status,
	})

	util.ProductsAddedTotal.Inc()
	s.logger.Info("Product added",
		zap.String("product_id", product.ID),
		zap.String("sku", product.SKU))

	s.publishProductEvent(ctx, models.EventTypeProductAdded, product)
	return &product, nil
}

// UpdateProduct merges the given fields into a product. An unknown id is a no-op.
func (s *InventoryService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, bool, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.UpdateProduct")
	defer span.End()

	if req.Stock != nil && *req.Stock < 0 {
		return nil, false, ErrInvalidStock
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, false, ErrInvalidPrice
	}

	product, found := s.catalog.Update(id, models.ProductPatch{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    req.Price,
		Status:   req.Status,
	})
	if !found {
		util.MissingKeyOpsTotal.WithLabelValues("update_product").Inc()
		s.logger.Debug("Update of unknown product ignored", zap.String("product_id", id))
		return nil, false, nil
	}

	util.ProductsUpdatedTotal.Inc()
	s.publishProductEvent(ctx, models.EventTypeProductUpdated, product)
	return &product, true, nil
}

// DeleteProduct removes a product. Orders referencing it keep their copies.
func (s *InventoryService) DeleteProduct(ctx context.Context, id string) bool {
	ctx, span := util.StartSpan(ctx, "InventoryService.DeleteProduct")
	defer span.End()

	if !s.catalog.Remove(id) {
		util.MissingKeyOpsTotal.WithLabelValues("delete_product").Inc()
		s.logger.Debug("Delete of unknown product ignored", zap.String("product_id", id))
		return false
	}

	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.String("product_id", id))

	s.publishProductEvent(ctx, models.EventTypeProductDeleted, models.Product{ID: id})
	return true
}

// ListProducts returns the products matching query by name or SKU
func (s *InventoryService) ListProducts(ctx context.Context, query string) []models.Product {
	_, span := util.StartSpan(ctx, "InventoryService.ListProducts")
	defer span.End()

	return s.catalog.Filter(query)
}

// GetProduct retrieves a product by ID
func (s *InventoryService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, ok := s.catalog.Get(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *InventoryService) publishProductEvent(ctx context.Context, eventType string, p models.Product) {
	event := &models.ProductEvent{
		BaseEvent: newBaseEvent(eventType),
		ProductID: p.ID,
		SKU:       p.SKU,
		Stock:     p.Stock,
		Status:    p.Status,
	}
	logPublishError(s.logger, eventType, s.eventPublisher.PublishProductEvent(ctx, event))
}
