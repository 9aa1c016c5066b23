package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/timbermart/backend/internal/domain/catalog"
)

// ProductService handles catalog business operations. Reads load the full
// catalog and shape it in memory with ApplyCriteria; mutations go through
// the domain constructors so no invalid record ever reaches the store.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(
		req.Name, req.Category, req.Brand,
		req.Price, req.Unit, req.Description, req.ImageURL,
		req.Tags, req.Specs.toDomain(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the criteria, in the criteria's order
func (s *ProductService) List(ctx context.Context, criteria ListCriteria) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return ToProductResponses(ApplyCriteria(products, criteria)), nil
}

// ListCategories returns the distinct category names for filter menus
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return Categories(products), nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.ApplyPatch(req.toPatch()); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog. Existing order lines and
// session entries keep their snapshots of it.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, productID)
}
