package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"hotel-nepal/models"
	"hotel-nepal/store"
	"hotel-nepal/validation"
)

// ProductRequest is bound from JSON or from multipart form fields. Image, when
// set in a JSON body, is a base64 data URL.
type ProductRequest struct {
	Name        string   `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Description string   `json:"description" form:"description"`
	Image       string   `json:"image" form:"-"`
}

type ProductPatchRequest struct {
	Name        *string  `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Description *string  `json:"description" form:"description"`
	Image       string   `json:"image" form:"-"`
}

type ProductService struct {
	products store.ProductRepository
	images   *ImageService
	log      zerolog.Logger
}

func NewProductService(products store.ProductRepository, images *ImageService, l zerolog.Logger) *ProductService {
	return &ProductService{products: products, images: images, log: l.With().Str("service", "products").Logger()}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Create stores the image first so a failed insert can take it back out.
func (s *ProductService) Create(ctx context.Context, req ProductRequest, upload *multipart.FileHeader) (*models.Product, error) {
	if verr := validation.Product(req.Name, req.Price); verr != nil {
		return nil, verr
	}
	image, err := s.storeImage(req.Image, upload)
	if err != nil {
		return nil, err
	}

	p := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       *req.Price,
		Description: req.Description,
		Image:       image,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		s.discard(image)
		return nil, err
	}
	return &p, nil
}

// Update replaces the image when a new one is sent; the store removes the
// old file.
func (s *ProductService) Update(ctx context.Context, id uint, req ProductPatchRequest, upload *multipart.FileHeader) (*models.Product, error) {
	if verr := validation.ProductPatch(req.Name, req.Price); verr != nil {
		return nil, verr
	}
	image, err := s.storeImage(req.Image, upload)
	if err != nil {
		return nil, err
	}

	u := models.ProductUpdate{Name: req.Name, Price: req.Price, Description: req.Description}
	if image != "" {
		u.Image = &image
	}
	p, err := s.products.Update(ctx, id, u)
	if errors.Is(err, store.ErrFileCleanup) {
		s.log.Warn().Err(err).Uint("product_id", id).Msg("old product image not removed")
		return p, nil
	}
	if err != nil {
		s.discard(image)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete returns once both the row and its image file are gone.
func (s *ProductService) Delete(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if errors.Is(err, store.ErrFileCleanup) {
		s.log.Warn().Err(err).Uint("product_id", id).Msg("product image not removed")
		return p, nil
	}
	return p, err
}

func (s *ProductService) storeImage(b64 string, upload *multipart.FileHeader) (string, error) {
	switch {
	case upload != nil:
		return s.images.Save(upload)
	case strings.TrimSpace(b64) != "":
		return s.images.SaveBase64(b64)
	}
	return "", nil
}

func (s *ProductService) discard(image string) {
	if image == "" {
		return
	}
	if err := s.images.Remove(image); err != nil {
		s.log.Warn().Err(err).Str("image", image).Msg("remove unused image failed")
	}
}
