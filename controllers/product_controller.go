package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-nepal/services"
	"hotel-nepal/utils"
)

type ProductController struct {
	ProductSvc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{ProductSvc: svc}
}

// bindProduct reads either a JSON body or a multipart form with an optional
// "image" file part.
func bindProduct(c *gin.Context, dst any) (*multipart.FileHeader, bool) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, bindJSON(c, dst)
	}
	if err := c.ShouldBind(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid form data")
		return nil, false
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid form data")
		return nil, false
	}
	return fh, true
}

// CreateProduct (POST /products/create_product)
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	fh, ok := bindProduct(c, &req)
	if !ok {
		return
	}
	product, err := ctrl.ProductSvc.Create(c.Request.Context(), req, fh)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Product created successfully", "product", product)
}

// ShowProducts (GET /products/show_product)
func (ctrl *ProductController) ShowProducts(c *gin.Context) {
	products, err := ctrl.ProductSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := ctrl.ProductSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.ProductPatchRequest
	fh, ok := bindProduct(c, &req)
	if !ok {
		return
	}
	product, err := ctrl.ProductSvc.Update(c.Request.Context(), id, req, fh)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Product updated successfully", "product", product)
}

func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := ctrl.ProductSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Product deleted successfully", "product", product)
}
