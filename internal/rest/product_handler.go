package rest

import (
	"net/http"
	"strconv"

	"minecart-be/internal/product"
	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type newProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Kind        string  `json:"kind" binding:"required"`
	Price       string  `json:"price" binding:"required"`
	ImageURL    *string `json:"image_url"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url"`
	Active      *bool   `json:"active"`
}

func (h *handlers) listProducts(c *gin.Context) {
	filter := product.ListFilter{
		Limit: queryInt(c, "limit", 20),
		Page:  queryInt(c, "page", 1),
	}
	if v := c.Query("kind"); v != "" {
		k := product.Kind(v)
		filter.Kind = &k
	}
	if v := c.Query("q"); v != "" {
		filter.Search = &v
	}

	products, err := h.d.Products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct accepts a numeric id or a slug in the same path segment.
func (h *handlers) getProduct(c *gin.Context) {
	raw := c.Param("id")

	var (
		p   *product.Product
		err error
	)
	if id, convErr := strconv.ParseUint(raw, 10, 32); convErr == nil {
		p, err = h.d.Products.GetByID(c.Request.Context(), uint(id))
	} else {
		p, err = h.d.Products.GetBySlug(c.Request.Context(), raw)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createProduct(c *gin.Context) {
	var req newProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sellerID, _ := utils.GetUserIDFromContext(c.Request.Context())
	p, err := h.d.Products.Create(c.Request.Context(), sellerID, product.NewProductInput{
		Name:        req.Name,
		Description: req.Description,
		Kind:        product.Kind(req.Kind),
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sellerID, _ := utils.GetUserIDFromContext(c.Request.Context())
	p, err := h.d.Products.Update(c.Request.Context(), sellerID, id, product.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// pathID parses a numeric path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, err
	}
	return uint(id), nil
}
