package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aura-storefront/server/internal/shop/catalog"
)

func (h *handler) listProducts(c *gin.Context) {
	page, err := h.svc.Catalog.List(c.Request.Context(), catalog.Query{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     queryInt(c, "page"),
		PerPage:  queryInt(c, "per_page"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("X-WP-Total", strconv.Itoa(page.Total))
	c.JSON(http.StatusOK, page)
}

func (h *handler) searchProducts(c *gin.Context) {
	products, err := h.svc.Catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

// getProduct resolves by slug, then by numeric id.
func (h *handler) getProduct(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	p, err := h.svc.Catalog.BySlug(ctx, slug)
	if errors.Is(err, catalog.ErrProductNotFound) {
		if id, perr := strconv.ParseInt(slug, 10, 64); perr == nil {
			p, err = h.svc.Catalog.ByID(ctx, id)
		}
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":           p,
		"default_selection": catalog.DefaultSelection(p),
	})
}

func (h *handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.svc.Catalog.Categories()})
}

func (h *handler) listPosts(c *gin.Context) {
	posts, err := h.svc.Blog.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// getPost serves ?fallback=true by returning the featured post for unknown
// slugs.
func (h *handler) getPost(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	get := h.svc.Blog.BySlug
	if fallback, _ := strconv.ParseBool(c.Query("fallback")); fallback {
		get = h.svc.Blog.Resolve
	}
	post, err := get(ctx, slug)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// queryInt returns 0 for missing or malformed values so services apply
// their defaults.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
