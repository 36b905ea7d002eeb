package product

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"github.com/tourdesk/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, superMW gin.HandlerFunc) {
	products := rg.Group("/products")
	products.GET("", h.list)
	products.GET("/:query", h.getByQuery)

	authed := products.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:query", h.update)
	authed.PATCH("/:query", h.update)
	authed.PUT("/:query/images", h.replaceImages)
	authed.PUT("/:query/itineraries", h.replaceItineraries)
	authed.PATCH("/:query/itineraries", h.patchItineraries)
	authed.PUT("/:query/price-options", h.replacePriceOptions)
	authed.PUT("/:query/tags", h.replaceTags)

	authed.DELETE("/:query", superMW, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	query := ListQuery{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		IsActive: boolQuery(c, "is_active"),
		Featured: boolQuery(c, "featured"),
	}
	// Anonymous callers only see active products; the is_active filter is
	// free for authenticated admins.
	if !middleware.IsAuthenticated(c) {
		active := true
		query.IsActive = &active
	}
	products, meta, err := h.svc.List(query, pagination.FromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, products, meta)
}

func (h *Handler) getByQuery(c *gin.Context) {
	p, err := h.svc.GetByQuery(c.Param("query"), middleware.IsAuthenticated(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("query"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("query")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) replaceImages(c *gin.Context) {
	var inputs []ImageInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.ReplaceImages(c.Param("query"), inputs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) replaceItineraries(c *gin.Context) {
	var inputs []ItineraryInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.ReplaceItineraries(c.Param("query"), inputs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) patchItineraries(c *gin.Context) {
	var inputs []ItineraryPatchInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.PatchItineraries(c.Param("query"), inputs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) replacePriceOptions(c *gin.Context) {
	var inputs []PriceOptionInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.ReplacePriceOptions(c.Param("query"), inputs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) replaceTags(c *gin.Context) {
	var input TagsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tags, err := h.svc.ReplaceTags(c.Param("query"), input.TagIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, tags)
}

func boolQuery(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
