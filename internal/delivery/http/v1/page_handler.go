package v1

import (
	"net/http"

	"easein-studio-backend/internal/delivery/http/response"
	"easein-studio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pageUC domain.PageUsecase
}

func NewPageHandler(public *gin.RouterGroup, pageUC domain.PageUsecase) {
	handler := &PageHandler{pageUC: pageUC}

	pages := public.Group("/pages")
	{
		pages.GET("", handler.ListPages)
		pages.GET("/:name", handler.GetPage)
	}
}

// ListPages godoc
// @Summary      List Page Profiles
// @Description  Behavior options for every page served by the site script.
// @Tags         pages
// @Produce      json
// @Success      200  {object}  response.Response{data=[]page.Options}
// @Router       /v1/pages [get]
func (h *PageHandler) ListPages(c *gin.Context) {
	response.Success(c, http.StatusOK, "Pages retrieved", h.pageUC.List(c.Request.Context()))
}

// GetPage godoc
// @Summary      Get Page Profile
// @Tags         pages
// @Produce      json
// @Param        name  path      string  true  "Page name"
// @Success      200   {object}  response.Response{data=page.Options}
// @Failure      404   {object}  response.Response
// @Router       /v1/pages/{name} [get]
func (h *PageHandler) GetPage(c *gin.Context) {
	opts, err := h.pageUC.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Page retrieved", opts)
}
