package http

import (
	"errors"
	"net/http"

	"flickr-embed/domain/dto"
	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"
	"flickr-embed/interfaces/tag"
	"flickr-embed/usecase"

	"github.com/gin-gonic/gin"
)

type IEmbedHandler interface {
	RenderTag(c *gin.Context)
	Expand(c *gin.Context)
	Preview(c *gin.Context)
}

type EmbedHandler struct {
	registry     *tag.Registry
	embedUsecase usecase.IEmbedUsecase
	direction    model.TextDirection
}

// NewEmbedHandler serves tag rendering. direction applies when a request does
// not name one.
func NewEmbedHandler(registry *tag.Registry, embedUsecase usecase.IEmbedUsecase, direction model.TextDirection) IEmbedHandler {
	return &EmbedHandler{registry: registry, embedUsecase: embedUsecase, direction: direction}
}

// RenderTag renders one tag body through the handler registered for :name.
// Render failures come back as inline error markup with 200.
func (h *EmbedHandler) RenderTag(c *gin.Context) {
	var req dto.TagRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}

	name := c.Param("name")
	out, err := h.registry.Render(c.Request.Context(), name, tag.Invocation{
		Body:       req.Body,
		Attributes: req.Attributes,
		Direction:  h.directionOf(req.Dir),
	})
	if errors.Is(err, tag.ErrUnknownTag) {
		c.JSON(http.StatusNotFound, dto.Res{ResponseCode: "404", ResponseMessage: err.Error()})
		return
	}
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"tag": name, "error": err}).Error("Tag render failed")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.RenderResponse{HTML: out})
}

// Expand replaces every registered tag in a content fragment.
func (h *EmbedHandler) Expand(c *gin.Context) {
	var req dto.ExpandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}

	out := h.registry.Expand(c.Request.Context(), req.Content, h.directionOf(req.Dir))
	c.JSON(http.StatusOK, dto.RenderResponse{HTML: out})
}

// Preview renders /embed/:id?options=thumb|left|Caption as an HTML fragment.
func (h *EmbedHandler) Preview(c *gin.Context) {
	body := c.Param("id")
	if options := c.Query("options"); options != "" {
		body += "|" + options
	}

	out := h.embedUsecase.Render(c.Request.Context(), body, h.directionOf(c.Query("dir")))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (h *EmbedHandler) directionOf(dir string) model.TextDirection {
	if dir == "" {
		return h.direction
	}
	return model.ParseDirection(dir)
}
