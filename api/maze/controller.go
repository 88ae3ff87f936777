package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RenderTimeout bounds a single render request.
const RenderTimeout = 10 * time.Second

// MazeController serves maze generation, rendering and sharing.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) *MazeController {
	return &MazeController{
		mazeService: ms,
	}
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("/:ID", mc.get)
		mazes.GET("/:ID/render", mc.render)
		mazes.POST("/:ID/share", mc.share)
	}
}

// RegisterProtected registers routes that need a share token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	shared := route.Group("/shared")
	{
		shared.GET("", mc.sharedInfo)
		shared.GET("/render", mc.sharedRender)
	}
}

// create handles maze generation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	record, err := mc.mazeService.Create(i.CreateMazeRequest{
		Size:     request.Size,
		Seed:     request.Seed,
		Strategy: request.Strategy,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record))
}

// get returns the stored description of a maze.
func (mc *MazeController) get(ctx *gin.Context) {
	record, ok := mc.recordFromPath(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(record))
}

// render draws a maze in the format named by the query.
func (mc *MazeController) render(ctx *gin.Context) {
	record, ok := mc.recordFromPath(ctx)
	if !ok {
		return
	}
	mc.writeRender(ctx, record)
}

// share issues a token for a maze.
func (mc *MazeController) share(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	token, err := mc.mazeService.Share(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &ShareResponse{Token: token})
}

// sharedInfo returns the maze named by the share token.
func (mc *MazeController) sharedInfo(ctx *gin.Context) {
	record, ok := sharedRecord(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(record))
}

// sharedRender draws the maze named by the share token.
func (mc *MazeController) sharedRender(ctx *gin.Context) {
	record, ok := sharedRecord(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	mc.writeRender(ctx, record)
}

func (mc *MazeController) writeRender(ctx *gin.Context, record *catalog.Record) {
	format, err := render.ParseFormat(ctx.Query("format"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), RenderTimeout)
	defer cancel()

	out, err := mc.mazeService.Render(timeoutCtx, record, format)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, format.ContentType(), out)
}

func (mc *MazeController) recordFromPath(ctx *gin.Context) (*catalog.Record, bool) {
	id, ok := parseID(ctx)
	if !ok {
		return nil, false
	}

	record, err := mc.mazeService.Record(id)
	if err != nil {
		writeError(ctx, err)
		return nil, false
	}
	return record, true
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return id, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidSize),
		errors.Is(err, maze.ErrUnknownStrategy),
		errors.Is(err, render.ErrUnknownFormat):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidShareToken):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "rendering timed out"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
