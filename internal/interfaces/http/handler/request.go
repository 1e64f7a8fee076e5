package handler

import (
	"strconv"

	appfacility "github.com/dormlife/backend/internal/application/facility"
	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler handles the maintenance request endpoints
type RequestHandler struct {
	BaseHandler
	requestService *appfacility.RequestService
}

// NewRequestHandler creates a request handler
func NewRequestHandler(requestService *appfacility.RequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    NewBaseHandler(logger),
		requestService: requestService,
	}
}

// Create handles POST /requests
func (h *RequestHandler) Create(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	photos := make([]appfacility.PhotoUpload, len(req.Photos))
	for i, p := range req.Photos {
		photos[i] = appfacility.PhotoUpload{Data: p.Data, ContentType: p.ContentType}
	}

	result, err := h.requestService.Create(c.Request.Context(), appfacility.CreateRequestInput{
		SchoolID:    ident.SchoolID,
		UserID:      ident.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    facility.Priority(req.Priority),
		IsAnonymous: req.IsAnonymous,
		Photos:      photos,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /requests?status=&priority=&page=&pageSize=
func (h *RequestHandler) List(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	result, err := h.requestService.List(c.Request.Context(), appfacility.ListRequestsInput{
		SchoolID: ident.SchoolID,
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Requests, dto.NewMeta(result.Page, result.PageSize, result.Total))
}

// Get handles GET /requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.requestService.Get(c.Request.Context(), ident.SchoolID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateStatus handles PUT /requests/:id/status (staff/admin). An assignedTo
// field in the body also assigns the request.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if req.AssignedTo != nil {
		if _, err := h.requestService.Assign(c.Request.Context(), ident.SchoolID, id, *req.AssignedTo); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	result, err := h.requestService.UpdateStatus(c.Request.Context(), ident.SchoolID, id, facility.RequestStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Upvote handles POST /requests/:id/upvote
func (h *RequestHandler) Upvote(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.requestService.Upvote(c.Request.Context(), ident.SchoolID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddComment handles POST /requests/:id/comments
func (h *RequestHandler) AddComment(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	comment, err := h.requestService.AddComment(c.Request.Context(), ident.SchoolID, appfacility.AddCommentInput{
		RequestID:  id,
		UserID:     ident.UserID,
		AuthorRole: string(ident.Role),
		Comment:    req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comment)
}

// ListComments handles GET /requests/:id/comments
func (h *RequestHandler) ListComments(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.requestService.ListComments(c.Request.Context(), ident.SchoolID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comments)
}
