package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/One-Orco/quickrent-backend/internal/api/metrics"
	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

// DealHandler handles HTTP requests for deal operations.
type DealHandler struct {
	service ports.DealService
}

func NewDealHandler(service ports.DealService) *DealHandler {
	return &DealHandler{service: service}
}

// Create handles POST /v1/deals.
//
// @Summary      Create a new deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDealRequest  true  "Deal details"
// @Success      201   {object}  domain.Deal
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/deals [post]
func (h *DealHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deal, err := h.service.Create(c.Request().Context(), ports.CreateDealInput{
		PropertyType:    req.PropertyType,
		TransactionType: req.TransactionType,
		Location:        req.Location,
		SizeSqm:         req.SizeSqm,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Price:           req.Price,
		Currency:        req.Currency,
		Buyer: ports.PartyInput{
			Name:  req.Buyer.Name,
			Email: req.Buyer.Email,
			Phone: req.Buyer.Phone,
		},
		Landlord: ports.PartyInput{
			Name:  req.Landlord.Name,
			Email: req.Landlord.Email,
			Phone: req.Landlord.Phone,
		},
		Amenities:   req.Amenities,
		Description: req.Description,
	}, actor)
	if err != nil {
		return err
	}

	metrics.DealsCreatedTotal.WithLabelValues(deal.PropertyType).Inc()
	return c.JSON(http.StatusCreated, deal)
}

// Get handles GET /v1/deals/:reference.
//
// @Summary      Get a deal by reference
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Deal reference (e.g. QR-7A8B9C2D)"
// @Success      200        {object}  domain.Deal
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/deals/{reference} [get]
func (h *DealHandler) Get(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	deal, err := h.service.Get(c.Request().Context(), c.Param("reference"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deal)
}

// List handles GET /v1/deals. Visibility is scoped by role: admins see all
// deals, agents only their own.
//
// @Summary      List deals
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        status            query     string  false  "Filter by status"
// @Param        property_type     query     string  false  "Filter by property type"
// @Param        transaction_type  query     string  false  "Filter by transaction type"
// @Param        location          query     string  false  "Filter by location"
// @Param        min_price         query     number  false  "Minimum price"
// @Param        max_price         query     number  false  "Maximum price"
// @Param        page              query     int     false  "Page (1-based)"
// @Param        limit             query     int     false  "Page size (max 100)"
// @Success      200  {object}  listDealsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/deals [get]
func (h *DealHandler) List(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListDealsInput{
		Status:          c.QueryParam("status"),
		PropertyType:    c.QueryParam("property_type"),
		TransactionType: c.QueryParam("transaction_type"),
		Location:        c.QueryParam("location"),
		MinPrice:        queryFloat(c, "min_price"),
		MaxPrice:        queryFloat(c, "max_price"),
		Page:            queryInt(c, "page"),
		Limit:           queryInt(c, "limit"),
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listDealsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Approve handles POST /v1/deals/:reference/approve.
//
// @Summary      Approve a deal
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Deal reference"
// @Success      200        {object}  domain.Deal
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/deals/{reference}/approve [post]
func (h *DealHandler) Approve(c echo.Context) error {
	return h.transition(c, domain.StatusApproved)
}

// Decline handles POST /v1/deals/:reference/decline.
//
// @Summary      Decline a deal
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Deal reference"
// @Success      200        {object}  domain.Deal
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/deals/{reference}/decline [post]
func (h *DealHandler) Decline(c echo.Context) error {
	return h.transition(c, domain.StatusDeclined)
}

// Forward handles POST /v1/deals/:reference/forward, the realtor pre-approval
// stage: pending_realtor moves to pending_admin.
//
// @Summary      Forward a deal to admin review
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Deal reference"
// @Success      200        {object}  domain.Deal
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/deals/{reference}/forward [post]
func (h *DealHandler) Forward(c echo.Context) error {
	return h.transition(c, domain.StatusPendingAdmin)
}

// RealtorQueue handles GET /v1/realtor/deals: deals awaiting realtor review.
//
// @Summary      List deals awaiting realtor review
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200  {object}  listDealsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/realtor/deals [get]
func (h *DealHandler) RealtorQueue(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	result, err := h.service.RealtorQueue(c.Request().Context(), queryInt(c, "page"), queryInt(c, "limit"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listDealsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

func (h *DealHandler) transition(c echo.Context, target domain.DealStatus) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	deal, err := h.service.Transition(c.Request().Context(), c.Param("reference"), target, actor)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			metrics.TransitionConflictsTotal.Inc()
		}
		return err
	}

	metrics.DealTransitionsTotal.WithLabelValues(string(target)).Inc()
	return c.JSON(http.StatusOK, deal)
}

func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}

func queryFloat(c echo.Context, name string) float64 {
	f, _ := strconv.ParseFloat(c.QueryParam(name), 64)
	return f
}
