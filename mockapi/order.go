package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/order/checkout
//
// Creates the order only; it deliberately does not touch the cart. The
// client clears the cart itself after a successful checkout, which is
// what makes the atomicity and fire-and-forget tests meaningful.
func (s *Server) checkout(c *gin.Context) {
	if msg, _ := s.CheckoutReject.Load().(string); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	var req entity.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Restaurants) == 0 {
		fail(c, http.StatusBadRequest, "cart is empty")
		return
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" || strings.TrimSpace(req.Phone) == "" {
		fail(c, http.StatusBadRequest, "delivery address and phone are required")
		return
	}
	uid := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	var restaurants []entity.RestaurantOrder
	for _, block := range req.Restaurants {
		r := s.findResto(block.RestaurantID)
		if r == nil {
			fail(c, http.StatusBadRequest, "restaurant not found")
			return
		}
		ro := entity.RestaurantOrder{
			Restaurant: entity.RestaurantRef{ID: r.Restaurant.ID, Name: r.Restaurant.Name, Logo: r.Restaurant.Logo},
		}
		for _, item := range block.Items {
			m := s.findMenu(block.RestaurantID, item.MenuID)
			if m == nil {
				fail(c, http.StatusBadRequest, "menu not in this restaurant")
				return
			}
			if item.Quantity < 1 {
				fail(c, http.StatusBadRequest, "quantity must be positive")
				return
			}
			total += m.Price * int64(item.Quantity)
			ro.Items = append(ro.Items, entity.OrderItem{
				MenuID: m.ID, MenuName: m.FoodName, Price: m.Price, Image: m.Image, Quantity: item.Quantity,
			})
		}
		restaurants = append(restaurants, ro)
	}

	o := &orderRec{
		ID:            uint(len(s.orders) + 1),
		UserID:        uid,
		OrderID:       uuid.NewString(),
		TransactionID: uuid.NewString(),
		Status:        entity.OrderPreparing,
		Total:         total,
		Restaurants:   restaurants,
	}
	s.orders = append(s.orders, o)

	created(c, gin.H{"orderId": o.OrderID})
}

// GET /api/order/my-order?status=&page=&limit=
func (s *Server) myOrders(c *gin.Context) {
	status := c.DefaultQuery("status", string(entity.OrderPreparing))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	uid := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	var hits []entity.Order
	for _, o := range s.orders {
		if o.UserID != uid || o.Status != entity.OrderStatus(status) {
			continue
		}
		hits = append(hits, entity.Order{
			ID:            o.ID,
			TransactionID: o.TransactionID,
			Status:        o.Status,
			Pricing:       entity.OrderPricing{TotalPrice: o.Total},
			Restaurants:   o.Restaurants,
		})
	}

	start := min((page-1)*limit, len(hits))
	end := min(start+limit, len(hits))
	totalPages := (len(hits) + limit - 1) / limit

	ok(c, entity.OrderPage{
		Orders: hits[start:end],
		Pagination: entity.Pagination{
			Page: page, Limit: limit, Total: len(hits), TotalPages: totalPages,
		},
	})
}

// POST /api/review
func (s *Server) submitReview(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transactionId" binding:"required"`
		RestaurantID  uint   `json:"restaurantId" binding:"required"`
		Star          int    `json:"star" binding:"required,min=1,max=5"`
		Comment       string `json:"comment"`
		MenuIDs       []uint `json:"menuIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	r := s.findResto(req.RestaurantID)
	s.mu.Unlock()
	if r == nil {
		fail(c, http.StatusNotFound, "restaurant not found")
		return
	}

	created(c, gin.H{"reviewed": true})
}
