package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"github.com/gin-gonic/gin"
)

// buildSnapshot groups a user's cart items by restaurant and computes the
// subtotals and summary. Groups that lost all items are never emitted.
// Callers hold s.mu.
func (s *Server) buildSnapshot(userID uint) entity.CartSnapshot {
	byResto := map[uint]*entity.CartGroup{}
	var order []uint

	for _, it := range s.items {
		if it.UserID != userID {
			continue
		}
		m := s.findMenu(it.RestaurantID, it.MenuID)
		if m == nil {
			continue
		}
		g, exists := byResto[it.RestaurantID]
		if !exists {
			r := s.findResto(it.RestaurantID)
			g = &entity.CartGroup{
				Restaurant: entity.RestaurantRef{ID: r.Restaurant.ID, Name: r.Restaurant.Name, Logo: r.Restaurant.Logo},
			}
			byResto[it.RestaurantID] = g
			order = append(order, it.RestaurantID)
		}
		g.Items = append(g.Items, entity.CartEntry{
			ID:       it.ID,
			Quantity: it.Quantity,
			Menu:     entity.CartMenu{ID: m.ID, FoodName: m.FoodName, Price: m.Price, Image: m.Image},
		})
	}

	var snap entity.CartSnapshot
	for _, rid := range order {
		g := byResto[rid]
		for _, e := range g.Items {
			g.Subtotal += e.LineTotal()
			snap.Summary.TotalItems += e.Quantity
		}
		snap.Summary.TotalPrice += g.Subtotal
		snap.Cart = append(snap.Cart, *g)
	}
	snap.Summary.RestaurantCount = len(snap.Cart)
	return snap
}

// GET /api/cart
func (s *Server) getCart(c *gin.Context) {
	s.mu.Lock()
	snap := s.buildSnapshot(currentUserID(c))
	s.mu.Unlock()
	ok(c, snap)
}

// POST /api/cart
func (s *Server) addToCart(c *gin.Context) {
	var req struct {
		RestaurantID uint `json:"restaurantId" binding:"required"`
		MenuID       uint `json:"menuId" binding:"required"`
		Quantity     int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	uid := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findMenu(req.RestaurantID, req.MenuID) == nil {
		fail(c, http.StatusNotFound, "menu not in this restaurant")
		return
	}

	for _, it := range s.items {
		if it.UserID == uid && it.MenuID == req.MenuID {
			it.Quantity += req.Quantity
			created(c, gin.H{"id": it.ID})
			return
		}
	}

	it := &cartItem{
		ID:           s.nextItemID,
		UserID:       uid,
		RestaurantID: req.RestaurantID,
		MenuID:       req.MenuID,
		Quantity:     req.Quantity,
	}
	s.nextItemID++
	s.items = append(s.items, it)
	created(c, gin.H{"id": it.ID})
}

// PUT /api/cart/:cartItemId
func (s *Server) updateQuantity(c *gin.Context) {
	s.delayMutation()
	s.ItemMutations.Add(1)

	id, err := strconv.ParseUint(c.Param("cartItemId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid cart item id")
		return
	}
	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	uid := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == uint(id) && it.UserID == uid {
			it.Quantity = req.Quantity
			ok(c, gin.H{"id": it.ID, "quantity": it.Quantity})
			return
		}
	}
	fail(c, http.StatusNotFound, "cart item not found")
}

// DELETE /api/cart/:cartItemId
func (s *Server) deleteItem(c *gin.Context) {
	s.delayMutation()
	s.ItemMutations.Add(1)

	id, err := strconv.ParseUint(c.Param("cartItemId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid cart item id")
		return
	}
	uid := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == uint(id) && it.UserID == uid {
			s.items = append(s.items[:i], s.items[i+1:]...)
			ok(c, gin.H{"deleted": it.ID})
			return
		}
	}
	fail(c, http.StatusNotFound, "cart item not found")
}

// DELETE /api/cart
func (s *Server) clearCart(c *gin.Context) {
	s.ClearCalls.Add(1)
	if s.FailNextCartClear.CompareAndSwap(true, false) {
		fail(c, http.StatusInternalServerError, "cart clear unavailable")
		return
	}
	uid := currentUserID(c)

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.UserID != uid {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()

	ok(c, gin.H{"cleared": true})
}

func (s *Server) delayMutation() {
	if s.MutationDelay > 0 {
		time.Sleep(s.MutationDelay)
	}
}
