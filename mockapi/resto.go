package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"github.com/gin-gonic/gin"
)

func (s *Server) allRestaurants() []entity.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Restaurant, 0, len(s.restos))
	for _, r := range s.restos {
		out = append(out, r.Restaurant)
	}
	return out
}

// GET /api/resto
func (s *Server) listRestos(c *gin.Context) {
	s.pagedRestos(c, s.allRestaurants())
}

// GET /api/resto/search?q=
func (s *Server) searchRestos(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))
	var hits []entity.Restaurant
	for _, r := range s.allRestaurants() {
		if strings.Contains(strings.ToLower(r.Name), q) {
			hits = append(hits, r)
		}
	}
	s.pagedRestos(c, hits)
}

// GET /api/resto/best-seller — seeded order is already by rating
func (s *Server) bestSeller(c *gin.Context) {
	s.pagedRestos(c, s.allRestaurants())
}

// GET /api/resto/nearby?range=&limit=
func (s *Server) nearby(c *gin.Context) {
	rangeKm, _ := strconv.ParseFloat(c.DefaultQuery("range", "10"), 64)
	var hits []entity.Restaurant
	for _, r := range s.allRestaurants() {
		if r.Distance <= rangeKm {
			hits = append(hits, r)
		}
	}
	ok(c, gin.H{"restaurants": hits})
}

// GET /api/resto/recommended
func (s *Server) recommended(c *gin.Context) {
	ok(c, gin.H{"restaurants": s.allRestaurants()})
}

// GET /api/resto/:id
func (s *Server) restoDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	s.mu.Lock()
	r := s.findResto(uint(id))
	s.mu.Unlock()

	if r == nil {
		fail(c, http.StatusNotFound, "restaurant not found")
		return
	}
	ok(c, entity.RestaurantDetail{Restaurant: r.Restaurant, Menus: r.Menus})
}

func (s *Server) pagedRestos(c *gin.Context, all []entity.Restaurant) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	totalPages := (len(all) + limit - 1) / limit
	ok(c, gin.H{
		"restaurants": all[start:end],
		"pagination": entity.Pagination{
			Page: page, Limit: limit, Total: len(all), TotalPages: totalPages,
		},
	})
}
