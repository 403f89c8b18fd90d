// Package mockapi is an in-process stand-in for the Foody backend. It
// serves the same REST contract the client consumes, keeps all state
// in memory and exposes a few failure-injection knobs so client tests can
// exercise the unhappy paths.
package mockapi

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const tokenTTL = 24 * time.Hour

type user struct {
	ID    uint
	Name  string
	Email string
	Phone string
	Hash  []byte
}

type restoRec struct {
	Restaurant entity.Restaurant
	Menus      []entity.MenuItem
}

type cartItem struct {
	ID           uint
	UserID       uint
	RestaurantID uint
	MenuID       uint
	Quantity     int
}

type orderRec struct {
	ID            uint
	UserID        uint
	OrderID       string
	TransactionID string
	Status        entity.OrderStatus
	Total         int64
	Restaurants   []entity.RestaurantOrder
}

type Server struct {
	JWTSecret string

	mu         sync.Mutex
	users      []*user
	restos     []restoRec
	items      []*cartItem
	orders     []*orderRec
	nextUserID uint
	nextItemID uint

	// Failure injection and probes for client tests.
	MutationDelay     time.Duration // sleep on item update/delete, opens a race window
	FailNextCartClear atomic.Bool   // next DELETE /api/cart answers 500
	CheckoutReject    atomic.Value  // string; when set, checkout answers 400 with it
	ClearCalls        atomic.Int32
	ItemMutations     atomic.Int32
}

func NewServer(jwtSecret string) *Server {
	s := &Server{
		JWTSecret:  jwtSecret,
		nextUserID: 1,
		nextItemID: 1,
	}
	s.seed()
	return s
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { ok(c, gin.H{"status": "up"}) })

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.GET("/profile", s.authRequired(), s.profile)
	}

	resto := r.Group("/api/resto")
	{
		resto.GET("", s.listRestos)
		resto.GET("/search", s.searchRestos)
		resto.GET("/best-seller", s.bestSeller)
		resto.GET("/nearby", s.nearby)
		resto.GET("/recommended", s.recommended)
		resto.GET("/:id", s.restoDetail)
	}

	cart := r.Group("/api/cart", s.authRequired())
	{
		cart.GET("", s.getCart)
		cart.POST("", s.addToCart)
		cart.PUT("/:cartItemId", s.updateQuantity)
		cart.DELETE("/:cartItemId", s.deleteItem)
		cart.DELETE("", s.clearCart)
	}

	order := r.Group("/api/order", s.authRequired())
	{
		order.POST("/checkout", s.checkout)
		order.GET("/my-order", s.myOrders)
	}

	r.POST("/api/review", s.authRequired(), s.submitReview)

	return r
}

// MustToken registers (or finds) a user by email and mints a token for
// it, bypassing the password flow. Test helper.
func (s *Server) MustToken(name, email string) string {
	s.mu.Lock()
	u := s.findUser(email)
	if u == nil {
		u = &user{ID: s.nextUserID, Name: name, Email: email}
		s.nextUserID++
		s.users = append(s.users, u)
	}
	id := u.ID
	s.mu.Unlock()

	tok, err := utils.GenerateToken(id, "customer", s.JWTSecret, tokenTTL)
	if err != nil {
		panic(err)
	}
	return tok
}

// callers hold s.mu
func (s *Server) findUser(email string) *user {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// callers hold s.mu
func (s *Server) findResto(id uint) *restoRec {
	for i := range s.restos {
		if s.restos[i].Restaurant.ID == id {
			return &s.restos[i]
		}
	}
	return nil
}

// callers hold s.mu
func (s *Server) findMenu(restaurantID, menuID uint) *entity.MenuItem {
	r := s.findResto(restaurantID)
	if r == nil {
		return nil
	}
	for i := range r.Menus {
		if r.Menus[i].ID == menuID {
			return &r.Menus[i]
		}
	}
	return nil
}

func (s *Server) seed() {
	s.restos = []restoRec{
		{
			Restaurant: entity.Restaurant{
				ID: 1, Name: "Burger Bang", Star: 4.9, Place: "Jakarta Selatan",
				Logo: "/images/burger-bang.png", Category: "Burger",
				ReviewCount: 1200, MenuCount: 2, Distance: 2.4,
				PriceRange: &entity.PriceRange{Min: 15000, Max: 25000},
			},
			Menus: []entity.MenuItem{
				{ID: 10, FoodName: "Cheese Smash Burger", Price: 15000, Image: "/images/cheese-smash.png", Category: "FOOD", Rating: 4.9},
				{ID: 11, FoodName: "Double Bacon Burger", Price: 25000, Image: "/images/double-bacon.png", Category: "FOOD", Rating: 4.8},
			},
		},
		{
			Restaurant: entity.Restaurant{
				ID: 2, Name: "Sate Ratu", Star: 4.7, Place: "Jakarta Pusat",
				Logo: "/images/sate-ratu.png", Category: "Sate",
				ReviewCount: 840, MenuCount: 2, Distance: 5.1,
				PriceRange: &entity.PriceRange{Min: 8000, Max: 30000},
			},
			Menus: []entity.MenuItem{
				{ID: 20, FoodName: "Sate Ayam Merah", Price: 30000, Image: "/images/sate-ayam.png", Category: "FOOD", Rating: 4.7},
				{ID: 21, FoodName: "Es Teh Manis", Price: 8000, Image: "/images/es-teh.png", Category: "DRINK", Rating: 4.5},
			},
		},
	}
}
