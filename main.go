// foody is a terminal client for the Foody restaurant-ordering backend:
// browse restaurants, manage the cart, check out and review orders.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/configs"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/repository"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/services"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/utils"

	"go.uber.org/zap"
)

type app struct {
	cfg      *configs.Config
	auth     *services.AuthService
	carts    *services.CartService
	checkout *services.CheckoutService
	restos   *services.RestoService
	orders   *services.OrderService
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := configs.LoadConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open local store: %v", err)
	}

	session := api.NewSession()
	session.OnUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "Your session expired. Run `foody login` again.")
	})

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, session, logger)
	sessions := repository.NewSessionRepository(db)
	profiles := repository.NewDeliveryProfileRepository(db)
	reviews := repository.NewReviewRepository(db)

	a := &app{
		cfg:      cfg,
		auth:     services.NewAuthService(client, session, sessions, logger),
		carts:    services.NewCartService(client, session, logger),
		restos:   services.NewRestoService(client, logger),
	}
	a.checkout = services.NewCheckoutService(client, session, a.carts, profiles, cfg.DeliveryFee, cfg.ServiceFee, logger)
	a.orders = services.NewOrderService(client, session, reviews, logger)

	a.auth.Restore()

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Please log in first: foody login -email ... -password ...")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		a.auth.Logout()
		fmt.Println("Logged out.")
		return nil
	case "profile":
		return a.cmdProfile(ctx)
	case "restos":
		return a.cmdRestos(ctx, args)
	case "search":
		return a.cmdSearch(ctx, args)
	case "resto":
		return a.cmdRestoDetail(ctx, args)
	case "cart":
		return a.cmdCart(ctx)
	case "cart-add":
		return a.cmdCartAdd(ctx, args)
	case "cart-set":
		return a.cmdCartSet(ctx, args)
	case "cart-clear":
		return a.carts.Clear(ctx)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "orders":
		return a.cmdOrders(ctx, args)
	case "review":
		return a.cmdReview(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	res, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", res.User.Name)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	res, err := a.auth.Register(ctx, entity.RegisterRequest{
		Name: *name, Email: *email, Phone: *phone, Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s. You are logged in.\n", res.User.Email)
	return nil
}

func (a *app) cmdProfile(ctx context.Context) error {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n%s\n", p.Name, p.Email, p.Phone)
	return nil
}

func (a *app) cmdRestos(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("restos", flag.ExitOnError)
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 20, "page size")
	fs.Parse(args)

	res, err := a.restos.List(ctx, *page, *limit)
	if err != nil {
		return err
	}
	printRestos(res.Restaurants)
	fmt.Printf("page %d/%d\n", res.Pagination.Page, res.Pagination.TotalPages)
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	q := fs.String("q", "", "restaurant name")
	fs.Parse(args)

	res, err := a.restos.Search(ctx, *q, 1, 20)
	if err != nil {
		return err
	}
	printRestos(res.Restaurants)
	return nil
}

func (a *app) cmdRestoDetail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resto", flag.ExitOnError)
	id := fs.Uint("id", 0, "restaurant id")
	fs.Parse(args)

	d, err := a.restos.Detail(ctx, uint(*id))
	if err != nil {
		return err
	}
	fmt.Printf("%s — %.1f★ — %s\n", d.Name, d.Star, d.Place)
	for _, m := range d.Menus {
		fmt.Printf("  [%d] %-28s %s\n", m.ID, m.FoodName, utils.FormatRupiah(m.Price))
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context) error {
	snap, err := a.carts.Load(ctx)
	if err != nil {
		return err
	}
	if snap.Empty() {
		fmt.Println("Your cart is empty.")
		return nil
	}
	printCart(snap)
	return nil
}

func (a *app) cmdCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ExitOnError)
	restoID := fs.Uint("resto", 0, "restaurant id")
	menuID := fs.Uint("menu", 0, "menu id")
	qty := fs.Int("qty", 1, "quantity")
	fs.Parse(args)

	if err := a.carts.Add(ctx, uint(*restoID), uint(*menuID), *qty); err != nil {
		return err
	}
	printCart(a.carts.Snapshot())
	return nil
}

func (a *app) cmdCartSet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-set", flag.ExitOnError)
	item := fs.Uint("item", 0, "cart item id")
	qty := fs.Int("qty", 0, "new quantity, 0 removes the item")
	fs.Parse(args)

	if err := a.carts.SetQuantity(ctx, uint(*item), *qty); err != nil {
		return err
	}
	printCart(a.carts.Snapshot())
	return nil
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "delivery address (saved for next time)")
	phone := fs.String("phone", "", "delivery phone (saved for next time)")
	payment := fs.String("payment", entity.PaymentMethods[0], "payment method")
	fs.Parse(args)

	cc, err := a.checkout.LoadCheckoutContext(ctx)
	if err != nil {
		return err
	}

	profile := cc.Profile
	if *address != "" || *phone != "" {
		profile = entity.DeliveryProfile{Address: *address, Phone: *phone}
		if err := a.checkout.SaveDeliveryProfile(profile); err != nil {
			return err
		}
	}

	conf, err := a.checkout.Submit(ctx, cc.Snapshot, profile, *payment)
	if err != nil {
		return err
	}
	printReceipt(*conf)
	return nil
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	status := fs.String("status", string(entity.OrderDone), "preparing|on_the_way|delivered|done|cancelled")
	page := fs.Int("page", 1, "page")
	fs.Parse(args)

	res, err := a.orders.MyOrders(ctx, entity.OrderStatus(*status), *page, 10)
	if err != nil {
		return err
	}
	for _, o := range res.Orders {
		fmt.Printf("#%d  %s  %s  %s\n", o.ID, o.TransactionID, o.Status, utils.FormatRupiah(o.Pricing.TotalPrice))
		for _, ro := range o.Restaurants {
			reviewed := ""
			if a.orders.Reviewed(o.TransactionID, ro.Restaurant.ID) {
				reviewed = " (reviewed)"
			}
			fmt.Printf("  %s%s\n", ro.Restaurant.Name, reviewed)
			for _, it := range ro.Items {
				fmt.Printf("    %dx %s\n", it.Quantity, it.MenuName)
			}
		}
	}
	fmt.Printf("page %d/%d\n", res.Pagination.Page, res.Pagination.TotalPages)
	return nil
}

func (a *app) cmdReview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	tx := fs.String("tx", "", "transaction id")
	restoID := fs.Uint("resto", 0, "restaurant id")
	star := fs.Int("star", 5, "1-5")
	comment := fs.String("comment", "", "review text")
	fs.Parse(args)

	err := a.orders.SubmitReview(ctx, services.ReviewIn{
		TransactionID: *tx,
		RestaurantID:  uint(*restoID),
		Star:          *star,
		Comment:       *comment,
	})
	if err != nil {
		return err
	}
	fmt.Println("Thanks for your review!")
	return nil
}

func printRestos(restos []entity.Restaurant) {
	for _, r := range restos {
		fmt.Printf("[%d] %-20s %.1f★  %s\n", r.ID, r.Name, r.Star, r.Place)
	}
}

func printCart(snap entity.CartSnapshot) {
	for _, g := range snap.Cart {
		fmt.Printf("%s\n", g.Restaurant.Name)
		for _, it := range g.Items {
			fmt.Printf("  [%d] %dx %-24s %s\n", it.ID, it.Quantity, it.Menu.FoodName, utils.FormatRupiah(it.LineTotal()))
		}
		fmt.Printf("  subtotal %s\n", utils.FormatRupiah(g.Subtotal))
	}
	fmt.Printf("Total: %s (%d items, %d restaurants)\n",
		utils.FormatRupiah(snap.Summary.TotalPrice), snap.Summary.TotalItems, snap.Summary.RestaurantCount)
}

func printReceipt(conf entity.OrderConfirmation) {
	fmt.Println("Payment Success")
	fmt.Println("Date           ", conf.CreatedAt.Format("02 January 2006 15:04"))
	fmt.Println("Payment Method ", conf.PaymentMethod)
	fmt.Printf("Price (%d items) %s\n", conf.TotalItems, utils.FormatRupiah(conf.TotalPrice))
	fmt.Println("Delivery Fee   ", utils.FormatRupiah(conf.DeliveryFee))
	fmt.Println("Service Fee    ", utils.FormatRupiah(conf.ServiceFee))
	fmt.Println("Total          ", utils.FormatRupiah(conf.GrandTotal()))
	if conf.OrderID != "" {
		fmt.Println("Order ID       ", conf.OrderID)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
Usage: foody <command> [flags]

  login -email -password        log in and remember the session
  register -name -email -phone -password
  logout
  profile
  restos [-page -limit]         list restaurants
  search -q                     search restaurants by name
  resto -id                     restaurant detail with menus
  cart                          show the cart
  cart-add -resto -menu [-qty]  add a menu item
  cart-set -item -qty           change quantity (0 removes)
  cart-clear
  checkout [-address -phone] [-payment]
  orders [-status -page]
  review -tx -resto [-star -comment]
`))
}
