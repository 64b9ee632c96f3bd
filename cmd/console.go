package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/commerceops/backoffice/internal/auth"
	authPostgres "github.com/commerceops/backoffice/internal/auth/postgres"
	"github.com/commerceops/backoffice/internal/brand"
	brandPostgres "github.com/commerceops/backoffice/internal/brand/postgres"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/listview"
	"github.com/commerceops/backoffice/internal/product"
	productPostgres "github.com/commerceops/backoffice/internal/product/postgres"
	"github.com/commerceops/backoffice/internal/rbac"
	"github.com/commerceops/backoffice/internal/session"
	"github.com/commerceops/backoffice/pkg/logger"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive admin console",
	Long:  `Browse and mutate the catalog from a terminal using the same session, permission and list machinery as the API.`,
	Run: func(cmd *cobra.Command, args []string) {
		runConsole()
	},
}

// console drives one signed-in terminal session. The product and brand
// screens share the event bus, so a brand mutation refreshes the product
// screen's reference data the same way the dashboard does it.
type console struct {
	store    *session.Store
	authSvc  *auth.Service
	products *listview.Controller[product.ProductResponse]
	brands   *listview.Controller[brand.BrandResponse]
	prodSvc  *product.Service
	brandSvc *brand.Service
	active   string
}

func runConsole() {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := rbac.Validate(); err != nil {
		log.Fatalf("role definitions invalid: %v", err)
	}

	sqlxDB, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	defer sqlxDB.Close()

	gormDB, err := initGorm(sqlxDB)
	if err != nil {
		log.Fatalf("failed to init orm: %v", err)
	}

	lg := logger.L()
	bus := events.NewEventBus(lg)

	sessionPath := cfg.Security.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultSessionPath()
		if err != nil {
			log.Fatalf("failed to resolve session path: %v", err)
		}
	}
	store := session.NewStore(session.NewFileStorage(sessionPath), lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authSvc := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen)

	prodSvc := product.NewService(productPostgres.NewProductRepository(gormDB), bus, lg)
	brandSvc := brand.NewService(brandPostgres.NewBrandRepository(gormDB), bus, lg)

	products := listview.NewController(func(_ context.Context, q pagination.PageQuery) (*pagination.PageResult[product.ProductResponse], error) {
		return prodSvc.List(q)
	}, bus, lg)
	defer products.Close()
	products.WatchReferences([]string{events.BrandChanged, events.CategoryChanged}, products.Refresh)

	brands := listview.NewController(func(_ context.Context, q pagination.PageQuery) (*pagination.PageResult[brand.BrandResponse], error) {
		return brandSvc.List(q)
	}, bus, lg)
	defer brands.Close()

	c := &console{
		store:    store,
		authSvc:  authSvc,
		products: products,
		brands:   brands,
		prodSvc:  prodSvc,
		brandSvc: brandSvc,
		active:   "products",
	}

	if principal, ok := store.Current(); ok {
		fmt.Printf("signed in as %s (%s)\n", principal.Email, principal.Role)
	} else {
		fmt.Println("not signed in; use: login <email> <password>")
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if line != "" {
			c.dispatch(line)
		}
		fmt.Print("> ")
	}
}

func (c *console) dispatch(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println("commands: login, logout, whoami, products, brands, search, page, refresh, rows, create-brand, delete, help, quit")
	case "login":
		c.login(args)
	case "logout":
		if err := c.store.Logout(); err != nil {
			fmt.Printf("logout failed: %v\n", err)
			return
		}
		fmt.Println("signed out")
	case "whoami":
		principal, ok := c.store.Current()
		if !ok {
			fmt.Println("not signed in")
			return
		}
		fmt.Printf("%s (%s)\n", principal.Email, principal.Role)
	case "products":
		c.openScreen("products", rbac.ViewInventory)
	case "brands":
		c.openScreen("brands", rbac.ViewBrands)
	case "search":
		c.withController(func(setSearch func(string), _ func(int), _ func()) {
			setSearch(strings.Join(args, " "))
		})
		// allow the debounce window to elapse before rendering
		time.Sleep(listview.DefaultDebounceDelay + 100*time.Millisecond)
		c.render()
	case "page":
		if len(args) != 1 {
			fmt.Println("usage: page <n>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: page <n>")
			return
		}
		c.withController(func(_ func(string), setPage func(int), _ func()) { setPage(n) })
		c.render()
	case "refresh":
		c.withController(func(_ func(string), _ func(int), refresh func()) { refresh() })
		c.render()
	case "rows":
		c.render()
	case "create-brand":
		c.createBrand(strings.Join(args, " "))
	case "delete":
		c.deleteRow(args)
	default:
		fmt.Printf("unknown command %q; try help\n", cmd)
	}
}

func (c *console) login(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <email> <password>")
		return
	}
	result, err := c.authSvc.Authenticate(auth.LoginDTO{Email: args[0], Password: args[1]})
	if err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}
	if err := c.store.Login(*result.User.Principal()); err != nil {
		fmt.Printf("failed to persist session: %v\n", err)
		return
	}
	fmt.Printf("signed in as %s (%s)\n", result.User.Email, result.User.Role)
}

// openScreen gates a screen the way the dashboard routes do, then loads
// its first page.
func (c *console) openScreen(name string, required rbac.Permission) {
	switch c.store.Guard(required) {
	case rbac.Loading:
		fmt.Println("session still loading, try again")
		return
	case rbac.Unauthenticated:
		fmt.Println("sign in first: login <email> <password>")
		return
	case rbac.Forbidden:
		fmt.Printf("access denied: %s requires %s\n", name, required)
		return
	}

	c.active = name
	c.withController(func(_ func(string), _ func(int), refresh func()) { refresh() })
	c.render()
}

func (c *console) withController(fn func(setSearch func(string), setPage func(int), refresh func())) {
	if c.active == "brands" {
		fn(c.brands.SetSearch, c.brands.SetPage, c.brands.Refresh)
		return
	}
	fn(c.products.SetSearch, c.products.SetPage, c.products.Refresh)
}

func (c *console) createBrand(name string) {
	if c.store.Guard(rbac.ManageBrands) != rbac.Authorized {
		fmt.Println("access denied: creating brands requires manage_brands")
		return
	}
	outcome := c.brands.Mutate(listview.MutationWrite, func() error {
		_, err := c.brandSvc.Create(brand.BrandRequest{Name: name})
		return err
	})
	fmt.Printf("%s", renderOutcome(outcome))
	if outcome.State == listview.MutationSucceeded && c.active == "brands" {
		c.render()
	}
}

func (c *console) deleteRow(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: delete <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("usage: delete <id>")
		return
	}

	var outcome listview.Outcome
	switch c.active {
	case "brands":
		if c.store.Guard(rbac.ManageBrands) != rbac.Authorized {
			fmt.Println("access denied: deleting brands requires manage_brands")
			return
		}
		outcome = c.brands.Mutate(listview.MutationDelete, func() error {
			return c.brandSvc.Delete(id)
		})
	default:
		if c.store.Guard(rbac.DeleteProducts) != rbac.Authorized {
			fmt.Println("access denied: deleting products requires delete_products")
			return
		}
		outcome = c.products.Mutate(listview.MutationDelete, func() error {
			return c.prodSvc.Delete(id)
		})
	}
	fmt.Printf("%s", renderOutcome(outcome))
	c.render()
}

func renderOutcome(o listview.Outcome) string {
	switch o.State {
	case listview.MutationSucceeded:
		return "ok\n"
	case listview.MutationConflict:
		return fmt.Sprintf("conflict: %s\n", o.Message)
	default:
		return fmt.Sprintf("failed: %s\n", o.Message)
	}
}

// render waits for any in-flight fetch to land, then prints the page.
func (c *console) render() {
	if c.active == "brands" {
		snap := awaitSnapshot(c.brands)
		if snap.FetchErr != nil {
			fmt.Printf("load failed: %v\n", snap.FetchErr)
			return
		}
		fmt.Printf("brands page %d/%d (%d total, search %q)\n", snap.Query.Page, snap.TotalPages, snap.TotalRows, snap.Query.Search)
		for _, row := range snap.Rows {
			fmt.Printf("  %4d  %s\n", row.ID, row.Name)
		}
		return
	}

	snap := awaitSnapshot(c.products)
	if snap.FetchErr != nil {
		fmt.Printf("load failed: %v\n", snap.FetchErr)
		return
	}
	fmt.Printf("products page %d/%d (%d total, search %q)\n", snap.Query.Page, snap.TotalPages, snap.TotalRows, snap.Query.Search)
	for _, row := range snap.Rows {
		fmt.Printf("  %4d  %-12s %-32s %8.2f  stock %d (%s)\n", row.ID, row.SKU, row.Name, row.Price, row.Stock, row.StockStatus)
	}
}

// awaitSnapshot polls until the controller is idle. Fetches complete in a
// goroutine, so a freshly-issued refresh may not have landed yet.
func awaitSnapshot[T any](c *listview.Controller[T]) listview.Snapshot[T] {
	deadline := time.Now().Add(3 * time.Second)
	for {
		snap := c.Snapshot()
		if !snap.Loading || time.Now().After(deadline) {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
}
