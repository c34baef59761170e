package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/amqpx"
	"github.com/ariefcatur/restopro-backoffice/internal/auth"
	"github.com/ariefcatur/restopro-backoffice/internal/config"
	"github.com/ariefcatur/restopro-backoffice/internal/events"
	"github.com/ariefcatur/restopro-backoffice/internal/httpx"
	kafkax "github.com/ariefcatur/restopro-backoffice/internal/kafka"
	"github.com/ariefcatur/restopro-backoffice/internal/live"
	"github.com/ariefcatur/restopro-backoffice/internal/logging"
	"github.com/ariefcatur/restopro-backoffice/internal/menu"
	"github.com/ariefcatur/restopro-backoffice/internal/notify"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/payment"
	"github.com/ariefcatur/restopro-backoffice/internal/postgres"
	"github.com/ariefcatur/restopro-backoffice/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logging.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB (opsional kalau SEED_DEMO aktif)
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		if !cfg.SeedDemo {
			log.Fatal("db connect", zap.Error(err))
		}
		log.Warn("db unavailable, running on demo data", zap.Error(err))
		db = nil
	} else {
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal("db schema", zap.Error(err))
		}
	}

	menuItems, orderList := loadState(ctx, db, cfg.SeedDemo, log)

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Event broker
	checks := map[string]httpx.Check{
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	if db != nil {
		checks["postgres"] = db.Ping
	}

	var pub events.Publisher = events.Nop{}
	var prod *kafkax.Producer
	switch cfg.EventBroker {
	case "kafka":
		prod = kafkax.NewProducer(cfg.KafkaBrokers, 1024, log)
		prod.Start(ctx)
		pub = events.Kafka{P: prod}
	case "amqp":
		ap, err := amqpx.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal("amqp dial", zap.Error(err))
		}
		defer ap.Close()
		pub = events.AMQP{P: ap}
		checks["amqp"] = func(context.Context) error { return ap.Ping() }
	case "none", "":
	default:
		log.Fatal("unknown EVENT_BROKER", zap.String("value", cfg.EventBroker))
	}
	log.Info("event broker", zap.String("broker", cfg.EventBroker))

	// Store + fan-out
	store := orders.NewStore()
	if dups := store.Load(orderList); len(dups) > 0 {
		log.Warn("duplicate order documents skipped", zap.Strings("order_ids", dups))
	}
	hub := live.NewHub(log)
	disp := &notify.Dispatcher{
		Hub:       hub,
		Cache:     &redisx.StatusCache{R: rdb},
		Publisher: pub,
		Service:   cfg.ServiceName,
		Log:       log,
		Timeout:   3 * time.Second,
	}
	var orderRepo *orders.Repo
	var menuWriter menu.Writer
	if db != nil {
		orderRepo = &orders.Repo{DB: db, Log: log}
		menuWriter = &menu.Repo{DB: db}
		if cfg.PersistStatus {
			disp.Writer = orderRepo
		}
	}
	disp.Attach(store)

	catalog := menu.NewCatalog(menuWriter, menuItems...)
	paySvc := &payment.Service{
		Store:     store,
		Redis:     rdb,
		Publisher: pub,
		Delay:     cfg.PaymentDelay,
		Service:   cfg.ServiceName,
		Log:       log,
	}

	// Auth: tanpa JWT_SECRET semua route terbuka (mode demo)
	var guard func(http.Handler) http.Handler
	issuer := &auth.Issuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}
	if cfg.JWTSecret != "" {
		guard = issuer.Require
	} else {
		log.Warn("JWT_SECRET empty, mutations are not protected")
	}

	oh := &httpx.OrdersHandler{
		Store:     store,
		Menu:      catalog,
		Redis:     rdb,
		Publisher: pub,
		Hub:       hub,
		Cache:     &redisx.StatusCache{R: rdb},
		Service:   cfg.ServiceName,
		Log:       log,
	}
	if orderRepo != nil {
		oh.Repo = orderRepo
	}
	mh := &httpx.MenuHandler{Catalog: catalog}
	ph := &httpx.PaymentHandler{Store: store, Svc: paySvc}
	rh := &httpx.ReportsHandler{Store: store, Feed: &redisx.ActivityFeed{R: rdb}, Log: log}
	ah := &httpx.AuthHandler{Issuer: issuer}

	router := httpx.NewRouter(log)
	router.Handle("/ws", hub)
	router.Get("/readyz", httpx.Ready(checks))
	router.Group(func(r chi.Router) {
		r.Use(httpx.WithTimeout())
		ah.Register(r)
		oh.Register(r, guard)
		mh.Register(r, guard)
		ph.Register(r, guard)
		rh.Register(r)
	})

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr), zap.Int("orders", store.Len()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close() // tutup inbox -> flush & close writer
		cancel()
		prod.WaitClosed()
	}
}

// loadState reads menu and orders from Postgres. Demo fixtures dipakai kalau
// storage kosong atau tidak bisa dibaca, selama SEED_DEMO aktif.
func loadState(ctx context.Context, db *pgxpool.Pool, seed bool, log *zap.Logger) ([]menu.MenuItem, []orders.Order) {
	var items []menu.MenuItem
	var list []orders.Order
	if db != nil {
		var err error
		if items, err = (&menu.Repo{DB: db}).ListItems(ctx); err != nil {
			log.Warn("load menu", zap.Error(err))
		}
		if list, err = (&orders.Repo{DB: db, Log: log}).ListOrders(ctx); err != nil {
			log.Warn("load orders", zap.Error(err))
		}
	}
	if seed && len(items) == 0 {
		items = menu.DemoMenu()
		if db != nil {
			w := &menu.Repo{DB: db}
			for _, m := range items {
				if err := w.UpsertItem(ctx, m); err != nil {
					log.Warn("seed menu item", zap.String("id", m.ID), zap.Error(err))
					break
				}
			}
		}
	}
	if seed && len(list) == 0 {
		list = orders.DemoOrders(time.Now())
		if db != nil {
			w := &orders.Repo{DB: db, Log: log}
			for _, o := range list {
				if err := w.InsertOrder(ctx, o); err != nil {
					log.Warn("seed order", zap.String("id", o.ID), zap.Error(err))
					break
				}
			}
		}
	}
	log.Info("state loaded", zap.Int("menu_items", len(items)), zap.Int("orders", len(list)))
	return items, list
}
