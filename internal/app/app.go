package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/storeworks/storefront/config"
	"github.com/storeworks/storefront/internal/adapter/httphandler"
	"github.com/storeworks/storefront/internal/adapter/kafka"
	"github.com/storeworks/storefront/internal/adapter/localcache"
	"github.com/storeworks/storefront/internal/adapter/storage"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/storeworks/storefront/internal/core/service"
	"github.com/storeworks/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type outbound struct {
	docStore   storage.DocumentStore
	localCache *localcache.Cache
	producer   kafka.CatalogSyncProducer
	processor  kafka.CatalogVersionProcessor
	view       *kafka.CatalogVersionView
	images     port.ImageStore
}

type coreService struct {
	catalog  *service.CatalogService
	cart     service.CartService
	accounts service.AccountService
	orders   service.OrderService
	reviews  service.ReviewService
	wishlist service.WishlistService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	syncSerde  schema.Serde
	outbound   outbound
	service    coreService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	syncSubject := app.cfg.Broker.Topics.CatalogSyncStream + "-value"
	syncSerde, err := schema.NewSerdeCatalogSyncV1(
		app.ctx,
		schema.SubjectOpt(syncSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.syncSerde = syncSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	syncStream := app.cfg.Broker.Topics.CatalogSyncStream
	versionTable := app.cfg.Broker.Topics.CatalogVersionTable

	docStore, err := storage.NewDocumentStore(
		ctx, app.cfg.DocumentStore.URI, app.cfg.DocumentStore.Database,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	localCache, err := localcache.New(app.cfg.LocalCache.Path)
	if err != nil {
		app.fallDown(op, err)
	}

	images, err := storage.NewImageStore(docStore)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewCatalogSyncProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, syncStream),
		kafka.ProducerEncoderOpt(app.syncSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewCatalogVersionProc(
		seedBrokers, syncStream, versionTable, app.syncSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewCatalogVersionView(seedBrokers, versionTable)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound = outbound{
		docStore:   docStore,
		localCache: localCache,
		producer:   producer,
		processor:  processor,
		view:       view,
		images:     images,
	}
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	docStore := app.outbound.docStore
	localCache := app.outbound.localCache

	catalog := service.NewCatalogService(
		storage.NewProductsRepository(docStore),
		localcache.NewCatalogCache(localCache),
		app.outbound.producer,
		app.outbound.view,
		app.cfg.Catalog.ResyncInterval,
		app.cfg.Catalog.VersionPollInterval,
	)
	if err := catalog.Bootstrap(app.ctx); err != nil {
		app.fallDown(op, err)
	}

	cart := service.NewCartService(
		localcache.NewCartStore(localCache), catalog,
	)

	accounts := service.NewAccountService(
		storage.NewUsersRepository(docStore),
		storage.NewSessionsRepository(docStore),
		app.cfg.Auth.SessionTTL,
		app.cfg.Auth.ResetTokenTTL,
	)

	ordersRepo := storage.NewOrdersRepository(docStore)
	orders := service.NewOrderService(ordersRepo, cart)
	reviews := service.NewReviewService(
		storage.NewReviewsRepository(docStore), ordersRepo, catalog,
	)
	wishlist := service.NewWishlistService(
		storage.NewWishlistRepository(docStore), catalog,
	)

	app.service = coreService{
		catalog:  catalog,
		cart:     cart,
		accounts: accounts,
		orders:   orders,
		reviews:  reviews,
		wishlist: wishlist,
	}
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	auth := httphandler.NewAuthenticator(app.service.accounts)

	httphandler.RegisterCatalog(
		mux, auth, app.service.catalog, app.service.catalog,
		app.outbound.images,
	)
	httphandler.RegisterCart(mux, app.service.cart)
	httphandler.RegisterAccounts(mux, auth, app.service.accounts)
	httphandler.RegisterOrders(mux, auth, app.service.orders)
	httphandler.RegisterReviews(mux, auth, app.service.reviews)
	httphandler.RegisterWishlist(mux, auth, app.service.wishlist)
	httphandler.RegisterImages(mux, auth, app.outbound.images)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(1)
	go app.outbound.processor.Run(app.ctx, stopFn, &wg)
	wg.Wait()

	go app.outbound.view.Run(app.ctx)
	go app.service.catalog.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.outbound.processor.Close()
	app.outbound.producer.Close()
	app.outbound.localCache.Close()
	app.outbound.docStore.Close(ctx)

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
