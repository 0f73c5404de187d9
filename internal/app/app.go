package app

import (
	"os"
	"time"
	_ "time/tzdata"

	evbus "github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/talkincode/bocmarket/config"
	"github.com/talkincode/bocmarket/internal/backup"
	"github.com/talkincode/bocmarket/internal/cart"
	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/checkout"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
	"github.com/talkincode/bocmarket/internal/receipt"
	"github.com/talkincode/bocmarket/internal/report"
	"github.com/talkincode/bocmarket/internal/settings"
	"github.com/talkincode/bocmarket/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	kvstore   *store.Store
	node      *snowflake.Node
	bus       evbus.Bus
	sched     *cron.Cron

	salesRepo   ledger.SalesRepository
	returnsRepo ledger.ReturnsRepository
	catalogSvc  *catalog.Service
	cartSvc     *cart.Service
	purchaseSvc *checkout.PurchaseService
	returnSvc   *checkout.ReturnService
	reportSvc   *report.Service
	settingsMgr *settings.Manager
	receiptSvc  *receipt.Service
	backupSvc   *backup.Service
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }

func (a *Application) Store() *store.Store { return a.kvstore }

// OverrideStore replaces the application's store handle (used in tests).
func (a *Application) OverrideStore(s *store.Store) {
	a.kvstore = s
	a.wireServices()
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		zap.S().Warnf("failed to create workdir: %v", err)
	}

	a.kvstore, err = store.Open(cfg.StorePath())
	if err != nil {
		zap.S().Fatalf("store open failed: %v", err)
	}
	zap.S().Infof("store opened: %s", cfg.StorePath())

	a.node, err = snowflake.NewNode(cfg.ID.Node)
	if err != nil {
		zap.S().Fatalf("id node init failed: %v", err)
	}

	a.bus = evbus.New()
	a.wireServices()

	a.checkDefaultData()

	a.initJob()
}

// wireServices builds the service graph on top of the current store.
func (a *Application) wireServices() {
	productRepo := catalog.NewBoltRepository(a.kvstore)
	cartRepo := cart.NewBoltRepository(a.kvstore)
	salesRepo := ledger.NewBoltSalesRepository(a.kvstore)
	returnsRepo := ledger.NewBoltReturnsRepository(a.kvstore)
	a.salesRepo = salesRepo
	a.returnsRepo = returnsRepo

	if a.bus == nil {
		a.bus = evbus.New()
	}

	a.settingsMgr = settings.NewManager(a.kvstore)
	a.catalogSvc = catalog.NewService(productRepo, a.node)
	a.cartSvc = cart.NewService(cartRepo, productRepo, a.settingsMgr)
	a.purchaseSvc = checkout.NewPurchaseService(productRepo, a.cartSvc, salesRepo, a.node, a.bus)
	a.returnSvc = checkout.NewReturnService(productRepo, salesRepo, returnsRepo, a.node, a.bus)
	a.reportSvc = report.NewService(salesRepo)
	a.receiptSvc = receipt.NewService(a.settingsMgr, a.appConfig.Smtp)
	a.backupSvc = backup.NewService(a.kvstore, productRepo, salesRepo, a.settingsMgr)

	// Async so a slow SMTP delivery never holds up the checkout
	// response publishing the event.
	if err := a.bus.SubscribeAsync(domain.TopicSaleCommitted, a.receiptSvc.HandleSaleCommitted, false); err != nil {
		zap.S().Errorf("receipt subscription failed: %v", err)
	}
}

func (a *Application) Catalog() *catalog.Service           { return a.catalogSvc }
func (a *Application) Cart() *cart.Service                 { return a.cartSvc }
func (a *Application) Purchase() *checkout.PurchaseService { return a.purchaseSvc }
func (a *Application) Returns() *checkout.ReturnService    { return a.returnSvc }
func (a *Application) Report() *report.Service             { return a.reportSvc }
func (a *Application) Settings() *settings.Manager         { return a.settingsMgr }
func (a *Application) Receipt() *receipt.Service           { return a.receiptSvc }
func (a *Application) Backup() *backup.Service             { return a.backupSvc }
func (a *Application) SalesLedger() ledger.SalesRepository { return a.salesRepo }

func (a *Application) ReturnsLedger() ledger.ReturnsRepository { return a.returnsRepo }

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron { return a.sched }

// Bus returns the application event bus
func (a *Application) Bus() evbus.Bus { return a.bus }

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.kvstore != nil {
		_ = a.kvstore.Close()
	}
	_ = zap.L().Sync()
}
