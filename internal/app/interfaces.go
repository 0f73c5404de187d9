package app

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/talkincode/bocmarket/config"
	"github.com/talkincode/bocmarket/internal/backup"
	"github.com/talkincode/bocmarket/internal/cart"
	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/checkout"
	"github.com/talkincode/bocmarket/internal/ledger"
	"github.com/talkincode/bocmarket/internal/receipt"
	"github.com/talkincode/bocmarket/internal/report"
	"github.com/talkincode/bocmarket/internal/settings"
	"github.com/talkincode/bocmarket/internal/store"
)

// StoreProvider provides key-value store access
type StoreProvider interface {
	Store() *store.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides app state and email settings access
type SettingsProvider interface {
	Settings() *settings.Manager
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the application event bus
type BusProvider interface {
	Bus() evbus.Bus
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	StoreProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	BusProvider

	Catalog() *catalog.Service
	Cart() *cart.Service
	Purchase() *checkout.PurchaseService
	Returns() *checkout.ReturnService
	Report() *report.Service
	Receipt() *receipt.Service
	Backup() *backup.Service
	SalesLedger() ledger.SalesRepository
	ReturnsLedger() ledger.ReturnsRepository

	// InitializeDefaultData seeds the catalog on first run
	InitializeDefaultData()
	// CreateDemoData writes demonstration products and sales
	CreateDemoData() error
}
