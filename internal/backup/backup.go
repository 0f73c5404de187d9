package backup

import (
	"context"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/ledger"
	"github.com/talkincode/bocmarket/internal/settings"
	"github.com/talkincode/bocmarket/internal/store"
)

const backupVersion = "1.0.0"

// Service snapshots and restores the persisted state. Snapshots live
// under their own key; the file import/export collaborators exchange
// the same shape.
type Service struct {
	store    *store.Store
	products catalog.Repository
	sales    ledger.SalesRepository
	settings *settings.Manager
}

func NewService(s *store.Store, products catalog.Repository,
	sales ledger.SalesRepository, mgr *settings.Manager) *Service {
	return &Service{store: s, products: products, sales: sales, settings: mgr}
}

// Create captures products, sales, app state and email configuration
// into a snapshot and stores it.
func (s *Service) Create(ctx context.Context) (*domain.Backup, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	b := &domain.Backup{
		Products:    products,
		Sales:       sales,
		AppState:    s.settings.AppState(ctx),
		EmailConfig: s.settings.EmailConfig(ctx),
		BackupDate:  time.Now().Format(time.RFC3339),
		Version:     backupVersion,
	}
	if err := s.store.PutJSON(domain.BackupKey, b); err != nil {
		return nil, err
	}
	zap.L().Info("backup created",
		zap.Int("products", len(b.Products)), zap.Int("sales", len(b.Sales)))
	return b, nil
}

// Restore applies a snapshot supplied as loose JSON data. Sections
// are restored independently; the cart is cleared defensively since a
// restored catalog invalidates pending lines.
func (s *Service) Restore(ctx context.Context, raw map[string]interface{}) error {
	if len(raw) == 0 {
		return errors.New("invalid backup data")
	}

	var b domain.Backup
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &b,
		WeaklyTypedInput: true,
		TagName:          "json",
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return errors.Wrap(err, "decode backup")
	}

	if b.Products != nil {
		if err := s.products.SaveAll(ctx, b.Products); err != nil {
			return errors.Wrap(err, "restore products")
		}
	}
	if b.Sales != nil {
		if err := s.sales.ReplaceAll(ctx, b.Sales); err != nil {
			return errors.Wrap(err, "restore sales")
		}
	}
	if _, ok := raw["emailConfig"]; ok {
		if err := s.settings.SaveEmailConfig(ctx, b.EmailConfig); err != nil {
			return errors.Wrap(err, "restore email config")
		}
	}

	if err := s.store.Remove(domain.CartKeyName); err != nil {
		zap.L().Warn("failed to clear cart on restore", zap.Error(err))
	}

	err = s.settings.MergeAppState(ctx, map[string]interface{}{
		"hasProducts":    len(b.Products) > 0,
		"productsCount":  len(b.Products),
		"hasCartItems":   false,
		"cartItemsCount": 0,
	})
	if err != nil {
		return errors.Wrap(err, "restore app state")
	}

	zap.L().Info("backup restored",
		zap.Int("products", len(b.Products)), zap.Int("sales", len(b.Sales)))
	return nil
}
