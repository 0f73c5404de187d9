package settings

import (
	"context"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/store"
)

// Manager persists the app lifecycle flags and the email
// configuration. Both are simple key-value settings consumed by the
// transaction core (auto-receipt flag) and the UI collaborators.
type Manager struct {
	store *store.Store
}

func NewManager(s *store.Store) *Manager {
	return &Manager{store: s}
}

// AppState returns the stored flag map, empty when missing or
// unreadable.
func (m *Manager) AppState(ctx context.Context) domain.AppState {
	state := domain.AppState{}
	if _, err := m.store.GetJSON(domain.AppStateKey, &state); err != nil {
		zap.L().Error("failed to load app state", zap.Error(err))
		return domain.AppState{}
	}
	if state == nil {
		state = domain.AppState{}
	}
	return state
}

// MergeAppState merges the patch into the stored state and stamps
// lastSaved.
func (m *Manager) MergeAppState(ctx context.Context, patch map[string]interface{}) error {
	state := m.AppState(ctx)
	for k, v := range patch {
		state[k] = v
	}
	state["lastSaved"] = time.Now().Format(time.RFC3339)
	return m.store.PutJSON(domain.AppStateKey, state)
}

// BoolFlag reads one lifecycle flag as a boolean.
func (m *Manager) BoolFlag(ctx context.Context, name string) bool {
	return cast.ToBool(m.AppState(ctx)[name])
}

// IntFlag reads one lifecycle flag as an integer.
func (m *Manager) IntFlag(ctx context.Context, name string) int {
	return cast.ToInt(m.AppState(ctx)[name])
}

// EmailConfig returns the stored email settings, or the documented
// defaults when nothing has been saved yet.
func (m *Manager) EmailConfig(ctx context.Context) domain.EmailConfig {
	cfg := domain.DefaultEmailConfig()
	ok, err := m.store.GetJSON(domain.EmailConfigKey, &cfg)
	if err != nil {
		zap.L().Error("failed to load email config", zap.Error(err))
		return domain.DefaultEmailConfig()
	}
	if !ok {
		return domain.DefaultEmailConfig()
	}
	return cfg
}

// SaveEmailConfig persists the email settings.
func (m *Manager) SaveEmailConfig(ctx context.Context, cfg domain.EmailConfig) error {
	return m.store.PutJSON(domain.EmailConfigKey, cfg)
}
