package domain

// Storage keys. Each entity collection is persisted as one serialized
// blob under a fixed key; the names are part of the stored data format
// and must not change.
const (
	ProductsKey    = "bocmarket_products"
	CartKeyName    = "bocmarket_cart"
	SalesKey       = "bocmarket_sales"
	ReturnsKey     = "bocmarket_returns"
	AppStateKey    = "bocmarket_app_state"
	EmailConfigKey = "bocmarket_email_config"
	BackupKey      = "bocmarket_backup"
)

// Event bus topics published by the transaction engines.
const (
	TopicSaleCommitted   = "checkout.sale.committed"
	TopicReturnCommitted = "checkout.return.committed"
)

// AppState is a loose map of lifecycle flags (hasCartItems,
// cartItemsCount, hasProducts, ...) kept in sync as a convenience
// signal for collaborators; it is not required for correctness.
type AppState map[string]interface{}

// EmailConfig holds receipt delivery settings.
type EmailConfig struct {
	DefaultEmail             string `json:"defaultEmail"`
	EnableEmailNotifications bool   `json:"enableEmailNotifications"`
	AutoSendReceipts         bool   `json:"autoSendReceipts"`
	EmailServiceProvider     string `json:"emailServiceProvider"`
}

// DefaultEmailConfig mirrors the defaults used when no configuration
// has been stored yet.
func DefaultEmailConfig() EmailConfig {
	return EmailConfig{
		EmailServiceProvider: "mailto",
	}
}

// EmailResult reports a receipt delivery attempt.
type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Backup is a full snapshot of the persisted state, stored under its
// own key and exchangeable with the export/import collaborators.
type Backup struct {
	Products    []Product   `json:"products"`
	Sales       []Sale      `json:"sales"`
	AppState    AppState    `json:"appState"`
	EmailConfig EmailConfig `json:"emailConfig"`
	BackupDate  string      `json:"backupDate"`
	Version     string      `json:"version"`
}
