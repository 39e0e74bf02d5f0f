package entities

import (
	"strconv"
	"strings"
)

// Canonical setting keys
const (
	SettingStoreName          = "store_name"
	SettingStoreLogo          = "store_logo"
	SettingPrimaryColor       = "primary_color"
	SettingIsOpen             = "is_open"
	SettingPixKey             = "pix_key"
	SettingWhatsappKitchen    = "whatsapp_kitchen"
	SettingWhatsappCashier    = "whatsapp_cashier"
	SettingEnableReservations = "enable_reservations"
	SettingEnableAI           = "enable_ai"
	SettingAIProvider         = "ai_provider"
	SettingAIAPIKey           = "ai_api_key"
	SettingEvolutionEnabled   = "evolution_enabled"
	SettingEvolutionAPIURL    = "evolution_api_url"
	SettingEvolutionAPIKey    = "evolution_api_key"
	SettingEvolutionInstance  = "evolution_instance"
)

// DefaultPrimaryColor is the brand color assigned at registration
const DefaultPrimaryColor = "#f97316"

// SettingAlias maps a key written by older admin consoles to its canonical name
type SettingAlias struct {
	Legacy    string
	Canonical string
}

// LegacySettingAliases is ordered by precedence: when two aliases share a
// canonical key, the earlier one wins.
var LegacySettingAliases = []SettingAlias{
	{Legacy: "logo_url", Canonical: SettingStoreLogo},
	{Legacy: "brand_color", Canonical: SettingPrimaryColor},
	{Legacy: "theme_color", Canonical: SettingPrimaryColor},
	{Legacy: "automation_enabled", Canonical: SettingEvolutionEnabled},
	{Legacy: "whatsapp_number", Canonical: SettingWhatsappCashier},
}

// IsLegacySettingKey reports whether key is one of LegacySettingAliases
func IsLegacySettingKey(key string) bool {
	for _, a := range LegacySettingAliases {
		if a.Legacy == key {
			return true
		}
	}
	return false
}

// StoreSettings is the typed view over a tenant's key/value settings rows.
// Keys outside the known set are kept verbatim in Extra.
type StoreSettings struct {
	StoreName          string `json:"store_name" validate:"max=120"`
	StoreLogo          string `json:"store_logo" validate:"omitempty,url"`
	PrimaryColor       string `json:"primary_color" validate:"omitempty,hexcolor"`
	IsOpen             bool   `json:"is_open"`
	PixKey             string `json:"pix_key" validate:"max=140"`
	WhatsappKitchen    string `json:"whatsapp_kitchen" validate:"omitempty,min=8,max=20"`
	WhatsappCashier    string `json:"whatsapp_cashier" validate:"omitempty,min=8,max=20"`
	EnableReservations bool   `json:"enable_reservations"`
	EnableAI           bool   `json:"enable_ai"`
	AIProvider         string `json:"ai_provider" validate:"omitempty,oneof=gemini openai anthropic"`
	AIAPIKey           string `json:"-"`
	EvolutionEnabled   bool   `json:"evolution_enabled"`
	EvolutionAPIURL    string `json:"-" validate:"omitempty,url"`
	EvolutionAPIKey    string `json:"-"`
	EvolutionInstance  string `json:"-" validate:"max=120"`

	Extra map[string]string `json:"-"`
}

// PublicSettings is the subset of settings a customer facing menu may read
type PublicSettings struct {
	StoreName          string `json:"store_name"`
	StoreLogo          string `json:"store_logo"`
	PrimaryColor       string `json:"primary_color"`
	IsOpen             bool   `json:"is_open"`
	PixKey             string `json:"pix_key"`
	WhatsappCashier    string `json:"whatsapp_cashier"`
	EnableReservations bool   `json:"enable_reservations"`
	EnableAI           bool   `json:"enable_ai"`
}

// MigrateLegacyKeys renames aliased keys to their canonical name.
// A canonical key already present wins over its alias.
func MigrateLegacyKeys(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if !IsLegacySettingKey(k) {
			out[k] = v
		}
	}
	for _, a := range LegacySettingAliases {
		v, ok := raw[a.Legacy]
		if !ok {
			continue
		}
		if _, exists := out[a.Canonical]; !exists {
			out[a.Canonical] = v
		}
	}
	return out
}

// ParseSettings builds the typed view from stored rows
func ParseSettings(raw map[string]string) StoreSettings {
	m := MigrateLegacyKeys(raw)
	s := StoreSettings{
		StoreName:          m[SettingStoreName],
		StoreLogo:          m[SettingStoreLogo],
		PrimaryColor:       m[SettingPrimaryColor],
		IsOpen:             ParseFlag(m[SettingIsOpen]),
		PixKey:             m[SettingPixKey],
		WhatsappKitchen:    m[SettingWhatsappKitchen],
		WhatsappCashier:    m[SettingWhatsappCashier],
		EnableReservations: ParseFlag(m[SettingEnableReservations]),
		EnableAI:           ParseFlag(m[SettingEnableAI]),
		AIProvider:         m[SettingAIProvider],
		AIAPIKey:           m[SettingAIAPIKey],
		EvolutionEnabled:   ParseFlag(m[SettingEvolutionEnabled]),
		EvolutionAPIURL:    m[SettingEvolutionAPIURL],
		EvolutionAPIKey:    m[SettingEvolutionAPIKey],
		EvolutionInstance:  m[SettingEvolutionInstance],
		Extra:              map[string]string{},
	}
	if _, ok := m[SettingIsOpen]; !ok {
		s.IsOpen = true
	}
	for k, v := range m {
		if !isKnownSetting(k) {
			s.Extra[k] = v
		}
	}
	return s
}

// AutomationReady reports whether order notifications should be sent
func (s StoreSettings) AutomationReady() bool {
	return s.EvolutionEnabled && strings.TrimSpace(s.EvolutionAPIURL) != ""
}

// TargetFor picks the kitchen number for table orders and the cashier number otherwise
func (s StoreSettings) TargetFor(t OrderType) string {
	if t == OrderTypeTable {
		return s.WhatsappKitchen
	}
	return s.WhatsappCashier
}

// Public strips credentials and internal routing numbers
func (s StoreSettings) Public() PublicSettings {
	return PublicSettings{
		StoreName:          s.StoreName,
		StoreLogo:          s.StoreLogo,
		PrimaryColor:       s.PrimaryColor,
		IsOpen:             s.IsOpen,
		PixKey:             s.PixKey,
		WhatsappCashier:    s.WhatsappCashier,
		EnableReservations: s.EnableReservations,
		EnableAI:           s.EnableAI,
	}
}

// DefaultSettings are written for every new establishment
func DefaultSettings(storeName string) map[string]string {
	return map[string]string{
		SettingStoreName:    storeName,
		SettingIsOpen:       "1",
		SettingPrimaryColor: DefaultPrimaryColor,
	}
}

// ParseFlag accepts the truthy spellings admin consoles have used over time
func ParseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes", "sim":
		return true
	}
	return false
}

// FormatFlag renders a boolean the way settings rows store it
func FormatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// StringifySettingValue converts a decoded JSON value to its stored string form.
// nil becomes the empty string; booleans become "1"/"0".
// Objects and arrays have no flat form and report false.
func StringifySettingValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case bool:
		return FormatFlag(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

func isKnownSetting(key string) bool {
	switch key {
	case SettingStoreName, SettingStoreLogo, SettingPrimaryColor, SettingIsOpen, SettingPixKey,
		SettingWhatsappKitchen, SettingWhatsappCashier, SettingEnableReservations, SettingEnableAI,
		SettingAIProvider, SettingAIAPIKey, SettingEvolutionEnabled, SettingEvolutionAPIURL,
		SettingEvolutionAPIKey, SettingEvolutionInstance:
		return true
	}
	return false
}
