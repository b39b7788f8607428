package settings

import (
	"time"

	"go-cra/internal/features/notification"
)

type SettingsType string

const (
	SettingsTypeOptionLists       SettingsType = "option_lists"
	SettingsTypeNotificationFlows SettingsType = "notification_flows"
)

// OptionListsConfig holds the admin-managed dropdown values the request form
// offers.
type OptionListsConfig struct {
	ProductTypes []string `bson:"product_types" json:"productTypes"`
	Priorities   []string `bson:"priorities" json:"priorities"`
	Units        []string `bson:"units" json:"units"`
}

// NotificationFlowsConfig stores flow-rule overrides; rules for events not
// listed here fall back to the dispatcher defaults.
type NotificationFlowsConfig struct {
	Rules []notification.FlowRule `bson:"rules" json:"rules"`
}

type Settings struct {
	Type              SettingsType             `bson:"type" json:"type"`
	OptionLists       *OptionListsConfig       `bson:"option_lists,omitempty" json:"optionLists,omitempty"`
	NotificationFlows *NotificationFlowsConfig `bson:"notification_flows,omitempty" json:"notificationFlows,omitempty"`
	UpdatedAt         time.Time                `bson:"updated_at" json:"updatedAt"`
}

// DefaultOptionLists seeds a fresh installation.
func DefaultOptionLists() *OptionListsConfig {
	return &OptionListsConfig{
		ProductTypes: []string{"enclosure", "bracket", "assembly", "custom"},
		Priorities:   []string{"low", "normal", "high", "urgent"},
		Units:        []string{"pcs", "set", "kg", "m"},
	}
}
