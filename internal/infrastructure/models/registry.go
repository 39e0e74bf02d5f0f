package models

// All lists every model in dependency order for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Plan{},
		&Establishment{},
		&Category{},
		&Product{},
		&Neighborhood{},
		&Table{},
		&Command{},
		&Order{},
		&Reservation{},
		&Setting{},
		&Subscription{},
		&SubscriptionReminder{},
	}
}
