package model

// All lists every table owned by this service in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Team{},
		&Chat{},
		&Membership{},
		&Message{},
		&Edge{},
		&Notification{},
	}
}
