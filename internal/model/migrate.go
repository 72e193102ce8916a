package model

// All lists every table owned by this service, in dependency order.
func All() []interface{} {
	return []interface{}{
		&ChatSession{},
		&ChatMessage{},
		&Contact{},
		&ServiceRequest{},
		&Consultation{},
		&PhoneCall{},
	}
}
