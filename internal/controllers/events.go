package controllers

// Publisher emits lifecycle events (suspended, unsuspended, ban_due) to the
// outward channels: the MQTT topic and the web feed. May be nil.
type Publisher interface {
	PublishLifecycle(event, discordID, detail string)
}

func publish(p Publisher, event, discordID, detail string) {
	if p != nil {
		p.PublishLifecycle(event, discordID, detail)
	}
}

// MultiPublisher fans one event out to several sinks.
type MultiPublisher []Publisher

func (m MultiPublisher) PublishLifecycle(event, discordID, detail string) {
	for _, p := range m {
		publish(p, event, discordID, detail)
	}
}
