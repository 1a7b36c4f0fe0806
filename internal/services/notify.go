package services

import "pawhaven/internal/log"

// Notifier delivers out-of-band messages to users (booking decisions,
// password resets). The default implementation only writes an audit line;
// a mail or SMS sender can be dropped in behind the same interface.
type Notifier interface {
	Notify(userID, subject, body string)
}

type LogNotifier struct{}

func (LogNotifier) Notify(userID, subject, body string) {
	log.Audit(nil, "notify", map[string]any{"user_id": userID, "subject": subject})
}
