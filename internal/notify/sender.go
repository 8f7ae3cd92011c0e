package notify

import (
	"context"

	"ruleproc/internal/domain"
)

// Sender delivers one rendered message to one recipient address over a
// specific method. Grounded on the teacher's ChannelSender interface in
// internal/notify/notify.go, narrowed from the teacher's multi-channel
// (Telegram/HTTP/Mattermost/tracker) transport set to this spec's LOG/MAIL/
// SMS methods.
// Params: ctx bounds the call; message is the fully rendered, timestamp-
// prefixed text; recipient is the address/phone number (empty for LOG).
// Returns: a delivery error, classified via internal/permanent when the
// failure is configuration-shaped rather than transport-shaped.
type Sender interface {
	Method() domain.NotifyMethod
	Send(ctx context.Context, message, recipient string) error
}
