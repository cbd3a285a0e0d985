package alerts

import "errors"

var (
	ErrWebhookDisabled = errors.New("webhook alerter is disabled")
	ErrWebhookCooldown = errors.New("alert is within cooldown period")
	ErrWebhookStatus   = errors.New("webhook returned non-success status")
)
