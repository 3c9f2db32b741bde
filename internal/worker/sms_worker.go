package worker

// sms_worker.go
// Processes SMS jobs from QueueSMS through the SMS gateway client.

import (
	"context"
	"encoding/json"

	"kgwahlawifi/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SMSJobPayload is the job envelope sent to QueueSMS.
// To must already be normalized to 27XXXXXXXXX.
type SMSJobPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SMSWorker processes SMS jobs from QueueSMS.
type SMSWorker struct {
	client *infra.SMSClient
	rdb    *redis.Client
}

func NewSMSWorker(client *infra.SMSClient, rdb *redis.Client) *SMSWorker {
	return &SMSWorker{client: client, rdb: rdb}
}

// Process sends a single text message.
func (w *SMSWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload SMSJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("sms_worker: invalid payload")
		return
	}
	if payload.To == "" {
		log.Warn().Msg("sms_worker: empty recipient — skipping")
		return
	}

	if err := w.client.Send(ctx, payload.To, payload.Message); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("sms_worker: failed to send SMS")
		SendToDLQ(ctx, w.rdb, QueueSMS, "sms", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.To).Msg("sms_worker: SMS sent")
}
