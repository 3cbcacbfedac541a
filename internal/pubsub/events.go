package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Submission lifecycle topics.
const (
	TopicSubmissionStarted   = "aprovados.submission.started"
	TopicSubmissionSucceeded = "aprovados.submission.succeeded"
	TopicSubmissionFailed    = "aprovados.submission.failed"
	TopicDraftReset          = "aprovados.draft.reset"
)

// SubmissionTopics lists every lifecycle topic, in order of occurrence.
var SubmissionTopics = []string{
	TopicSubmissionStarted,
	TopicSubmissionSucceeded,
	TopicSubmissionFailed,
	TopicDraftReset,
}

// SubmissionEvent is the JSON payload of the lifecycle topics.
type SubmissionEvent struct {
	DraftID   string    `json:"draft_id"`
	Nome      string    `json:"nome,omitempty"`
	Concursos int       `json:"concursos,omitempty"`
	HasPhoto  bool      `json:"has_photo,omitempty"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// PublishEvent encodes ev and publishes it on topic.
func PublishEvent(ctx context.Context, pub Publisher, topic string, ev SubmissionEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}
	return pub.Publish(ctx, Message{Topic: topic, DraftID: ev.DraftID, Payload: payload})
}

// DecodeEvent parses a lifecycle message payload.
func DecodeEvent(msg Message) (SubmissionEvent, error) {
	var ev SubmissionEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return ev, fmt.Errorf("decode %s event: %w", msg.Topic, err)
	}
	return ev, nil
}
