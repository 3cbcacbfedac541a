// Package form holds the per-visitor registration draft and orchestrates its
// single outbound submission.
package form

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/aprovados/internal/domain"
	"github.com/nfrund/aprovados/internal/logging"
	"github.com/nfrund/aprovados/internal/phone"
	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/nfrund/aprovados/internal/storage"
	"github.com/nfrund/aprovados/internal/submission"
)

// DefaultResetDelay is how long the success indicator stays up before the
// draft is cleared.
const DefaultResetDelay = 3 * time.Second

// Field names a text input of the form.
type Field string

const (
	FieldNome     Field = "nome"
	FieldEmail    Field = "email"
	FieldTelefone Field = "telefone"
)

// Submitter sends one registration to the backend.
type Submitter interface {
	Submit(ctx context.Context, a submission.Aprovado, photo *submission.Photo) (submission.Result, error)
}

// Dependencies are shared by every State of a Registry.
type Dependencies struct {
	Submitter  Submitter
	Photos     storage.Store
	Publisher  pubsub.Publisher
	Policy     domain.PhotoPolicy
	ResetDelay time.Duration
}

// Snapshot is a read-only copy of a State for rendering.
type Snapshot struct {
	ID         string
	Draft      domain.Draft
	Submitting bool
	Submitted  bool
}

// CanSubmit is the enable rule of the submit button.
func (s Snapshot) CanSubmit() bool {
	return !s.Submitting && !s.Submitted && s.Draft.Complete()
}

// State is one visitor's form: the draft plus the submitting and submitted
// flags. Every method is safe for concurrent use; mutations are applied
// synchronously in call order.
type State struct {
	id   string
	deps *Dependencies

	mu         sync.Mutex
	draft      domain.Draft
	submitting bool
	submitted  bool
	resetTimer *time.Timer
	lastSeen   time.Time
}

func newState(id string, deps *Dependencies) *State {
	return &State{
		id:       id,
		deps:     deps,
		draft:    domain.NewDraft(),
		lastSeen: time.Now(),
	}
}

// ID returns the draft identifier.
func (s *State) ID() string {
	return s.id
}

// Snapshot returns a deep copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		ID:         s.id,
		Draft:      s.draft.Clone(),
		Submitting: s.submitting,
		Submitted:  s.submitted,
	}
}

// CanSubmit reports whether the submit action is currently enabled.
func (s *State) CanSubmit() bool {
	return s.Snapshot().CanSubmit()
}

// SetField updates a text field. The phone is stored masked.
func (s *State) SetField(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	switch field {
	case FieldNome:
		s.draft.Nome = value
	case FieldEmail:
		s.draft.Email = value
	case FieldTelefone:
		s.draft.Telefone = phone.Format(value)
	default:
		return fmt.Errorf("%q: %w", field, domain.ErrUnknownField)
	}
	return nil
}

// SetTelefone formats raw and stores it, returning the masked value.
func (s *State) SetTelefone(raw string) string {
	formatted := phone.Format(raw)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.draft.Telefone = formatted
	return formatted
}

// SetConcurso replaces the exam at index.
func (s *State) SetConcurso(index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.draft.SetConcurso(index, value)
}

// SetConcursos replaces the whole exam list, keeping at least one slot.
func (s *State) SetConcursos(values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.draft.SetConcursos(values)
}

// AddConcurso appends one empty exam slot.
func (s *State) AddConcurso() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.draft.AddConcurso()
}

// RemoveConcurso removes the exam at index unless it is the only one left.
func (s *State) RemoveConcurso(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.draft.RemoveConcurso(index)
}

// AttachPhoto checks the photo against the policy, stages its bytes and
// replaces any previously attached photo. A rejected photo leaves the draft
// untouched.
func (s *State) AttachPhoto(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*domain.Photo, error) {
	policy := s.deps.Policy
	if err := policy.Check(size, contentType); err != nil {
		return nil, err
	}
	if err := policy.CheckName(filename); err != nil {
		return nil, err
	}

	key := storage.DraftKey(s.id, filename)
	written, err := s.deps.Photos.Save(ctx, key, r)
	if err != nil {
		_ = s.deps.Photos.Delete(ctx, key)
		return nil, fmt.Errorf("stage photo: %w", err)
	}
	// The declared size comes from the client; trust what was written.
	if err := policy.Check(written, contentType); err != nil {
		_ = s.deps.Photos.Delete(ctx, key)
		return nil, err
	}

	photo := &domain.Photo{
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
		StorageKey:  key,
	}
	if err := photo.Validate(); err != nil {
		_ = s.deps.Photos.Delete(ctx, key)
		return nil, err
	}

	s.mu.Lock()
	s.touchLocked()
	previous := s.draft.Imagem
	s.draft.Imagem = photo
	s.mu.Unlock()

	if previous != nil {
		s.deletePhoto(ctx, previous.StorageKey)
	}
	p := *photo
	return &p, nil
}

// RemovePhoto detaches the photo, if any.
func (s *State) RemovePhoto(ctx context.Context) {
	s.mu.Lock()
	s.touchLocked()
	previous := s.draft.Imagem
	s.draft.Imagem = nil
	s.mu.Unlock()

	if previous != nil {
		s.deletePhoto(ctx, previous.StorageKey)
	}
}

// OpenPhoto returns the attached photo's metadata and a reader for its bytes.
func (s *State) OpenPhoto(ctx context.Context) (*domain.Photo, io.ReadCloser, error) {
	s.mu.Lock()
	photo := s.draft.Imagem
	s.mu.Unlock()

	if photo == nil {
		return nil, nil, fmt.Errorf("draft %s has no photo: %w", s.id, domain.ErrNotFound)
	}
	rc, err := s.deps.Photos.Get(ctx, photo.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open staged photo: %w", err)
	}
	p := *photo
	return &p, rc, nil
}

// Submit sends the draft once. While the request is in flight further calls
// fail with domain.ErrSubmissionInFlight. On success the submitted flag is
// set and the draft resets after the configured delay; on failure the draft
// is left as it was so the user can retry.
func (s *State) Submit(ctx context.Context) (submission.Result, error) {
	logger := logging.FromContext(ctx).With(slog.String("draft_id", s.id))

	s.mu.Lock()
	s.touchLocked()
	switch {
	case s.submitting:
		s.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	case s.submitted:
		s.mu.Unlock()
		return nil, domain.ErrAlreadySubmitted
	}
	if err := s.draft.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	d := s.draft.Clone()
	s.submitting = true
	s.mu.Unlock()

	ev := pubsub.SubmissionEvent{
		DraftID:   s.id,
		Nome:      d.Nome,
		Concursos: len(d.FilledConcursos()),
		HasPhoto:  d.Imagem != nil,
	}
	s.publish(ctx, pubsub.TopicSubmissionStarted, ev)

	result, err := s.send(ctx, d)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.mu.Unlock()
		logger.Error("Erro ao cadastrar", slog.String("error", err.Error()))
		ev.Error = err.Error()
		s.publish(ctx, pubsub.TopicSubmissionFailed, ev)
		return nil, err
	}
	s.submitted = true
	s.stopTimerLocked()
	s.resetTimer = time.AfterFunc(s.resetDelay(), s.reset)
	s.mu.Unlock()

	logger.Info("Cadastro realizado com sucesso", slog.Any("result", result))
	s.publish(ctx, pubsub.TopicSubmissionSucceeded, ev)
	return result, nil
}

func (s *State) send(ctx context.Context, d domain.Draft) (submission.Result, error) {
	var photo *submission.Photo
	if d.Imagem != nil {
		rc, err := s.deps.Photos.Get(ctx, d.Imagem.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("open staged photo: %w", err)
		}
		defer rc.Close()
		photo = &submission.Photo{
			Filename:    d.Imagem.Filename,
			ContentType: d.Imagem.ContentType,
			Content:     rc,
		}
	}
	return s.deps.Submitter.Submit(ctx, submission.FromDraft(d), photo)
}

// reset runs once after a successful submission.
func (s *State) reset() {
	s.mu.Lock()
	previous := s.draft.Imagem
	s.draft = domain.NewDraft()
	s.submitted = false
	s.resetTimer = nil
	s.mu.Unlock()

	ctx := context.Background()
	if previous != nil {
		s.deletePhoto(ctx, previous.StorageKey)
	}
	s.publish(ctx, pubsub.TopicDraftReset, pubsub.SubmissionEvent{DraftID: s.id})
}

// Close stops a pending reset. It does not alter the draft.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *State) stopTimerLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *State) touchLocked() {
	s.lastSeen = time.Now()
}

func (s *State) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen, s.submitting || s.resetTimer != nil
}

func (s *State) resetDelay() time.Duration {
	if s.deps.ResetDelay > 0 {
		return s.deps.ResetDelay
	}
	return DefaultResetDelay
}

func (s *State) deletePhoto(ctx context.Context, key string) {
	if err := s.deps.Photos.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete staged photo", "draft_id", s.id, "key", key, "error", err)
	}
}

func (s *State) publish(ctx context.Context, topic string, ev pubsub.SubmissionEvent) {
	if s.deps.Publisher == nil {
		return
	}
	if err := pubsub.PublishEvent(ctx, s.deps.Publisher, topic, ev); err != nil {
		slog.Warn("failed to publish submission event", "topic", topic, "draft_id", s.id, "error", err)
	}
}
