package queue

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/leadgen/internal/entity"
	"github.com/xavierca1/leadgen/internal/usecase"
)

type fakeAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked++
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

// Só os métodos usados pelo worker são implementados.
type fakeRepo struct {
	entity.LeadRepositoryInterface
	created  []*entity.Lead
	updates  []entity.OutreachUpdate
	createFn func(*entity.Lead) error
}

func (r *fakeRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if r.createFn != nil {
		if err := r.createFn(lead); err != nil {
			return err
		}
	}
	lead.ID = int64(len(r.created) + 1)
	r.created = append(r.created, lead)
	return nil
}

func (r *fakeRepo) UpdateOutreachStatus(ctx context.Context, id int64, update entity.OutreachUpdate) error {
	if id != 1 {
		return entity.ErrLeadNotFound
	}
	r.updates = append(r.updates, update)
	return nil
}

type fakeSessions struct {
	repo     *fakeRepo
	opened   int
	released int
}

func (s *fakeSessions) WithLeads(ctx context.Context, fn func(entity.LeadRepositoryInterface) error) error {
	s.opened++
	defer func() { s.released++ }()
	return fn(s.repo)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadRegistered(ctx context.Context, event usecase.LeadRegisteredEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func delivery(ack amqp.Acknowledger, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte(body)}
}

func TestWorkerRegistersScrapedLead(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{}}
	pub := new(MockPublisher)
	pub.On("PublishLeadRegistered", mock.Anything, mock.MatchedBy(func(e usecase.LeadRegisteredEvent) bool {
		return e.LeadID == 1 && e.BusinessName == "Lavandería Express" && e.Email == "hola@express.cl"
	})).Return(nil)

	w := NewWorker(nil, sessions, pub)
	ack := &fakeAcknowledger{}
	w.handle(context.Background(), ScrapedQueue, delivery(ack,
		`{"name":"Lavandería Express","city":"Santiago","email":"HOLA@express.cl","rating":4.2,"reviews":31}`))

	assert.Equal(t, 1, ack.acked)
	assert.Equal(t, 0, ack.nacked)
	require.Len(t, sessions.repo.created, 1)
	lead := sessions.repo.created[0]
	assert.Equal(t, "Santiago", *lead.City)
	assert.Equal(t, 31, *lead.ReviewsCount)
	assert.Equal(t, entity.DefaultExtractionSource, lead.ExtractionSource)
	assert.Equal(t, 1, sessions.opened)
	assert.Equal(t, 1, sessions.released)
	pub.AssertExpectations(t)
}

func TestWorkerAcksDuplicateLead(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{createFn: func(*entity.Lead) error {
		return entity.ErrLeadAlreadyExists
	}}}

	w := NewWorker(nil, sessions, nil)
	ack := &fakeAcknowledger{}
	w.handle(context.Background(), ScrapedQueue, delivery(ack, `{"name":"Lavandería Express"}`))

	assert.Equal(t, 1, ack.acked)
	assert.Equal(t, 0, ack.nacked)
}

func TestWorkerRejectsMalformedJSON(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{}}
	w := NewWorker(nil, sessions, nil)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), ScrapedQueue, delivery(ack, `{not json`))

	assert.Equal(t, 0, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.False(t, ack.requeue)
	assert.Equal(t, 0, sessions.opened)
}

func TestWorkerRejectsInvalidLead(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{}}
	w := NewWorker(nil, sessions, nil)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), ScrapedQueue, delivery(ack, `{"name":""}`))

	assert.Equal(t, 1, ack.nacked)
	assert.Empty(t, sessions.repo.created)
	assert.Equal(t, sessions.opened, sessions.released)
}

func TestWorkerRecordsOutreachEvent(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{}}
	w := NewWorker(nil, sessions, nil)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), OutreachQueue, delivery(ack,
		`{"lead_id":1,"channel":"whatsapp","sent":true,"sent_at":"2026-10-01T10:00:00Z"}`))

	assert.Equal(t, 1, ack.acked)
	require.Len(t, sessions.repo.updates, 1)
	u := sessions.repo.updates[0]
	assert.Equal(t, entity.ChannelWhatsApp, u.Channel)
	assert.True(t, u.Sent)
	assert.Equal(t, 2026, u.At.Year())
}

func TestWorkerRejectsOutreachWithoutSentField(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{}}
	w := NewWorker(nil, sessions, nil)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), OutreachQueue, delivery(ack, `{"lead_id":1,"channel":"email"}`))

	assert.Equal(t, 0, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.False(t, ack.requeue)
	assert.Empty(t, sessions.repo.updates)
}

func TestWorkerRejectsOutreachForUnknownLead(t *testing.T) {
	sessions := &fakeSessions{repo: &fakeRepo{}}
	w := NewWorker(nil, sessions, nil)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), OutreachQueue, delivery(ack, `{"lead_id":77,"channel":"email","sent":true}`))

	assert.Equal(t, 1, ack.nacked)
	assert.Empty(t, sessions.repo.updates)
}

func TestWorkerUnknownQueue(t *testing.T) {
	w := NewWorker(nil, &fakeSessions{repo: &fakeRepo{}}, nil)
	err := w.process(context.Background(), "q.other", []byte(`{}`))
	assert.Error(t, err)
}

type fakeConsumer struct {
	err error
}

func (c *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	if c.err != nil {
		return nil, c.err
	}
	return make(chan amqp.Delivery), nil
}

func TestWorkerStartStopsOnContextCancel(t *testing.T) {
	w := NewWorker(&fakeConsumer{}, &fakeSessions{repo: &fakeRepo{}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Start(ctx))
}

func TestWorkerStartConsumeFailure(t *testing.T) {
	w := NewWorker(&fakeConsumer{err: errors.New("channel closed")}, &fakeSessions{repo: &fakeRepo{}}, nil)
	assert.Error(t, w.Start(context.Background()))
}
