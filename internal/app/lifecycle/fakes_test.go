package lifecycle_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jsamuelsen11/go-mail-relay/internal/app/lifecycle"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// callLog records calls across fakes in the order they happen.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	l.calls = append(l.calls, call)
	l.mu.Unlock()
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (l *callLog) count(call string) int {
	n := 0
	for _, c := range l.snapshot() {
		if c == call {
			n++
		}
	}
	return n
}

// fakeDep is a scriptable ports.Dependency.
type fakeDep struct {
	name domain.Dependency
	log  *callLog

	mu       sync.Mutex
	deepErr  error
	onceErr  error
	closeErr error
	deepFn   func(context.Context) error
	onceFn   func(context.Context) error
	closeFn  func(context.Context) error
}

func (d *fakeDep) Name() domain.Dependency { return d.name }

func (d *fakeDep) ProbeDeep(ctx context.Context) error {
	d.log.add("deep:" + d.name.String())
	d.mu.Lock()
	fn, err := d.deepFn, d.deepErr
	d.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return err
}

func (d *fakeDep) ProbeOnce(ctx context.Context) error {
	d.log.add("once:" + d.name.String())
	d.mu.Lock()
	fn, err := d.onceFn, d.onceErr
	d.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return err
}

func (d *fakeDep) Close(ctx context.Context) error {
	d.log.add("close:" + d.name.String())
	d.mu.Lock()
	fn, err := d.closeFn, d.closeErr
	d.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return err
}

func (d *fakeDep) setOnceErr(err error) {
	d.mu.Lock()
	d.onceErr = err
	d.mu.Unlock()
}

func (d *fakeDep) setOnceFn(fn func(context.Context) error) {
	d.mu.Lock()
	d.onceFn = fn
	d.mu.Unlock()
}

type fakeStore struct{ *fakeDep }

func (fakeStore) ResetConnection()                                      {}
func (fakeStore) SaveMessage(context.Context, *message.Message) error   { return nil }
func (fakeStore) UpdateMessage(context.Context, *message.Message) error { return nil }
func (fakeStore) GetMessage(context.Context, string) (*message.Message, error) {
	return nil, domain.ErrNotFound
}
func (fakeStore) ListMessages(context.Context, message.Filter) ([]message.Message, error) {
	return nil, nil
}

type fakeQueue struct {
	*fakeDep

	mu          sync.Mutex
	registerErr error
	handler     ports.JobHandler
	listeners   map[ports.QueueEvent]int
}

func (q *fakeQueue) Enqueue(_ context.Context, id string) (ports.Job, error) {
	return ports.Job{ID: 1, MessageID: id}, nil
}

func (q *fakeQueue) Pause(context.Context) error {
	q.log.add("pause:queue")
	return nil
}

func (q *fakeQueue) RegisterProcessor(h ports.JobHandler) error {
	q.log.add("register:queue")
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.registerErr != nil {
		return q.registerErr
	}
	q.handler = h
	return nil
}

func (q *fakeQueue) On(ev ports.QueueEvent, _ ports.QueueEventListener) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.listeners == nil {
		q.listeners = make(map[ports.QueueEvent]int)
	}
	q.listeners[ev]++
}

type fakeMail struct{ *fakeDep }

func (fakeMail) Send(context.Context, *message.Message) error { return nil }

type fakeProcessor struct{}

func (fakeProcessor) Deliver(context.Context, ports.Job) error          { return nil }
func (fakeProcessor) HandleEvent(context.Context, ports.QueueEventInfo) {}

// fixture bundles the three fakes sharing one call log.
type fixture struct {
	log   *callLog
	data  *fakeDep
	queue *fakeQueue
	mail  *fakeDep
}

func newFixture() *fixture {
	log := &callLog{}
	return &fixture{
		log:   log,
		data:  &fakeDep{name: domain.DependencyData, log: log},
		queue: &fakeQueue{fakeDep: &fakeDep{name: domain.DependencyQueue, log: log}},
		mail:  &fakeDep{name: domain.DependencyMail, log: log},
	}
}

func (f *fixture) deps() lifecycle.Dependencies {
	return lifecycle.Dependencies{
		Data:  fakeStore{f.data},
		Queue: f.queue,
		Mail:  fakeMail{f.mail},
	}
}

var errDown = errors.New("connection refused")
