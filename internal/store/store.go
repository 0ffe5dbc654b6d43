package store

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/auth"
	"go-careerbridge/pkg/logger"
	"log/slog"
	"sync"
	"time"
)

// State is the root of the client state tree. Values handed out by
// Store.State are snapshots: reducers never mutate a list or record in
// place, they build new ones.
type State struct {
	User        UserState
	Job         JobState
	Company     CompanyState
	Application ApplicationState
}

func defaultPagination() domain.Pagination {
	return domain.Pagination{CurrentPage: 1, TotalPages: 1, PerPage: 10}
}

// InitialState builds the startup tree. A persisted token authenticates the
// session unless it is a JWT whose exp has passed.
func InitialState(token string, now time.Time) State {
	if !auth.Usable(token, now) {
		token = ""
	}
	return State{
		User: UserState{
			Token:           token,
			IsAuthenticated: token != "",
			Pagination:      domain.Pagination{CurrentPage: 1, TotalPages: 1},
		},
		Job: JobState{
			Pagination:       defaultPagination(),
			SearchPagination: domain.Pagination{CurrentPage: 1, TotalPages: 1},
		},
		Company: CompanyState{
			Pagination:       defaultPagination(),
			SearchPagination: domain.Pagination{CurrentPage: 1, TotalPages: 1},
		},
		Application: ApplicationState{
			Pagination:         defaultPagination(),
			ReceivedPagination: domain.Pagination{CurrentPage: 1, TotalPages: 1},
		},
	}
}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) State {
	switch a.Slice() {
	case SliceUser:
		s.User = reduceUser(s.User, a)
	case SliceJob:
		s.Job = reduceJob(s.Job, a)
	case SliceCompany:
		s.Company = reduceCompany(s.Company, a)
	case SliceApplication:
		s.Application = reduceApplication(s.Application, a)
	}
	return s
}

// lane tracks the newest request writing one part of the state. It lives
// only while that request is in flight.
type lane struct {
	gen    uint64
	cancel context.CancelFunc
}

// Request is an in-flight async action. Only the newest request on a lane
// may commit its result.
type Request struct {
	Op     Op
	Lane   string
	Seq    uint64
	cancel context.CancelFunc
}

// Store holds the state tree and serializes every reducer run.
type Store struct {
	mu      sync.Mutex
	state   State
	lanes   map[string]*lane
	seq     uint64
	subs    map[int]func(State)
	nextSub int
	log     *slog.Logger
}

func New(initial State) *Store {
	return &Store{
		state: initial,
		lanes: make(map[string]*lane),
		subs:  make(map[int]func(State)),
		log:   logger.Log,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Dispatch reduces a synchronously and notifies subscribers.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	next := s.commit(a)
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, next)
}

// Begin starts req on lane and dispatches its Pending action. A previous
// request on the same lane is cancelled and its result will be dropped. An
// empty lane is untracked: the request never goes stale.
func (s *Store) Begin(ctx context.Context, op Op, laneKey string) (context.Context, *Request) {
	ctx, cancel := context.WithCancel(ctx)
	req := &Request{Op: op, Lane: laneKey, cancel: cancel}

	s.mu.Lock()
	if laneKey != "" {
		l, ok := s.lanes[laneKey]
		if !ok {
			l = &lane{}
			s.lanes[laneKey] = l
		}
		if l.cancel != nil {
			l.cancel()
		}
		s.seq++
		l.gen = s.seq
		l.cancel = cancel
		req.Seq = l.gen
	}
	next := s.commit(Pending{Op: op})
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
	return ctx, req
}

// Fulfill commits payload for req. It reports false when req was superseded.
func (s *Store) Fulfill(req *Request, payload any) bool {
	return s.finish(req, Fulfilled{Op: req.Op, Payload: payload})
}

// Reject commits msg as the slice error for req. It reports false when req
// was superseded.
func (s *Store) Reject(req *Request, msg string) bool {
	return s.finish(req, Rejected{Op: req.Op, Error: msg})
}

func (s *Store) finish(req *Request, a Action) bool {
	defer req.cancel()

	s.mu.Lock()
	if !s.current(req) {
		s.mu.Unlock()
		s.log.Debug("dropped stale response", "action", a.Type(), "lane", req.Lane, "seq", req.Seq)
		return false
	}
	if req.Lane != "" {
		delete(s.lanes, req.Lane)
	}
	next := s.commit(a)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
	return true
}

// InFlight reports how many lanes have a request outstanding.
func (s *Store) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lanes)
}

func (s *Store) current(req *Request) bool {
	if req.Lane == "" {
		return true
	}
	l, ok := s.lanes[req.Lane]
	return ok && l.gen == req.Seq
}

// commit must be called with mu held.
func (s *Store) commit(a Action) State {
	s.log.Debug("dispatch", "action", a.Type())
	s.state = Reduce(s.state, a)
	return s.state
}

func (s *Store) subscribers() []func(State) {
	if len(s.subs) == 0 {
		return nil
	}
	out := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
