package viewmodel

import (
	"context"
	"sync"

	"github.com/jacksmith/barkly/internal/dogapi"
	"github.com/jacksmith/barkly/internal/model"
	"github.com/sirupsen/logrus"
)

// RandomDog runs one fetch at a time against a dog service and exposes the
// result as a State.
//
// Overlapping calls are allowed. Each call takes a generation number and only
// the most recent call's result is applied; results from superseded calls are
// dropped.
type RandomDog struct {
	service dogapi.Service
	log     logrus.FieldLogger

	mu         sync.Mutex
	state      State
	generation uint64

	// notifyMu keeps observer calls in transition order.
	notifyMu  sync.Mutex
	observers map[int]func(State)
	nextID    int
}

// NewRandomDog returns a view-model in the Idle state.
func NewRandomDog(service dogapi.Service, log logrus.FieldLogger) *RandomDog {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RandomDog{
		service:   service,
		log:       log.WithField("component", "random_dog"),
		state:     Idle{},
		observers: make(map[int]func(State)),
	}
}

// State returns the current state.
func (vm *RandomDog) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Subscribe registers fn to receive every state transition. fn runs on the
// goroutine making the transition, in transition order, and must not call
// back into the view-model. The returned function removes the subscription.
func (vm *RandomDog) Subscribe(fn func(State)) (cancel func()) {
	vm.notifyMu.Lock()
	defer vm.notifyMu.Unlock()

	id := vm.nextID
	vm.nextID++
	vm.observers[id] = fn

	return func() {
		vm.notifyMu.Lock()
		defer vm.notifyMu.Unlock()
		delete(vm.observers, id)
	}
}

// Generate moves to Loading, fetches one image and settles in Loaded or
// Failed. It blocks until the fetch completes and returns the current state,
// which may belong to a newer call if this one was superseded.
func (vm *RandomDog) Generate(ctx context.Context) State {
	gen := vm.begin()
	return vm.finish(ctx, gen)
}

// Start moves to Loading before returning, then fetches on a new goroutine.
// The channel receives the state after the fetch settles and is then closed.
func (vm *RandomDog) Start(ctx context.Context) <-chan State {
	gen := vm.begin()
	done := make(chan State, 1)
	go func() {
		defer close(done)
		done <- vm.finish(ctx, gen)
	}()
	return done
}

// begin enters Loading and returns the new generation.
func (vm *RandomDog) begin() uint64 {
	vm.mu.Lock()
	vm.generation++
	gen := vm.generation
	vm.transitionLocked(Loading{})
	return gen
}

// finish runs the fetch for gen and applies its result if gen is still
// current.
func (vm *RandomDog) finish(ctx context.Context, gen uint64) State {
	img, err := vm.service.FetchRandomDogImage(ctx)

	var next State
	if err != nil {
		next = Failed{Err: model.AsAppError(err)}
	} else {
		next = Loaded{Image: img}
	}

	vm.mu.Lock()
	if gen != vm.generation {
		current, latest := vm.state, vm.generation
		vm.mu.Unlock()
		vm.log.WithFields(logrus.Fields{
			"generation": gen,
			"latest":     latest,
			"result":     next.String(),
		}).Debug("dropping superseded result")
		return current
	}
	vm.transitionLocked(next)
	return next
}

// transitionLocked sets the state and notifies observers. It must be called
// with mu held and releases it.
func (vm *RandomDog) transitionLocked(next State) {
	vm.state = next
	vm.notifyMu.Lock()
	vm.mu.Unlock()
	defer vm.notifyMu.Unlock()

	vm.log.WithField("state", next.String()).Debug("state changed")
	for _, fn := range vm.observers {
		fn(next)
	}
}
