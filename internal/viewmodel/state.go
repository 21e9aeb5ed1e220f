// Package viewmodel holds presentation state for the random dog screen.
package viewmodel

import (
	"fmt"

	"github.com/jacksmith/barkly/internal/model"
)

// State is the current phase of a fetch. Exactly one variant is active:
// Idle, Loading, Loaded or Failed. Consumers switch on the concrete type.
type State interface {
	isState()
	fmt.Stringer
}

// Idle is the initial state. It is never re-entered.
type Idle struct{}

// Loading means a fetch is in flight.
type Loading struct{}

// Loaded carries the fetched image.
type Loaded struct {
	Image model.DogImage
}

// Failed carries the reason the last fetch failed.
type Failed struct {
	Err *model.AppError
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Loaded) isState()  {}
func (Failed) isState()  {}

func (Idle) String() string    { return "idle" }
func (Loading) String() string { return "loading" }
func (s Loaded) String() string {
	return "loaded(" + s.Image.ID + ")"
}
func (s Failed) String() string {
	return "failed(" + s.Err.Kind.String() + ")"
}
