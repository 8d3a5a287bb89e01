package order

import (
	"context"
	"time"
)

// FeedbackState is the visual state of the control that triggered an order.
type FeedbackState int

const (
	Idle FeedbackState = iota
	Pending
	Confirmed
)

func (s FeedbackState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	default:
		return "idle"
	}
}

// Default delays for the staged order feedback.
const (
	DefaultConfirmAfter = 600 * time.Millisecond
	DefaultOpenAfter    = 1200 * time.Millisecond
)

// Sequence stages an order action: the control turns Pending at once, Confirmed
// after ConfirmAfter, and the link opens after OpenAfter. Both delays are measured
// from the action.
type Sequence struct {
	ConfirmAfter time.Duration
	OpenAfter    time.Duration
}

// DefaultSequence returns the standard staging.
func DefaultSequence() Sequence {
	return Sequence{ConfirmAfter: DefaultConfirmAfter, OpenAfter: DefaultOpenAfter}
}

// StepKind identifies one stage of a Sequence.
type StepKind int

const (
	StepPending StepKind = iota
	StepConfirmed
	StepOpen
)

// Step is a stage and its offset from the triggering action.
type Step struct {
	Kind StepKind
	At   time.Duration
}

// Steps lists the stages ordered by offset. Confirmation never comes after the open.
func (s Sequence) Steps() []Step {
	confirm, open := s.ConfirmAfter, s.OpenAfter
	if confirm < 0 {
		confirm = 0
	}
	if open < confirm {
		open = confirm
	}
	return []Step{
		{Kind: StepPending, At: 0},
		{Kind: StepConfirmed, At: confirm},
		{Kind: StepOpen, At: open},
	}
}

// Sleeper is the delay primitive used to stage a Sequence.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper waits on a timer and gives up when ctx is done.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run plays the sequence: feedback receives Pending and Confirmed, open is called
// last. If ctx ends before the open stage the link is not opened and ctx.Err() is
// returned; nothing is retried.
func (s Sequence) Run(ctx context.Context, sleeper Sleeper, feedback func(FeedbackState), open func() error) error {
	var elapsed time.Duration
	for _, step := range s.Steps() {
		if err := sleeper.Sleep(ctx, step.At-elapsed); err != nil {
			return err
		}
		elapsed = step.At

		switch step.Kind {
		case StepPending:
			feedback(Pending)
		case StepConfirmed:
			feedback(Confirmed)
		case StepOpen:
			return open()
		}
	}
	return nil
}
