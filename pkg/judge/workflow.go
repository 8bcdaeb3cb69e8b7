package judge

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrMissingStarter means the problem carries no starter code for
	// the requested language, so there is nothing to edit.
	ErrMissingStarter = errors.New("judge: no starter code for language")
	// ErrRunInFlight rejects a run while another run is pending.
	ErrRunInFlight = errors.New("judge: run already in flight")
	// ErrSubmitInFlight rejects a submit while another submit is pending.
	ErrSubmitInFlight = errors.New("judge: submit already in flight")
	// ErrClosed rejects operations on a closed workflow.
	ErrClosed = errors.New("judge: workflow closed")
)

// DefaultLanguage is the language a fresh workflow opens in.
const DefaultLanguage = "javascript"

// DisplayLanguage maps an editor language key to the canonical name the
// platform stores problems and submissions under. Unknown keys map to
// "JavaScript".
func DisplayLanguage(key string) string {
	switch strings.ToLower(key) {
	case "cpp", "c++":
		return "C++"
	case "java":
		return "Java"
	default:
		return "JavaScript"
	}
}

// Focus names the panel a result wants the view to show.
type Focus int

const (
	// FocusDescription is the initial panel.
	FocusDescription Focus = iota
	// FocusTestcase follows a settled run.
	FocusTestcase
	// FocusResult follows a settled submit.
	FocusResult
)

// WorkflowState is a read-only view of the workflow handed to observers.
type WorkflowState struct {
	Language      string // editor key: "cpp", "java", "javascript"
	SourceText    string
	RunPending    bool
	SubmitPending bool
	RunResult     RunOutcome    // nil until a run settles
	SubmitResult  SubmitOutcome // nil until a submit settles, or after a submit transport failure
	Focus         Focus
}

// Workflow drives the editing, run and submit cycle for one problem
// view. Run and submit keep independent result slots: settling one never
// disturbs the other.
type Workflow struct {
	client  *Client
	problem *Problem

	mu        sync.Mutex
	closed    bool
	state     WorkflowState
	listeners []func(WorkflowState)
}

// NewWorkflow opens a workflow on a problem in the default language. It
// fails fast with ErrMissingStarter when the problem has no starter code
// for that language rather than presenting an empty editor.
func NewWorkflow(client *Client, problem *Problem) (*Workflow, error) {
	starter, ok := starterFor(problem, DefaultLanguage)
	if !ok {
		return nil, ErrMissingStarter
	}
	return &Workflow{
		client:  client,
		problem: problem,
		state: WorkflowState{
			Language:   DefaultLanguage,
			SourceText: starter,
		},
	}, nil
}

func starterFor(problem *Problem, key string) (string, bool) {
	want := DisplayLanguage(key)
	for _, stub := range problem.StartCode {
		if stub.Language == want {
			return stub.InitialCode, true
		}
	}
	return "", false
}

// State returns the current workflow state.
func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Subscribe registers an observer called after every state change.
func (w *Workflow) Subscribe(fn func(WorkflowState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// begin marks a pending slot and snapshots the editor contents under a
// single lock, so two racing calls cannot both pass the in-flight check.
// Listeners are notified after the lock is released.
func (w *Workflow) begin(mark func(*WorkflowState) error) (code, language string, err error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return "", "", ErrClosed
	}
	if err := mark(&w.state); err != nil {
		w.mu.Unlock()
		return "", "", err
	}
	code = w.state.SourceText
	language = DisplayLanguage(w.state.Language)
	snap := w.state
	listeners := make([]func(WorkflowState), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return code, language, nil
}

func (w *Workflow) transition(mutate func(*WorkflowState)) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	mutate(&w.state)
	snap := w.state
	listeners := make([]func(WorkflowState), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// SelectLanguage switches the editor to another language, replacing the
// source text with that language's starter. Edits made in the previous
// language are discarded, not stashed.
func (w *Workflow) SelectLanguage(key string) error {
	starter, ok := starterFor(w.problem, key)
	if !ok {
		return ErrMissingStarter
	}
	w.transition(func(s *WorkflowState) {
		s.Language = strings.ToLower(key)
		s.SourceText = starter
	})
	return nil
}

// SetSource records the editor's current text.
func (w *Workflow) SetSource(text string) {
	w.transition(func(s *WorkflowState) {
		s.SourceText = text
	})
}

// Busy reports whether a run or submit is pending.
func (w *Workflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.RunPending || w.state.SubmitPending
}

// Run judges the current source against the visible test cases. A second
// run while one is pending is rejected; a submit may proceed in
// parallel. Transport failure settles into an explicit TransportError
// outcome so the view can say what happened.
func (w *Workflow) Run(ctx context.Context) error {
	code, language, err := w.begin(func(s *WorkflowState) error {
		if s.RunPending {
			return ErrRunInFlight
		}
		s.RunPending = true
		s.RunResult = nil
		return nil
	})
	if err != nil {
		return err
	}

	resp, err := w.client.run(ctx, w.problem.ID, code, language)

	var outcome RunOutcome
	switch {
	case err != nil:
		outcome = TransportError{Message: err.Error()}
	case resp.Success:
		outcome = RunSuccess{Runtime: resp.Runtime, Memory: resp.Memory, Cases: resp.TestCases}
	default:
		outcome = RunFailure{Cases: resp.TestCases}
	}

	w.transition(func(s *WorkflowState) {
		s.RunPending = false
		s.RunResult = outcome
		s.Focus = FocusTestcase
	})
	return err
}

// Submit scores the current source against every test case, hidden ones
// included. A second submit while one is pending is rejected. On
// transport failure the result slot is cleared: an absent verdict, not a
// fabricated rejection.
func (w *Workflow) Submit(ctx context.Context) error {
	code, language, err := w.begin(func(s *WorkflowState) error {
		if s.SubmitPending {
			return ErrSubmitInFlight
		}
		s.SubmitPending = true
		s.SubmitResult = nil
		return nil
	})
	if err != nil {
		return err
	}

	resp, err := w.client.submit(ctx, w.problem.ID, code, language)

	var outcome SubmitOutcome
	if err == nil {
		if resp.Accepted {
			outcome = SubmitAccepted{
				Passed:  resp.PassedTestCases,
				Total:   resp.TotalTestCases,
				Runtime: resp.Runtime,
				Memory:  resp.Memory,
			}
		} else {
			reason := resp.Error
			if reason == "" {
				reason = "Wrong Answer"
			}
			outcome = SubmitRejected{
				Reason: reason,
				Passed: resp.PassedTestCases,
				Total:  resp.TotalTestCases,
			}
		}
	}

	w.transition(func(s *WorkflowState) {
		s.SubmitPending = false
		s.SubmitResult = outcome
		s.Focus = FocusResult
	})
	return err
}

// Close detaches the workflow from its view. Requests already in flight
// may finish on the wire, but their results are dropped instead of
// mutating a view that no longer exists.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.listeners = nil
}
