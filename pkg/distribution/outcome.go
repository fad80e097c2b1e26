// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package distribution

import (
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/geth/common"
)

// Entry is one planned transfer. Amount is in human units, e.g. "1.5".
type Entry struct {
	Address string
	Amount  string
}

// State is the position of an entry in its lifecycle:
//
//	Pending -> Submitted -> ConfirmedSuccess | ConfirmedFailed
//	Pending | Submitted -> SubmitError
type State int

const (
	Pending State = iota
	Submitted
	ConfirmedSuccess
	ConfirmedFailed
	SubmitError
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Submitted:
		return "submitted"
	case ConfirmedSuccess:
		return "success"
	case ConfirmedFailed:
		return "failed"
	case SubmitError:
		return "error"
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s == ConfirmedSuccess || s == ConfirmedFailed || s == SubmitError
}

// Outcome is the terminal record of one entry. TxHash is set whenever a
// transaction was accepted by the node; Err is nil unless State is
// SubmitError.
type Outcome struct {
	Index  int
	Entry  Entry
	State  State
	TxHash *common.Hash
	Err    error
}

func (o Outcome) Success() bool {
	return o.State == ConfirmedSuccess
}

// Reason is the error text written to failure records. It is empty for
// transactions that were mined with a failing status.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Failure returns the classified error for a failed outcome, or nil when the
// transfer succeeded or has not finished.
func (o Outcome) Failure() error {
	switch o.State {
	case ConfirmedFailed:
		hash := ""
		if o.TxHash != nil {
			hash = o.TxHash.Hex()
		}
		return failure.Wrap(failure.ErrOnChainFailure, nil, "transfer %s to %s reverted", hash, o.Entry.Address)
	case SubmitError:
		return o.Err
	}
	return nil
}

// Result aggregates the outcomes of a run in entry order.
type Result struct {
	Outcomes     []Outcome
	SuccessCount int
	Failed       []Outcome
}

func (r *Result) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Success() {
		r.SuccessCount++
		return
	}
	r.Failed = append(r.Failed, o)
}

func (r Result) FailedCount() int {
	return len(r.Failed)
}

func (r Result) Successes() []Outcome {
	out := make([]Outcome, 0, r.SuccessCount)
	for _, o := range r.Outcomes {
		if o.Success() {
			out = append(out, o)
		}
	}
	return out
}
