// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"context"
	"errors"
	"math/big"

	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/mocks"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/spf13/afero"
)

type behavior struct {
	submitErr error
	waitErr   error
	reverted  bool
	panics    bool
}

type transfer struct {
	to       common.Address
	amount   *big.Int
	gasLimit uint64
}

type fakeChain struct {
	behaviors map[common.Address]behavior
	pending   map[common.Hash]behavior
	transfers []transfer
	nonce     uint64
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		behaviors: map[common.Address]behavior{},
		pending:   map[common.Hash]behavior{},
	}
}

func (f *fakeChain) Transfer(
	_ context.Context,
	_ common.Address,
	_ abi.ABI,
	to common.Address,
	amount *big.Int,
	gasLimit uint64,
) (*types.Transaction, error) {
	f.transfers = append(f.transfers, transfer{to: to, amount: amount, gasLimit: gasLimit})
	b := f.behaviors[to]
	if b.panics {
		panic("nil pointer in signer")
	}
	if b.submitErr != nil {
		return nil, b.submitErr
	}
	f.nonce++
	tx := mocks.NewTx(f.nonce)
	f.pending[tx.Hash()] = b
	return tx, nil
}

func (f *fakeChain) WaitMined(_ context.Context, tx *types.Transaction) (*types.Receipt, error) {
	b := f.pending[tx.Hash()]
	if b.waitErr != nil {
		return nil, b.waitErr
	}
	status := types.ReceiptStatusSuccessful
	if b.reverted {
		status = types.ReceiptStatusFailed
	}
	return &types.Receipt{Status: status, TxHash: tx.Hash(), GasUsed: 35000}, nil
}

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) OnSubmit(int, int, Entry) {
	r.events = append(r.events, "submit")
}

func (r *recordingObserver) OnOutcome(o Outcome, _ int) {
	r.events = append(r.events, o.State.String())
}

var (
	addr1 = "0x1111111111111111111111111111111111111111"
	addr2 = "0x2222222222222222222222222222222222222222"
	addr3 = "0x3333333333333333333333333333333333333333"
	token = Token{
		Address:  common.HexToAddress("0x9999999999999999999999999999999999999999"),
		Symbol:   "TT",
		Decimals: 18,
	}
)

func states(result Result) []State {
	out := make([]State, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		out = append(out, o.State)
	}
	return out
}

var _ = ginkgo.Describe("Distributor", func() {
	var (
		chain *fakeChain
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		chain = newFakeChain()
		ctx = context.Background()
	})

	ginkgo.It("keeps going after a failed submission", func() {
		chain.behaviors[common.HexToAddress(addr2)] = behavior{submitErr: errors.New("nonce too low")}
		entries := []Entry{{addr1, "1"}, {addr2, "2"}, {addr3, "3"}}

		result := New(chain).Distribute(ctx, token, entries)

		gomega.Expect(states(result)).To(gomega.Equal([]State{ConfirmedSuccess, SubmitError, ConfirmedSuccess}))
		gomega.Expect(result.SuccessCount).To(gomega.Equal(2))
		gomega.Expect(result.Failed).To(gomega.HaveLen(1))
		failed := result.Failed[0]
		gomega.Expect(failed.Entry).To(gomega.Equal(entries[1]))
		gomega.Expect(failed.Reason()).To(gomega.Equal("nonce too low"))
		gomega.Expect(failed.TxHash).To(gomega.BeNil())
		gomega.Expect(errors.Is(failed.Err, failure.ErrSubmission)).To(gomega.BeTrue())
		gomega.Expect(failure.KindOf(failed.Err)).To(gomega.Equal(failure.Recoverable))
		gomega.Expect(chain.transfers).To(gomega.HaveLen(3))
	})

	ginkgo.It("records a mined but failing transfer without an error", func() {
		chain.behaviors[common.HexToAddress(addr1)] = behavior{reverted: true}

		result := New(chain).Distribute(ctx, token, []Entry{{addr1, "5"}})

		gomega.Expect(result.Outcomes).To(gomega.HaveLen(1))
		o := result.Outcomes[0]
		gomega.Expect(o.State).To(gomega.Equal(ConfirmedFailed))
		gomega.Expect(o.TxHash).NotTo(gomega.BeNil())
		gomega.Expect(o.Err).To(gomega.BeNil())
		gomega.Expect(o.Reason()).To(gomega.BeEmpty())
		gomega.Expect(result.SuccessCount).To(gomega.BeZero())
		gomega.Expect(result.Failed).To(gomega.HaveLen(1))
	})

	ginkgo.It("keeps the hash when waiting for the receipt fails", func() {
		chain.behaviors[common.HexToAddress(addr1)] = behavior{waitErr: errors.New("connection reset by peer")}

		result := New(chain).Distribute(ctx, token, []Entry{{addr1, "5"}})

		o := result.Outcomes[0]
		gomega.Expect(o.State).To(gomega.Equal(SubmitError))
		gomega.Expect(o.TxHash).NotTo(gomega.BeNil())
		gomega.Expect(o.Reason()).To(gomega.Equal("connection reset by peer"))
	})

	ginkgo.It("handles an empty list", func() {
		result := New(chain).Distribute(ctx, token, nil)

		gomega.Expect(result.Outcomes).To(gomega.BeEmpty())
		gomega.Expect(result.SuccessCount).To(gomega.BeZero())
		gomega.Expect(chain.transfers).To(gomega.BeEmpty())

		fs := afero.NewMemMapFs()
		written, err := WriteFailures(fs, "failed_distributions.csv", result)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(written).To(gomega.BeFalse())
		exists, err := afero.Exists(fs, "failed_distributions.csv")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(exists).To(gomega.BeFalse())
	})

	ginkgo.It("converts amounts exactly and applies the gas limit", func() {
		result := New(chain, WithGasLimit(120000)).Distribute(ctx, token, []Entry{{addr1, "1.5"}, {addr2, "0.000000000000000001"}})

		gomega.Expect(result.SuccessCount).To(gomega.Equal(2))
		gomega.Expect(chain.transfers[0].amount.String()).To(gomega.Equal("1500000000000000000"))
		gomega.Expect(chain.transfers[1].amount.String()).To(gomega.Equal("1"))
		gomega.Expect(chain.transfers[0].gasLimit).To(gomega.Equal(uint64(120000)))
	})

	ginkgo.It("uses the default gas limit", func() {
		New(chain).Distribute(ctx, token, []Entry{{addr1, "1"}})
		gomega.Expect(chain.transfers[0].gasLimit).To(gomega.Equal(uint64(300000)))
	})

	ginkgo.It("rejects bad addresses and amounts without submitting", func() {
		entries := []Entry{{"0x123", "1"}, {addr1, "abc"}, {addr2, "-1"}, {addr3, "1"}}

		result := New(chain).Distribute(ctx, token, entries)

		gomega.Expect(states(result)).To(gomega.Equal([]State{SubmitError, SubmitError, SubmitError, ConfirmedSuccess}))
		gomega.Expect(chain.transfers).To(gomega.HaveLen(1))
		gomega.Expect(result.Outcomes[0].Reason()).To(gomega.ContainSubstring("invalid address"))
	})

	ginkgo.It("recovers from a panic inside one entry", func() {
		chain.behaviors[common.HexToAddress(addr1)] = behavior{panics: true}

		result := New(chain).Distribute(ctx, token, []Entry{{addr1, "1"}, {addr2, "1"}})

		gomega.Expect(states(result)).To(gomega.Equal([]State{SubmitError, ConfirmedSuccess}))
		gomega.Expect(result.Outcomes[0].Reason()).To(gomega.ContainSubstring("nil pointer in signer"))
	})

	ginkgo.It("records every remaining entry once the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		result := New(chain).Distribute(cancelled, token, []Entry{{addr1, "1"}, {addr2, "1"}})

		gomega.Expect(states(result)).To(gomega.Equal([]State{SubmitError, SubmitError}))
		gomega.Expect(errors.Is(result.Outcomes[0].Err, context.Canceled)).To(gomega.BeTrue())
		gomega.Expect(chain.transfers).To(gomega.BeEmpty())
	})

	ginkgo.It("preserves entry order and notifies the observer", func() {
		chain.behaviors[common.HexToAddress(addr2)] = behavior{reverted: true}
		observer := &recordingObserver{}
		entries := []Entry{{addr3, "3"}, {addr2, "2"}, {addr1, "1"}}

		result := New(chain, WithObserver(observer)).Distribute(ctx, token, entries)

		gomega.Expect(result.Outcomes).To(gomega.HaveLen(len(entries)))
		for i, o := range result.Outcomes {
			gomega.Expect(o.Index).To(gomega.Equal(i))
			gomega.Expect(o.Entry).To(gomega.Equal(entries[i]))
			gomega.Expect(o.State.Terminal()).To(gomega.BeTrue())
		}
		gomega.Expect(observer.events).To(gomega.Equal([]string{
			"submit", "success",
			"submit", "failed",
			"submit", "success",
		}))
	})
})
