// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/traits"
)

// Store is the capability for the recorder fixtures.
type Store struct{ traits.Capability }

// Put is a Store effect.
type Put struct {
	traits.EffectOf[Store]
	Key, Value string
}

// recorder logs every protocol call into a shared trace.
type recorder struct {
	name  string
	trace *[]string
	veto  error // non-nil: phase 1 rejects
	inner any   // non-nil: delegates Store to inner
}

func (r *recorder) CheckEffect(traits.Effect) error {
	*r.trace = append(*r.trace, r.name+".check")
	return r.veto
}

func (r *recorder) HandleEffect(traits.Effect) error {
	*r.trace = append(*r.trace, r.name+".handle")
	return nil
}

// applier is a terminal recorder that also owns the mutation.
type applier struct {
	recorder
}

func (a *applier) ApplyEffect(traits.Effect) error {
	*a.trace = append(*a.trace, a.name+".apply")
	return nil
}

func init() {
	traits.DelegateField[Store, *recorder]("inner", func(r *recorder) any { return r.inner })
}

func newPair(t *testing.T) (*recorder, *applier, *[]string) {
	t.Helper()
	trace := &[]string{}
	inner := &applier{recorder{name: "inner", trace: trace}}
	outer := &recorder{name: "outer", trace: trace, inner: inner}
	return outer, inner, trace
}

func TestApplyOrdering(t *testing.T) {
	outer, _, trace := newPair(t)

	require.NoError(t, traits.Apply(outer, Put{Key: "k", Value: "v"}))
	assert.Equal(t, []string{
		"outer.check", "inner.check",
		"inner.apply",
		"outer.handle", "inner.handle",
	}, *trace)
}

func TestApplyOrderingDeterministic(t *testing.T) {
	// Same chain shape, repeated runs, identical order.
	first, _, trace := newPair(t)
	require.NoError(t, traits.Apply(first, Put{Key: "k", Value: "v"}))
	want := append([]string(nil), *trace...)

	for range 10 {
		outer, _, trace := newPair(t)
		require.NoError(t, traits.Apply(outer, Put{Key: "k", Value: "v"}))
		assert.Equal(t, want, *trace)
	}
}

func TestApplyOuterVeto(t *testing.T) {
	outer, _, trace := newPair(t)
	cause := errors.New("store is read-only")
	outer.veto = cause

	err := traits.Apply(outer, Put{Key: "k", Value: "v"})
	var rejected *traits.EffectError
	require.ErrorAs(t, err, &rejected)
	require.ErrorIs(t, err, cause)

	// No apply, no handle, anywhere — the outer veto aborts the protocol
	// before any state change.
	assert.Equal(t, []string{"outer.check"}, *trace)
}

func TestApplyInnerVeto(t *testing.T) {
	outer, inner, trace := newPair(t)
	inner.veto = errors.New("duplicate key")

	err := traits.Apply(outer, Put{Key: "k", Value: "v"})
	var rejected *traits.EffectError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, []string{"outer.check", "inner.check"}, *trace)
}

func TestApplyWith(t *testing.T) {
	outer, _, trace := newPair(t)
	mutated := false

	err := traits.ApplyWith(outer, Put{Key: "k", Value: "v"}, func() error {
		mutated = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.Equal(t, []string{
		"outer.check", "inner.check",
		"outer.handle", "inner.handle",
	}, *trace)
}

func TestApplyWithMutatorFailure(t *testing.T) {
	outer, _, trace := newPair(t)
	cause := errors.New("disk full")

	err := traits.ApplyWith(outer, Put{Key: "k", Value: "v"}, func() error {
		return cause
	})
	require.ErrorIs(t, err, cause)

	// Phase 3 never runs for a failed mutation.
	assert.Equal(t, []string{"outer.check", "inner.check"}, *trace)
}

func TestApplyEffectNoApplier(t *testing.T) {
	trace := &[]string{}
	// A chain of plain recorders with no applier anywhere.
	leaf := &recorder{name: "leaf", trace: trace}
	root := &recorder{name: "root", trace: trace, inner: leaf}

	err := traits.ApplyEffect(root, Put{Key: "k", Value: "v"})
	var cfg *traits.ConfigurationError
	require.ErrorAs(t, err, &cfg)
}

func TestCheckEffectNoCheckerIsApproval(t *testing.T) {
	// Plain declares no constraint and no delegation: phase 1 approves.
	require.NoError(t, traits.CheckEffect(Plain{}, Put{Key: "k", Value: "v"}))
}

func TestHandleEffectNoHandlerIsNoop(t *testing.T) {
	require.NoError(t, traits.HandleEffect(Plain{}, Put{Key: "k", Value: "v"}))
}

func TestEffectCapability(t *testing.T) {
	var eff traits.Effect = Put{Key: "k", Value: "v"}
	assert.Equal(t, traits.CapabilityOf(traits.DefineOp[Store]("put")), eff.EffectCapability())
}
