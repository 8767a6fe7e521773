// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import "github.com/prometheus/client_golang/prometheus"

// FallbackCounterOpts are the suggested options for a fallback CounterVec.
// The vector must carry exactly the labels site, capability and object.
var FallbackCounterOpts = prometheus.CounterOpts{
	Name: "traits_resolution_fallbacks_total",
	Help: "Total resolution fall-throughs to a default verdict.",
}

// NewFallbackCounter builds a CounterVec suitable for [CountFallbacks].
// The caller registers it (prometheus.MustRegister or a custom registry).
func NewFallbackCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(FallbackCounterOpts, []string{"site", "capability", "object"})
}

// CountFallbacks returns an observer that increments one counter per
// fallback, labelled by site, capability and object kind.
//
//	fallbacks := traits.NewFallbackCounter()
//	prometheus.MustRegister(fallbacks)
//	traits.SetFallbackObserver(traits.CountFallbacks(fallbacks))
func CountFallbacks(counter *prometheus.CounterVec) func(Fallback) {
	return func(f Fallback) {
		counter.WithLabelValues(string(f.Site), typeName(f.Capability), typeName(f.Object)).Inc()
	}
}
