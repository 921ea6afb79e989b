// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permute

import "math/rand/v2"

// A Resampler draws random partitions of a pooled sample into two
// groups.
//
// A Resampler retains ownership of the groups it returns; they are
// overwritten by the next call to Resample. A Resampler must not be
// used concurrently.
type Resampler struct {
	src         *rand.PCG
	rng         *rand.Rand
	replacement bool
	buf         []float64
}

// NewResampler returns a Resampler whose random stream is seeded by
// (seed, stream). If replacement is true, each resample draws
// len(pool) values from the pool independently and uniformly.
// Otherwise each resample is a uniformly random permutation of the
// pool.
func NewResampler(seed, stream uint64, replacement bool) *Resampler {
	src := rand.NewPCG(seed, stream)
	return &Resampler{src: src, rng: rand.New(src), replacement: replacement}
}

// Seed resets the random stream of r.
func (r *Resampler) Seed(seed, stream uint64) {
	r.src.Seed(seed, stream)
}

// Resample draws a new partition of pool and splits it at position
// na. The two groups always have lengths na and len(pool)-na.
func (r *Resampler) Resample(pool []float64, na int) (a, b []float64) {
	n := len(pool)
	if cap(r.buf) < n {
		r.buf = make([]float64, n)
	}
	buf := r.buf[:n]
	if r.replacement {
		for i := range buf {
			buf[i] = pool[r.rng.IntN(n)]
		}
	} else {
		copy(buf, pool)
		r.rng.Shuffle(n, func(i, j int) {
			buf[i], buf[j] = buf[j], buf[i]
		})
	}
	return buf[:na:na], buf[na:]
}
