// Copyright 2022 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package memo

// FixedPointFunc is a recursive function written in open form: instead of
// calling itself it calls the recurse argument. The fixed point of the open
// form, the directly callable recursion, is what Apply and Memoize build.
// Writing the recursion this way lets a harness intercept every recursive
// entry, which is where memoization slots in.
type FixedPointFunc[I any, O any] interface {
	Eval(recurse func(I) O, input I) O
}

// FixedPointFn adapts a plain function to the FixedPointFunc interface.
type FixedPointFn[I any, O any] func(recurse func(I) O, input I) O

// Eval implements FixedPointFunc.
func (f FixedPointFn[I, O]) Eval(recurse func(I) O, input I) O {
	return f(recurse, input)
}

// Apply closes the recursion of an open-form function directly, without
// caching: the returned callable re-enters the open form on every call.
func Apply[I any, O any](f FixedPointFunc[I, O]) func(I) O {
	var recurse func(I) O
	recurse = func(input I) O {
		return f.Eval(recurse, input)
	}
	return recurse
}

// MemoizedFunc closes the recursion of an open-form function through a
// cache. The evaluator owns the cache: every entry, including the
// re-entries the open form makes, goes through Eval, which consults the
// cache first and writes back on return. For a cache that never drops,
// the open form runs at most once per distinct input.
type MemoizedFunc[I any, O any] struct {
	f     FixedPointFunc[I, O]
	cache Cache[I, O]
}

// Memoize wraps an open-form function with a cache keyed on its input.
func Memoize[I any, O any](f FixedPointFunc[I, O], cache Cache[I, O]) *MemoizedFunc[I, O] {
	return &MemoizedFunc[I, O]{f: f, cache: cache}
}

// Eval evaluates the fixed point at input: Eval(x) == f.Eval(Eval, x).
func (m *MemoizedFunc[I, O]) Eval(input I) O {
	if value, ok := m.cache.Get(input); ok {
		return value
	}
	value := m.f.Eval(m.Eval, input)
	m.cache.Put(input, value)
	return value
}

// LazyFunc memoizes a plain, non-recursive function behind a cache.
type LazyFunc[I any, O any] struct {
	f     func(I) O
	cache Cache[I, O]
}

// NewLazyFunc wraps f with the cache.
func NewLazyFunc[I any, O any](f func(I) O, cache Cache[I, O]) *LazyFunc[I, O] {
	return &LazyFunc[I, O]{f: f, cache: cache}
}

// Eval returns f(input), computing it at most once per distinct input for a
// cache that never drops.
func (l *LazyFunc[I, O]) Eval(input I) O {
	if value, ok := l.cache.Get(input); ok {
		return value
	}
	value := l.f(input)
	l.cache.Put(input, value)
	return value
}
