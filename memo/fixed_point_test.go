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

import (
	"github.com/pingcap/check"
	atomic2 "go.uber.org/atomic"
)

var _ = check.Suite(&fixedPointSuite{})

type fixedPointSuite struct{}

// fibonacciFunc is the usual example of a function written in open form.
type fibonacciFunc struct {
	invokeCount atomic2.Int64
}

func (f *fibonacciFunc) Eval(recurse func(int) int, input int) int {
	f.invokeCount.Inc()
	switch input {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return recurse(input-1) + recurse(input-2)
	}
}

func (s *fixedPointSuite) TestApply(c *check.C) {
	fib := &fibonacciFunc{}
	r := Apply[int, int](fib)
	c.Assert(r(10), check.Equals, 55)
	c.Assert(fib.invokeCount.Load() > 0, check.IsTrue)
}

func (s *fixedPointSuite) TestMemoizedAgainstDirect(c *check.C) {
	direct := &fibonacciFunc{}
	directResult := Apply[int, int](direct)(10)

	memoFib := &fibonacciFunc{}
	memoized := Memoize[int, int](memoFib, NewVectorCache[int]())
	c.Assert(memoized.Eval(10), check.Equals, directResult)
	c.Assert(memoized.Eval(10), check.Equals, 55)

	// the memoized evaluator enters the open form strictly fewer times
	c.Assert(memoFib.invokeCount.Load() < direct.invokeCount.Load(), check.IsTrue)
	// and at most once per distinct input
	c.Assert(memoFib.invokeCount.Load(), check.Equals, int64(11))
}

func (s *fixedPointSuite) TestMemoizedWithMapCache(c *check.C) {
	fib := &fibonacciFunc{}
	memoized := Memoize[int, int](fib, NewMapCache[int, int]())

	for n, want := range []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55} {
		c.Assert(memoized.Eval(n), check.Equals, want)
	}
	c.Assert(fib.invokeCount.Load(), check.Equals, int64(11))
}

func (s *fixedPointSuite) TestMemoizedWithTreeCache(c *check.C) {
	fib := &fibonacciFunc{}
	memoized := Memoize[int, int](fib, NewTreeCache[int, int](intCmpForTest))
	c.Assert(memoized.Eval(20), check.Equals, 6765)
	c.Assert(fib.invokeCount.Load(), check.Equals, int64(21))
}

func intCmpForTest(a, b int) int {
	return a - b
}

func (s *fixedPointSuite) TestLazyFunc(c *check.C) {
	var invokeCount atomic2.Int64
	double := func(input int) int {
		invokeCount.Inc()
		return input * 2
	}

	lazy := NewLazyFunc[int, int](double, NewVectorCache[int]())
	c.Assert(lazy.Eval(10), check.Equals, 20)
	c.Assert(lazy.Eval(10), check.Equals, 20)
	c.Assert(invokeCount.Load(), check.Equals, int64(1))
}

func (s *fixedPointSuite) TestFixedPointFn(c *check.C) {
	// sum 1..n in open form as a plain function
	sum := FixedPointFn[int, int](func(recurse func(int) int, n int) int {
		if n == 0 {
			return 0
		}
		return n + recurse(n-1)
	})
	memoized := Memoize[int, int](sum, NewVectorCache[int]())
	c.Assert(memoized.Eval(100), check.Equals, 5050)
	c.Assert(memoized.Eval(100), check.Equals, 5050)
}
