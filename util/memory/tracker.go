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

package memory

import (
	"fmt"
	"strconv"
	"sync"

	atomic2 "go.uber.org/atomic"
)

// Tracker is used to track the memory usage during sorting and merging.
// The usage is tracked by Consume, which accepts a negative value for release.
// Trackers form a tree: consuming on a child also consumes on every ancestor,
// and the root-most tracker on the path whose limit is exceeded fires its
// action.
//
// NOTE: a Tracker is thread-safe for Consume, but AttachTo and SetActionOnExceed
// must happen before the tracker is shared.
type Tracker struct {
	mu struct {
		sync.Mutex
		children []*Tracker
	}
	actionMu struct {
		sync.Mutex
		actionOnExceed ActionOnExceed
	}

	label         string
	bytesConsumed atomic2.Int64
	maxConsumed   atomic2.Int64
	bytesLimit    atomic2.Int64
	parent        *Tracker
}

// NewTracker creates a Tracker. bytesLimit <= 0 means no limit.
func NewTracker(label string, bytesLimit int64) *Tracker {
	t := &Tracker{label: label}
	t.bytesLimit.Store(bytesLimit)
	return t
}

// Label returns the label of the tracker.
func (t *Tracker) Label() string {
	return t.label
}

// SetLabel resets the label of the tracker.
func (t *Tracker) SetLabel(label string) {
	t.label = label
}

// SetBytesLimit sets the quota. bytesLimit <= 0 means no limit.
func (t *Tracker) SetBytesLimit(bytesLimit int64) {
	t.bytesLimit.Store(bytesLimit)
}

// GetBytesLimit returns the quota.
func (t *Tracker) GetBytesLimit() int64 {
	return t.bytesLimit.Load()
}

// SetActionOnExceed sets the action triggered when the quota is exceeded.
func (t *Tracker) SetActionOnExceed(a ActionOnExceed) {
	t.actionMu.Lock()
	defer t.actionMu.Unlock()
	t.actionMu.actionOnExceed = a
}

// FallbackOldAndSetNewAction sets a new action and keeps the old one as its
// fallback, so both can fire in order of registration.
func (t *Tracker) FallbackOldAndSetNewAction(a ActionOnExceed) {
	t.actionMu.Lock()
	defer t.actionMu.Unlock()
	a.SetFallback(t.actionMu.actionOnExceed)
	t.actionMu.actionOnExceed = a
}

// AttachTo attaches this tracker as a child of the given parent. The already
// consumed bytes are transferred onto the parent chain.
func (t *Tracker) AttachTo(parent *Tracker) {
	if t.parent != nil {
		t.parent.remove(t)
	}
	parent.mu.Lock()
	parent.mu.children = append(parent.mu.children, t)
	parent.mu.Unlock()

	t.parent = parent
	t.parent.Consume(t.BytesConsumed())
}

func (t *Tracker) remove(oldChild *Tracker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, child := range t.mu.children {
		if child == oldChild {
			t.Consume(-oldChild.BytesConsumed())
			oldChild.parent = nil
			t.mu.children = append(t.mu.children[:i], t.mu.children[i+1:]...)
			return
		}
	}
}

// ReplaceChild removes the old child and attaches the new one, keeping the
// consumed bytes on this tracker consistent.
func (t *Tracker) ReplaceChild(oldChild, newChild *Tracker) {
	if newChild == nil {
		t.remove(oldChild)
		return
	}
	newConsumed := newChild.BytesConsumed()
	newChild.parent = t

	t.mu.Lock()
	for i, child := range t.mu.children {
		if child != oldChild {
			continue
		}
		newConsumed -= oldChild.BytesConsumed()
		oldChild.parent = nil
		t.mu.children[i] = newChild
		break
	}
	t.mu.Unlock()

	t.Consume(newConsumed)
}

// Consume accounts bytes onto this tracker and all its ancestors. A negative
// value releases. The root-most tracker whose limit is exceeded fires its
// action.
func (t *Tracker) Consume(bytes int64) {
	var rootExceed *Tracker
	for tracker := t; tracker != nil; tracker = tracker.parent {
		consumed := tracker.bytesConsumed.Add(bytes)
		limit := tracker.bytesLimit.Load()
		if limit > 0 && consumed >= limit {
			rootExceed = tracker
		}
		for {
			max := tracker.maxConsumed.Load()
			if consumed <= max || tracker.maxConsumed.CAS(max, consumed) {
				break
			}
		}
	}
	if rootExceed != nil {
		rootExceed.actionMu.Lock()
		action := rootExceed.actionMu.actionOnExceed
		rootExceed.actionMu.Unlock()
		if action != nil {
			action.Action(rootExceed)
		}
	}
}

// BytesConsumed returns the consumed memory usage value in bytes.
func (t *Tracker) BytesConsumed() int64 {
	return t.bytesConsumed.Load()
}

// MaxConsumed returns the max consumed memory usage value in bytes.
func (t *Tracker) MaxConsumed() int64 {
	return t.maxConsumed.Load()
}

// String returns the string representation of this Tracker tree.
func (t *Tracker) String() string {
	return fmt.Sprintf("%s{consumed:%s}", t.label, t.BytesToString(t.BytesConsumed()))
}

// BytesToString converts the memory consumption to a readable string.
func (t *Tracker) BytesToString(numBytes int64) string {
	goB := float64(numBytes) / float64(1<<30)
	if goB > 1 {
		return strconv.FormatFloat(goB, 'f', 2, 64) + " GB"
	}
	mB := float64(numBytes) / float64(1<<20)
	if mB > 1 {
		return strconv.FormatFloat(mB, 'f', 2, 64) + " MB"
	}
	kB := float64(numBytes) / float64(1<<10)
	if kB > 1 {
		return strconv.FormatFloat(kB, 'f', 2, 64) + " KB"
	}
	return strconv.FormatInt(numBytes, 10) + " Bytes"
}
