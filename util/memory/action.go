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
	"sync"

	"github.com/pingcap/lazysort/util/logutil"
	"go.uber.org/zap"
)

// ActionOnExceed is the action taken when memory usage exceeds memory quota.
// NOTE: All the implementors should be thread-safe.
type ActionOnExceed interface {
	// Action will be called when memory usage exceeds memory quota by the
	// corresponding Tracker.
	Action(t *Tracker)
	// SetFallback sets a fallback action which will be triggered if itself has
	// already been triggered.
	SetFallback(a ActionOnExceed)
	// GetFallback get the fallback action of the Action.
	GetFallback() ActionOnExceed
}

// BaseOOMAction manages the fallback chain shared by all actions.
type BaseOOMAction struct {
	M              sync.Mutex
	FallbackAction ActionOnExceed
}

// SetFallback sets the fallback action.
func (b *BaseOOMAction) SetFallback(a ActionOnExceed) {
	b.M.Lock()
	defer b.M.Unlock()
	b.FallbackAction = a
}

// GetFallback get the fallback action.
func (b *BaseOOMAction) GetFallback() ActionOnExceed {
	b.M.Lock()
	defer b.M.Unlock()
	return b.FallbackAction
}

// LogOnExceed logs a warning only once when memory usage exceeds memory quota.
type LogOnExceed struct {
	BaseOOMAction
	acted bool
}

// Action logs a warning only once when memory usage exceeds memory quota.
func (a *LogOnExceed) Action(t *Tracker) {
	a.M.Lock()
	defer a.M.Unlock()
	if !a.acted {
		a.acted = true
		logutil.BgLogger().Warn("memory exceeds quota",
			zap.String("label", t.Label()),
			zap.Int64("consumed", t.BytesConsumed()),
			zap.Int64("quota", t.GetBytesLimit()))
		return
	}
	if a.FallbackAction != nil {
		a.FallbackAction.Action(t)
	}
}

// PanicOnExceed panics when memory usage exceeds memory quota.
type PanicOnExceed struct {
	BaseOOMAction
	acted bool
}

// Action panics when memory usage exceeds memory quota.
func (a *PanicOnExceed) Action(t *Tracker) {
	a.M.Lock()
	if a.acted {
		a.M.Unlock()
		return
	}
	a.acted = true
	a.M.Unlock()
	panic(PanicMemoryExceed + t.String())
}

const (
	// PanicMemoryExceed represents the panic message when out of memory quota.
	PanicMemoryExceed string = "Out Of Memory Quota!"
)
