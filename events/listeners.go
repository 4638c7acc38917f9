// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Listeners registers lists of event listener functions to receive
// different event types. Listeners are closure methods with all
// context captured, registered on specific collections. Collections
// embed a Listeners value rather than inheriting from a dispatcher
// base type, so any collection variant can carry one.
type Listeners map[Types][]func(ev *Event)

// Init ensures that the map is constructed.
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Types][]func(*Event))
}

// Add adds a function for the given type.
func (ls *Listeners) Add(typ Types, fun func(ev *Event)) {
	ls.Init()
	ets := (*ls)[typ]
	ets = append(ets, fun)
	(*ls)[typ] = ets
}

// Call calls all functions for the given event. It goes in reverse
// order so the last functions added are the first called, and it
// stops when the event is marked as Handled. This allows for a
// natural and optional override behavior without requiring a more
// complex priority mechanism.
func (ls *Listeners) Call(ev *Event) {
	if ev.IsHandled() {
		return
	}
	typ := ev.Type
	ets := (*ls)[typ]
	n := len(ets)
	if n == 0 {
		return
	}
	for i := n - 1; i >= 0; i-- {
		fun := ets[i]
		fun(ev)
		if ev.IsHandled() {
			break
		}
	}
}
