// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	quit     key.Binding
	seed     key.Binding
	copyLog  key.Binding
	info     key.Binding
	esc      key.Binding
	pageUp   key.Binding
	pageDown key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	seed:     key.NewBinding(key.WithKeys("a")),
	copyLog:  key.NewBinding(key.WithKeys("c")),
	info:     key.NewBinding(key.WithKeys("i")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	pageUp:   key.NewBinding(key.WithKeys("pgup")),
	pageDown: key.NewBinding(key.WithKeys("pgdown")),
}
