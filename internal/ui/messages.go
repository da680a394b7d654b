package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConfigReloadedMsg is sent when the config file has been reloaded from disk
type ConfigReloadedMsg struct{}

// ConfigSource provides the key bindings and reload notifications of a watched config
type ConfigSource interface {
	KeyBindings() map[string]string
	ReloadEvents() <-chan struct{}
}

// WaitForConfigReload returns a command that waits for config to be reloaded
// and sends a ConfigReloadedMsg when that happens
func WaitForConfigReload(source ConfigSource) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-source.ReloadEvents(); !ok {
			return nil
		}
		return ConfigReloadedMsg{}
	}
}
