package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceState_String(t *testing.T) {
	tests := []struct {
		state    DeviceState
		expected string
	}{
		{DeviceOK, "OK"},
		{DeviceLost, "Lost"},
		{DeviceNotReset, "NotReset"},
		{DeviceUnrecoverable, "Unrecoverable"},
		{DeviceState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestDeviceState_Usable(t *testing.T) {
	assert.True(t, DeviceOK.Usable())
	assert.False(t, DeviceLost.Usable())
	assert.False(t, DeviceNotReset.Usable())
	assert.False(t, DeviceUnrecoverable.Usable())
}

func TestDeviceStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, DeviceState(0), DeviceOK)
	assert.Equal(t, DeviceState(1), DeviceLost)
	assert.Equal(t, DeviceState(2), DeviceNotReset)
	assert.Equal(t, DeviceState(3), DeviceUnrecoverable)
}

func TestDisplayMode_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		mode       DisplayMode
		fullscreen bool
		expected   bool
	}{
		{"toggle from window", DisplayToggle, false, true},
		{"toggle from fullscreen", DisplayToggle, true, false},
		{"force fullscreen", DisplayFullscreen, false, true},
		{"force window", DisplayWindow, true, false},
		{"window stays window", DisplayWindow, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.Resolve(tt.fullscreen))
		})
	}
}

func TestDisplayMode_String(t *testing.T) {
	assert.Equal(t, "Toggle", DisplayToggle.String())
	assert.Equal(t, "Fullscreen", DisplayFullscreen.String())
	assert.Equal(t, "Window", DisplayWindow.String())
	assert.Equal(t, "Unknown", DisplayMode(42).String())
}
