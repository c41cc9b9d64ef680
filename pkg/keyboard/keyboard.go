// Package keyboard resolves editor shortcuts and key labels for the host
// operating system.
//
// A [Config] is an immutable value. Build it once at startup with [Detect]
// (from a browser user agent) or [ForGOOS] (from runtime.GOOS) and pass it to
// whatever needs it:
//
//	kb := keyboard.ForGOOS(runtime.GOOS)
//	fmt.Println(kb.FormatShortcut(keyboard.ActionSave)) // "⌘ + s" on macOS
package keyboard

import (
	"fmt"
	"regexp"
	"strings"
)

// OS identifies a keyboard family.
type OS string

const (
	OSUnknown OS = ""
	OSMac     OS = "mac"
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
)

// Editor actions with a default shortcut.
const (
	ActionSave      = "workflow.save"
	ActionCopy      = "workflow.copy"
	ActionPaste     = "workflow.paste"
	ActionUndo      = "workflow.undo"
	ActionRedo      = "workflow.redo"
	ActionSelectAll = "workflow.selectAll"
)

// Actions lists every action with a shortcut, in display order.
var Actions = []string{ActionSave, ActionCopy, ActionPaste, ActionUndo, ActionRedo, ActionSelectAll}

// Config holds the key labels, key codes and shortcuts for one OS.
// The zero value behaves like a non-Mac keyboard.
type Config struct {
	os Flags
}

// Flags records which families matched during detection. A user agent may
// match more than one; the Mac flag alone decides the key mapping.
type Flags struct {
	Mac     bool
	Windows bool
	Linux   bool
}

var (
	macPattern     = regexp.MustCompile(`mac|darwin`)
	windowsPattern = regexp.MustCompile(`win`)
	linuxPattern   = regexp.MustCompile(`linux`)
)

// Detect builds a Config from a user agent and platform string, matched
// case-insensitively. Empty inputs give a non-Mac configuration.
func Detect(userAgent, platform string) Config {
	ua := strings.ToLower(userAgent)
	pl := strings.ToLower(platform)
	return Config{os: Flags{
		Mac:     macPattern.MatchString(ua) || strings.Contains(pl, "mac"),
		Windows: windowsPattern.MatchString(ua) || windowsPattern.MatchString(pl),
		Linux:   linuxPattern.MatchString(ua) || linuxPattern.MatchString(pl),
	}}
}

// ForGOOS builds a Config for a Go GOOS value.
func ForGOOS(goos string) Config {
	switch goos {
	case "darwin", "ios":
		return ForOS(OSMac)
	case "windows":
		return ForOS(OSWindows)
	case "linux", "android", "freebsd", "openbsd", "netbsd", "dragonfly":
		return ForOS(OSLinux)
	}
	return Config{}
}

// ForOS builds a Config for a single keyboard family.
func ForOS(os OS) Config {
	return Config{os: Flags{Mac: os == OSMac, Windows: os == OSWindows, Linux: os == OSLinux}}
}

// ParseOS converts a configuration value ("mac", "windows", "linux") to an
// OS. "auto" and the empty string return OSUnknown.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return OSUnknown, nil
	case "mac", "macos", "darwin":
		return OSMac, nil
	case "windows", "win":
		return OSWindows, nil
	case "linux":
		return OSLinux, nil
	}
	return OSUnknown, fmt.Errorf("unknown keyboard platform %q", s)
}

// Flags returns the detected families.
func (c Config) Flags() Flags { return c.os }

// IsMac reports whether Mac key labels and codes apply.
func (c Config) IsMac() bool { return c.os.Mac }

// OS returns the dominant family. Mac wins over the others.
func (c Config) OS() OS {
	switch {
	case c.os.Mac:
		return OSMac
	case c.os.Windows:
		return OSWindows
	case c.os.Linux:
		return OSLinux
	}
	return OSUnknown
}

var (
	// macNames labels the Ctrl and Meta modifiers ⌘; the editor itself
	// printed "meta" verbatim on Mac.
	macNames = map[string]string{
		"ctrl":      "⌘",
		"meta":      "⌘",
		"alt":       "⌥",
		"shift":     "⇧",
		"enter":     "↵",
		"backspace": "⌫",
		"delete":    "⌦",
		"escape":    "⎋",
	}
	pcNames = map[string]string{
		"ctrl":      "Ctrl",
		"meta":      "Meta",
		"alt":       "Alt",
		"shift":     "Shift",
		"enter":     "Enter",
		"backspace": "Backspace",
		"delete":    "Delete",
		"escape":    "Esc",
	}
	macCodes = map[string]string{"ctrl": "meta", "alt": "alt", "shift": "shift"}
	pcCodes  = map[string]string{"ctrl": "ctrl", "alt": "alt", "shift": "shift"}

	macShortcuts = map[string][]string{
		ActionSave:      {"meta", "s"},
		ActionCopy:      {"meta", "c"},
		ActionPaste:     {"meta", "v"},
		ActionUndo:      {"meta", "z"},
		ActionRedo:      {"meta", "shift", "z"},
		ActionSelectAll: {"meta", "a"},
	}
	pcShortcuts = map[string][]string{
		ActionSave:      {"ctrl", "s"},
		ActionCopy:      {"ctrl", "c"},
		ActionPaste:     {"ctrl", "v"},
		ActionUndo:      {"ctrl", "z"},
		ActionRedo:      {"ctrl", "y"},
		ActionSelectAll: {"ctrl", "a"},
	}
)

// DisplayName returns the label shown for key, or key itself when it has no
// special label.
func (c Config) DisplayName(key string) string {
	names := pcNames
	if c.os.Mac {
		names = macNames
	}
	if name, ok := names[strings.ToLower(key)]; ok {
		return name
	}
	return key
}

// KeyCode returns the modifier code an event handler should test for key.
// Unknown keys come back lower-cased.
func (c Config) KeyCode(key string) string {
	codes := pcCodes
	if c.os.Mac {
		codes = macCodes
	}
	k := strings.ToLower(key)
	if code, ok := codes[k]; ok {
		return code
	}
	return k
}

// Shortcut returns the key codes bound to action, or nil.
func (c Config) Shortcut(action string) []string {
	table := pcShortcuts
	if c.os.Mac {
		table = macShortcuts
	}
	keys, ok := table[action]
	if !ok {
		return nil
	}
	return append([]string(nil), keys...)
}

// FormatShortcut renders the shortcut for action as display labels joined
// by " + ". Unknown actions render as the empty string.
func (c Config) FormatShortcut(action string) string {
	keys := c.Shortcut(action)
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = c.DisplayName(k)
	}
	return strings.Join(labels, " + ")
}
