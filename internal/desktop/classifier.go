package desktop

import "strings"

// Classifier decides whether a window belongs to the OS window-switching UI
// by inspecting its class tag. Built-in class names come from the platform
// backend; extra names can be supplied from configuration.
type Classifier struct {
	backend    Backend
	substrings []string
	exact      []string
}

// NewClassifier builds a classifier with the platform's built-in switcher
// classes plus any extra class tags, matched as case-insensitive substrings.
func NewClassifier(backend Backend, extra []string) *Classifier {
	c := &Classifier{
		backend: backend,
		exact:   switcherExactClasses(),
	}
	for _, s := range switcherClassSubstrings() {
		c.substrings = append(c.substrings, strings.ToLower(s))
	}
	for _, s := range extra {
		if s = strings.TrimSpace(s); s != "" {
			c.substrings = append(c.substrings, strings.ToLower(s))
		}
	}
	return c
}

// IsSwitcher reports whether the window is part of the window-switching UI.
// A failed class lookup classifies as not-a-switcher.
func (c *Classifier) IsSwitcher(w Window) bool {
	class, err := c.backend.WindowClass(w)
	if err != nil || class == "" {
		return false
	}
	return c.MatchClass(class)
}

// MatchClass tests a class tag against the switcher class lists.
func (c *Classifier) MatchClass(class string) bool {
	for _, e := range c.exact {
		if class == e {
			return true
		}
	}
	lower := strings.ToLower(class)
	for _, sub := range c.substrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
