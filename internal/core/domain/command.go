package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// CommandDescriptor describes one named shell command available to a project.
type CommandDescriptor struct {
	// Path is the working directory. It may be relative to the project,
	// contain substitution variables, or start with "@" to run next to each file.
	Path string `yaml:"path"`
	// Cmd is the command template. Sequences are separated by ";" and a
	// sequence of the form "&name" runs another command.
	Cmd  string `yaml:"cmd"`
	Name string `yaml:"name"`

	IsMake       bool `yaml:"isMake"`
	IsVCS        bool `yaml:"isVCS"`
	SaveAll      bool `yaml:"saveAll"`
	OneAtATime   bool `yaml:"oneAtATime"`
	UseWindow    bool `yaml:"useWindow"`
	RaiseOnStart bool `yaml:"raise"`
	BeepOnFinish bool `yaml:"beep"`

	MenuText       string `yaml:"menuText"`
	MenuShortcut   string `yaml:"menuShortcut"`
	MenuID         string `yaml:"menuID"`
	SeparatorAfter bool   `yaml:"separator"`
}

// CommandList is an ordered list of command descriptors.
type CommandList struct {
	items []CommandDescriptor
}

// NewCommandList returns a list holding a copy of items.
func NewCommandList(items ...CommandDescriptor) *CommandList {
	return &CommandList{items: slices.Clone(items)}
}

// Len returns the number of commands.
func (l *CommandList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the command at index i.
func (l *CommandList) At(i int) CommandDescriptor {
	return l.items[i]
}

// All returns a copy of the commands in order.
func (l *CommandList) All() []CommandDescriptor {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}

// Append adds a command at the end of the list.
func (l *CommandList) Append(d CommandDescriptor) {
	l.items = append(l.items, d)
}

// Remove deletes the command at index i.
func (l *CommandList) Remove(i int) {
	l.items = slices.Delete(l.items, i, i+1)
}

// Move relocates the command at index from so that it ends up at index to.
func (l *CommandList) Move(from, to int) {
	if from == to {
		return
	}
	d := l.items[from]
	l.items = slices.Delete(l.items, from, from+1)
	l.items = slices.Insert(l.items, to, d)
}

// Find returns the command with the given name.
// A name shared by several commands is an error, never resolved silently.
func (l *CommandList) Find(name string) (CommandDescriptor, bool, error) {
	if l == nil || name == "" {
		return CommandDescriptor{}, false, nil
	}

	var found *CommandDescriptor
	for i := range l.items {
		if l.items[i].Name != name {
			continue
		}
		if found != nil {
			return CommandDescriptor{}, false, zerr.With(
				zerr.Wrap(ErrDuplicateCommand, "lookup command"), "cmd", name)
		}
		found = &l.items[i]
	}

	if found == nil {
		return CommandDescriptor{}, false, nil
	}
	return *found, true, nil
}
