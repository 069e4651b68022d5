package changeset

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the variant of an Action.
type Kind int

const (
	KindMove Kind = iota
	KindDelete
	KindIgnore
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindDelete:
		return "delete"
	case KindIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is the disposition of one source file. The zero value is
// Move("") which formats as an empty line, so always build Actions with
// Move, Delete, Ignore or Parse.
type Action struct {
	kind  Kind
	value string
}

// Move copies the source to target, relative to the execution root, then
// removes the source.
func Move(target string) Action {
	return Action{kind: KindMove, value: target}
}

// Delete removes the source.
func Delete() Action {
	return Action{kind: KindDelete}
}

// Ignore leaves the source alone and keeps comment for the next export.
func Ignore(comment string) Action {
	return Action{kind: KindIgnore, value: comment}
}

// Parse reads one line of the targets file.
//
// An empty line is Delete. A line starting with whitespace is Ignore with
// the surrounding whitespace trimmed; a whitespace-only line is Ignore("").
// Anything else is Move to the line exactly as written, so a target path
// that starts with whitespace cannot be expressed.
func Parse(line string) Action {
	if line == "" {
		return Delete()
	}

	if r, _ := utf8.DecodeRuneInString(line); unicode.IsSpace(r) {
		return Ignore(strings.TrimSpace(line))
	}

	return Move(line)
}

// String formats the Action as a targets line, without the newline.
func (a Action) String() string {
	switch a.kind {
	case KindDelete:
		return ""
	case KindIgnore:
		return " " + a.value
	default:
		return a.value
	}
}

func (a Action) Kind() Kind { return a.kind }

func (a Action) IsMove() bool   { return a.kind == KindMove }
func (a Action) IsDelete() bool { return a.kind == KindDelete }
func (a Action) IsIgnore() bool { return a.kind == KindIgnore }

// Target returns the Move destination, or "" for other kinds.
func (a Action) Target() string {
	if a.kind == KindMove {
		return a.value
	}
	return ""
}

// Comment returns the Ignore comment, or "" for other kinds.
func (a Action) Comment() string {
	if a.kind == KindIgnore {
		return a.value
	}
	return ""
}
