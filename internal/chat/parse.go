package chat

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Kind is the type of a parsed message.
type Kind int

const (
	KindHelp Kind = iota
	KindLists
	KindCreate
	KindDeleteFrom
	KindEditFrom
	KindAdd
	KindShow
)

var kindNames = [...]string{
	KindHelp:       "help",
	KindLists:      "lists",
	KindCreate:     "create",
	KindDeleteFrom: "delete-from",
	KindEditFrom:   "edit-from",
	KindAdd:        "add",
	KindShow:       "show",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Command is a parsed message. List and Item are trimmed and keep their case.
type Command struct {
	Kind Kind
	List string
	Item string
	Text string // the whole trimmed message
}

// ErrMalformed is returned when a message has a known keyword but the wrong shape.
var ErrMalformed = errors.New("malformed command")

const (
	keywordLists      = "lists"
	keywordCreate     = "create list -"
	keywordDeleteFrom = "delete from"
	keywordEditFrom   = "edit from"
	keywordDelete     = "delete"
	keywordEdit       = "edit"
	keywordCancel     = "cancel"
	editArrow         = "->"
)

type matcher func(text string) (Command, bool)

// matchers are tried in order; the first match wins.
var matchers = []matcher{
	matchLists,
	matchCreate,
	matchFrom(keywordDeleteFrom, KindDeleteFrom),
	matchFrom(keywordEditFrom, KindEditFrom),
	matchAdd,
}

// Parse classifies a message. Add commands are candidates: the caller falls
// back to KindShow when the list part does not resolve. Text matching no rule
// parses as KindShow with the whole text as the list name.
func Parse(text string) Command {
	text = strings.TrimSpace(text)
	for _, m := range matchers {
		if cmd, ok := m(text); ok {
			cmd.Text = text
			return cmd
		}
	}
	return Command{Kind: KindShow, List: text, Text: text}
}

func matchLists(text string) (Command, bool) {
	return Command{Kind: KindLists}, strings.EqualFold(text, keywordLists)
}

func matchCreate(text string) (Command, bool) {
	if !hasPrefixFold(text, keywordCreate) {
		return Command{}, false
	}
	_, name, _ := strings.Cut(text, "-")
	return Command{Kind: KindCreate, List: strings.TrimSpace(name)}, true
}

func matchFrom(keyword string, kind Kind) matcher {
	return func(text string) (Command, bool) {
		if !hasPrefixFold(text, keyword) {
			return Command{}, false
		}
		return Command{Kind: kind, List: strings.TrimSpace(text[len(keyword):])}, true
	}
}

func matchAdd(text string) (Command, bool) {
	name, item, ok := strings.Cut(text, "-")
	if !ok {
		return Command{}, false
	}
	return Command{Kind: KindAdd, List: strings.TrimSpace(name), Item: strings.TrimSpace(item)}, true
}

// isStartCommand reports whether text begins a new delete or edit flow.
func isStartCommand(text string) bool {
	text = strings.TrimSpace(text)
	return hasPrefixFold(text, keywordDeleteFrom) || hasPrefixFold(text, keywordEditFrom)
}

// hasPrefixFold is strings.HasPrefix ignoring case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// ParseDeleteReply parses the second step of a delete: "delete <n>".
// matched is false when text does not begin with the delete keyword.
// n is the 1-based number as typed.
func ParseDeleteReply(text string) (n int, matched bool, err error) {
	text = strings.TrimSpace(text)
	if !hasPrefixFold(text, keywordDelete) {
		return 0, false, nil
	}
	parts := strings.Fields(text)
	if len(parts) != 2 || !isAllDigits(parts[1]) {
		return 0, true, ErrMalformed
	}
	return parseIndex(parts[1]), true, nil
}

// ParseEditReply parses the second step of an edit: "edit <n> -> <text>".
// The keyword is separated at the first space and the remainder at the first "->".
func ParseEditReply(text string) (n int, replacement string, matched bool, err error) {
	text = strings.TrimSpace(text)
	if !hasPrefixFold(text, keywordEdit) {
		return 0, "", false, nil
	}
	_, rest, ok := strings.Cut(text, " ")
	if !ok {
		return 0, "", true, ErrMalformed
	}
	index, replacement, ok := strings.Cut(rest, editArrow)
	if !ok {
		return 0, "", true, ErrMalformed
	}
	index = strings.TrimSpace(index)
	if !isAllDigits(index) {
		return 0, "", true, ErrMalformed
	}
	return parseIndex(index), strings.TrimSpace(replacement), true, nil
}

// parseIndex converts an all-digit item number. Numbers too large for an int
// saturate to math.MaxInt so they fail the bounds check like any other
// out-of-range number.
func parseIndex(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// isCancel reports whether text asks to abandon a pending action.
func isCancel(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), keywordCancel)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
