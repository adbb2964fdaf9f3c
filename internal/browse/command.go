package browse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"lookat/internal/cursor"
	"lookat/internal/errors"
	"lookat/internal/log"
)

// PromptKind tells a Prompter what kind of value a command needs.
type PromptKind int

const (
	PromptGlob PromptKind = iota
	PromptRegexp
	PromptIndex
	PromptComparator
	PromptPath
)

// Prompter asks the user for a value. A dismissed prompt returns an error
// for which errors.IsUserCancelled holds.
type Prompter interface {
	Prompt(kind PromptKind, label string) (string, error)
}

// Command is a session operation that takes one user-supplied value.
type Command int

const (
	CmdLoadGlob Command = iota
	CmdAppendGlob
	CmdRetainMatching
	CmdRemoveMatching
	CmdJumpToIndex
	CmdJumpToPath
	CmdInsertFile
	CmdMoveToIndex
	CmdSort
	CmdSearchForward
	CmdSearchBackward
)

var commandInfo = map[Command]struct {
	name  string
	label string
	kind  PromptKind
}{
	CmdLoadGlob:       {"glob", "Glob", PromptGlob},
	CmdAppendGlob:     {"append-glob", "Append glob", PromptGlob},
	CmdRetainMatching: {"retain-regexp", "Keep files matching", PromptRegexp},
	CmdRemoveMatching: {"remove-regexp", "Drop files matching", PromptRegexp},
	CmdJumpToIndex:    {"jump-to-index", "Jump to index", PromptIndex},
	CmdJumpToPath:     {"jump-to-path", "Jump to file", PromptPath},
	CmdInsertFile:     {"insert-file", "Insert file", PromptPath},
	CmdMoveToIndex:    {"move-to-index", "Move current file to index", PromptIndex},
	CmdSort:           {"sort", "Sort by (" + strings.Join(Comparators(), ", ") + ")", PromptComparator},
	CmdSearchForward:  {"search-forward", "Search forward", PromptRegexp},
	CmdSearchBackward: {"search-backward", "Search backward", PromptRegexp},
}

func (c Command) String() string {
	if info, ok := commandInfo[c]; ok {
		return info.name
	}
	return "unknown"
}

// Label is the prompt text for c.
func (c Command) Label() string {
	return commandInfo[c].label
}

// PromptKind is the kind of value c needs.
func (c Command) PromptKind() PromptKind {
	return commandInfo[c].kind
}

// Run prompts for the command's value and executes it. A cancelled prompt
// changes nothing.
func (s *Session) Run(cmd Command, p Prompter) error {
	input, err := p.Prompt(cmd.PromptKind(), cmd.Label())
	if err != nil {
		if errors.IsUserCancelled(err) {
			log.LogWithFields(log.F("command", cmd.String())).Debug("prompt cancelled")
		}
		return err
	}
	return s.Execute(cmd, input)
}

// Execute runs cmd with an already supplied value.
func (s *Session) Execute(cmd Command, input string) error {
	input = strings.TrimSpace(input)
	switch cmd {
	case CmdLoadGlob:
		return s.LoadGlob(input, cursor.Replace, s.cfg)
	case CmdAppendGlob:
		return s.LoadGlob(input, cursor.Append, s.cfg)
	case CmdRetainMatching, CmdRemoveMatching:
		re, err := compilePredicate(cmd, input)
		if err != nil {
			return err
		}
		var dropped int
		if cmd == CmdRetainMatching {
			dropped, err = s.Retain(re)
		} else {
			dropped, err = s.Remove(re)
		}
		log.LogWithFields(log.F("command", cmd.String()), log.F("dropped", dropped)).Debug("working set filtered")
		return err
	case CmdJumpToIndex, CmdMoveToIndex:
		n, err := strconv.Atoi(input)
		if err != nil {
			return errors.NewInvalidInputError("index must be an integer", err).WithContext("input", input)
		}
		if cmd == CmdJumpToIndex {
			return s.JumpToIndex(n)
		}
		return s.MoveCurrentToIndex(n)
	case CmdJumpToPath:
		if target, ok := s.ResolvePath(input); ok {
			s.JumpToPath(target)
		}
		return nil
	case CmdInsertFile:
		return s.InsertFile(input)
	case CmdSort:
		return s.Sort(input)
	case CmdSearchForward, CmdSearchBackward:
		re, err := compilePredicate(cmd, input)
		if err != nil {
			return err
		}
		if cmd == CmdSearchForward {
			return s.SearchForward(re)
		}
		return s.SearchBackward(re)
	}
	return errors.NewInvalidInputError("unknown command", nil).WithContext("command", int(cmd))
}

func compilePredicate(cmd Command, input string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(input)
	if err != nil {
		return nil, errors.NewNavigationError("invalid regular expression", cmd.String(), errors.InvalidPredicate, err)
	}
	return re, nil
}

// ResolvePath maps user input to a path of the working set: an exact path
// (absolute or relative to the working directory) first, then the best
// fuzzy match against names relative to the working-set root.
func (s *Session) ResolvePath(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	if abs := s.absolute(input); s.contains(abs) {
		return abs, true
	}

	paths := s.cur.Paths()
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = s.Relative(p)
	}
	matches := fuzzy.Find(input, names)
	if len(matches) == 0 {
		return "", false
	}
	return paths[matches[0].Index], true
}

func (s *Session) contains(path string) bool {
	_, ok := s.cur.IndexOf(path)
	return ok
}
