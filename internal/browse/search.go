package browse

import (
	"regexp"

	"lookat/internal/errors"
	"lookat/internal/log"
	"lookat/internal/viewstate"
)

// SearchForward finds the next match of re, first in the rest of the
// current file and then in the following files of the working set. On a
// miss the session returns to where it started.
func (s *Session) SearchForward(re *regexp.Regexp) error {
	return s.search("search-forward", re, true)
}

// SearchBackward is SearchForward towards the start of the working set.
func (s *Session) SearchBackward(re *regexp.Regexp) error {
	return s.search("search-backward", re, false)
}

func (s *Session) search(op string, re *regexp.Regexp, forward bool) error {
	if re == nil {
		return errors.NewNavigationError("pattern is nil", op, errors.InvalidPredicate, nil)
	}
	origin, ok := s.cur.Position()
	if !ok {
		return errors.NewNavigationError("no current file", op, errors.NoCurrentFile, errors.ErrNoCurrentFile)
	}

	surface := s.host.Surface()
	if s.displayed != "" && find(s.registry.Handler(s.kind), surface, re, forward) {
		return nil
	}
	s.leave()

	for {
		if forward {
			s.cur.Advance(1)
		} else {
			s.cur.Retreat(1)
		}
		path, ok := s.cur.Current()
		if !ok {
			break
		}
		kind, err := s.host.DisplayFile(path)
		if err != nil {
			log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("search skipped file")
			continue
		}
		s.displayed, s.kind = path, kind
		if forward {
			surface.SetCursorOffset(-1)
		} else {
			surface.SetCursorOffset(surface.TotalLines())
		}
		if find(s.registry.Handler(kind), surface, re, forward) {
			s.host.ShowHeader(s.Header())
			return nil
		}
	}

	// the origin index came from the cursor, so it is in range
	_ = s.cur.JumpToIndex(origin)
	if err := s.visitCurrent(); err != nil {
		return err
	}
	return errors.NewNavigationError("no match for "+re.String(), op, errors.NotFound, nil)
}

func find(h viewstate.Handler, surface viewstate.Surface, re *regexp.Regexp, forward bool) bool {
	if forward {
		return h.SearchForward(surface, re)
	}
	return h.SearchBackward(surface, re)
}
