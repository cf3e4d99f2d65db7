// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ik5/wavedit/history"
	"github.com/ik5/wavedit/session"
)

var errBadStep = errors.New("bad script step")

// step is one edit of an -ops script, e.g. "select:0.25:0.5".
type step struct {
	op   string
	args []string
}

func (s step) String() string {
	return strings.Join(append([]string{s.op}, s.args...), ":")
}

// arity is the number of arguments each operation takes.
var arity = map[string]int{
	"select":   2,
	"cut":      0,
	"extract":  0,
	"copy":     0,
	"cutclip":  0,
	"paste":    0,
	"delete":   0,
	"gain":     1,
	"undo":     0,
	"redo":     0,
	"saveclip": 1,
}

// parseScript splits s on commas and white space into steps and checks
// each one's arity. Numbers are validated when the step runs.
func parseScript(s string) ([]step, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	steps := make([]step, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ":")
		st := step{op: strings.ToLower(parts[0]), args: parts[1:]}

		n, ok := arity[st.op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operation %q", errBadStep, st.op)
		}
		if len(st.args) != n {
			return nil, fmt.Errorf("%w: %q takes %d argument(s)", errBadStep, st.op, n)
		}

		steps = append(steps, st)
	}

	return steps, nil
}

// run applies steps to sess in order and stops at the first failure. An
// undo or redo with nothing to do is skipped.
func run(sess *session.Session, steps []step) error {
	for i, st := range steps {
		if err := apply(sess, st); err != nil {
			if errors.Is(err, history.ErrEmpty) {
				continue
			}
			return fmt.Errorf("step %d (%s): %w", i+1, st, err)
		}
	}
	return nil
}

func apply(sess *session.Session, st step) error {
	switch st.op {
	case "select":
		start, err := parseFloat(st.args[0])
		if err != nil {
			return err
		}
		end, err := parseFloat(st.args[1])
		if err != nil {
			return err
		}
		sess.SetSelection(start, end)
		return nil
	case "cut", "extract":
		return sess.Extract()
	case "copy":
		return sess.Copy()
	case "cutclip":
		return sess.CutToClipboard()
	case "paste":
		return sess.Paste()
	case "delete":
		return sess.Delete()
	case "gain":
		factor, err := parseFloat(st.args[0])
		if err != nil {
			return err
		}
		return sess.CommitGain(factor)
	case "undo":
		return sess.Undo()
	case "redo":
		return sess.Redo()
	case "saveclip":
		_, err := sess.SaveClip(st.args[0])
		return err
	}

	return fmt.Errorf("%w: unknown operation %q", errBadStep, st.op)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errBadStep, s)
	}
	return v, nil
}
