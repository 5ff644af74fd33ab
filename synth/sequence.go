package synth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EventKind distinguishes the lines of a sequence file.
type EventKind int

const (
	// Note plays a voice for a fixed duration:  @ time duration Name params...
	Note EventKind = iota
	// On starts a voice that plays until a matching Off:  + time id Name params...
	On
	// Off releases the voice started with the same id:  - time id
	Off
)

func (k EventKind) String() string {
	switch k {
	case Note:
		return "@"
	case On:
		return "+"
	case Off:
		return "-"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one line of a sequence file.  Params are positional, in the
// voice's parameter creation order.
type Event struct {
	Kind     EventKind
	Time     float64
	Duration float64
	ID       int
	Voice    string
	Params   []float64
}

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("sequence syntax error")

// ParseSequence reads a sequence file.  Lines starting with # are comments;
// blank lines are skipped.
func ParseSequence(r io.Reader) ([]Event, error) {
	var events []Event
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		e, err := parseEvent(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrSyntax, err)
		}
		events = append(events, e)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func parseEvent(fields []string) (e Event, err error) {
	need := func(n int) error {
		if len(fields) < n {
			return fmt.Errorf("%q needs at least %d fields", fields[0], n-1)
		}
		return nil
	}
	switch fields[0] {
	case "@":
		if err = need(4); err != nil {
			return
		}
		e.Kind = Note
		if e.Time, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return
		}
		if e.Duration, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return
		}
		e.Voice = fields[3]
		e.Params, err = parseParams(fields[4:])
	case "+":
		if err = need(4); err != nil {
			return
		}
		e.Kind = On
		if e.Time, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return
		}
		if e.ID, err = strconv.Atoi(fields[2]); err != nil {
			return
		}
		e.Voice = fields[3]
		e.Params, err = parseParams(fields[4:])
	case "-":
		if err = need(3); err != nil {
			return
		}
		e.Kind = Off
		if e.Time, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return
		}
		e.ID, err = strconv.Atoi(fields[2])
	default:
		err = fmt.Errorf("unknown command %q", fields[0])
	}
	return
}

func parseParams(fields []string) ([]float64, error) {
	var params []float64
	for _, f := range fields {
		if strings.HasPrefix(f, "#") {
			break
		}
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		params = append(params, x)
	}
	return params, nil
}

// WriteSequence writes events in the format ParseSequence reads.
func WriteSequence(w io.Writer, events []Event) error {
	bw := bufio.NewWriter(w)
	for _, e := range events {
		var fields []string
		num := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
		switch e.Kind {
		case Note:
			fields = []string{"@", num(e.Time), num(e.Duration), e.Voice}
		case On:
			fields = []string{"+", num(e.Time), strconv.Itoa(e.ID), e.Voice}
		case Off:
			fields = []string{"-", num(e.Time), strconv.Itoa(e.ID)}
		default:
			return fmt.Errorf("cannot write %v", e.Kind)
		}
		if e.Kind != Off {
			for _, p := range e.Params {
				fields = append(fields, num(p))
			}
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadSequence parses the sequence file at path.
func LoadSequence(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	events, err := ParseSequence(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}
