package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/commands"
	"github.com/killallgit/annotator/internal/services/labels"
	"github.com/killallgit/annotator/internal/services/session"
	"github.com/killallgit/annotator/internal/waveform"
)

// ErrUnsupported is returned when the session engine cannot perform a
// reviewer gesture such as drawing a region
var ErrUnsupported = errors.New("engine does not support this gesture")

// labelRefresher drops a cached label schema so the next open refetches it
type labelRefresher interface {
	InvalidateLabels(ctx context.Context)
}

// gestures are the reviewer interactions a waveform engine can simulate
type gestures interface {
	DrawRegion(start, end float64) waveform.Region
	DragRegion(id string, start, end float64) error
	Advance(elapsed float64)
	Position() float64
}

const usage = `hotkeys:   space, ctrl+left, ctrl+right, ctrl+shift+left, ctrl+shift+right,
           ctrl+up, ctrl+down, ctrl+s, ctrl+shift+s (command+ works too)
commands:  play | seek <seconds> | tick <seconds> | zoom <level>
           draw <start> <end> | drag <n> <start> <end> | select <n>
           text <transcription> | label <name> [value ...]
           save | delete | skip | next | prev | review on|off
           open <dataId&filename&startMs&page&status> | reload | show | help | quit
intents:   go-to-next-item, go-to-previous-item, save-segment, skip-file, ...`

// execute runs one input line and reports whether the reviewer asked to quit
func (h *Host) execute(ctx context.Context, line string) (bool, error) {
	s := h.Current()

	if intent, ok := commands.IntentForKey(line); ok {
		err := s.Dispatch(intent)
		if errors.Is(err, commands.ErrBlocked) {
			return false, fmt.Errorf("%s is not available right now", intent)
		}
		return false, err
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	if intent := commands.Intent(strings.ToLower(name)); s.Handles(intent) {
		err := s.Dispatch(intent)
		if errors.Is(err, commands.ErrBlocked) {
			return false, fmt.Errorf("%s is not available right now", intent)
		}
		return false, err
	}

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(h.out, usage)
	case "show", "status":
		h.render()
	case "play":
		s.TogglePlay()
	case "seek":
		delta, err := floatArg(args, 0, "seconds")
		if err != nil {
			return false, err
		}
		s.Seek(delta)
	case "tick":
		elapsed, err := floatArg(args, 0, "seconds")
		if err != nil {
			return false, err
		}
		g, ok := s.Engine().(gestures)
		if !ok {
			return false, ErrUnsupported
		}
		g.Advance(elapsed)
		fmt.Fprintf(h.out, "at %.2fs: %s\n", g.Position(), s.CurrentTranscription())
	case "zoom":
		level, err := intArg(args, 0, "level")
		if err != nil {
			return false, err
		}
		fmt.Fprintf(h.out, "zoom %d\n", s.Zoom(level))
	case "draw":
		return false, h.draw(s, args)
	case "drag":
		return false, h.drag(s, args)
	case "select":
		id, err := regionArg(s, args, 0)
		if err != nil {
			return false, err
		}
		return false, s.Select(id)
	case "text":
		return false, s.SetTranscription(rest)
	case "label":
		return false, h.label(s, args)
	case "save":
		return false, s.Save()
	case "delete":
		return false, s.Delete()
	case "skip":
		return false, s.Skip()
	case "next":
		return false, s.Next()
	case "prev", "previous":
		return false, s.Previous()
	case "review":
		marked, err := onOff(args)
		if err != nil {
			return false, err
		}
		return false, s.SetMarkedForReview(marked)
	case "open":
		target, err := models.ParseTarget(rest)
		if err != nil {
			return false, err
		}
		return false, h.Navigate(ctx, target)
	case "reload":
		if r, ok := h.data.(labelRefresher); ok {
			r.InvalidateLabels(ctx)
		}
		return false, h.Navigate(ctx, s.Target())
	default:
		return false, fmt.Errorf("unknown command %q, type help", name)
	}
	return false, nil
}

func (h *Host) draw(s *session.Session, args []string) error {
	start, err := floatArg(args, 0, "start")
	if err != nil {
		return err
	}
	end, err := floatArg(args, 1, "end")
	if err != nil {
		return err
	}
	g, ok := s.Engine().(gestures)
	if !ok {
		return ErrUnsupported
	}
	r := g.DrawRegion(start, end)
	if _, tracked := findSegment(s, r.ID); !tracked {
		s.Engine().RemoveRegion(r.ID)
		return fmt.Errorf("region %.2f-%.2f was rejected", start, end)
	}
	return nil
}

func (h *Host) drag(s *session.Session, args []string) error {
	id, err := regionArg(s, args, 0)
	if err != nil {
		return err
	}
	start, err := floatArg(args, 1, "start")
	if err != nil {
		return err
	}
	end, err := floatArg(args, 2, "end")
	if err != nil {
		return err
	}
	g, ok := s.Engine().(gestures)
	if !ok {
		return ErrUnsupported
	}
	return g.DragRegion(id, start, end)
}

// label sets a label on the selected segment. Values may be given by id or
// by name; a single-select label with no value is cleared.
func (h *Host) label(s *session.Session, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: label <name> [value ...]")
	}
	label, ok := s.Schema().Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s (reload picks up new labels)", labels.ErrUnknownLabel, args[0])
	}

	ids := make([]string, 0, len(args)-1)
	for _, v := range args[1:] {
		ids = append(ids, valueID(label, v))
	}
	if label.IsMultiselect() {
		return s.SetLabel(label.Key, ids)
	}
	if len(ids) == 0 {
		return s.SetLabel(label.Key, labels.Placeholder)
	}
	return s.SetLabel(label.Key, ids[0])
}

func valueID(label models.Label, v string) string {
	for _, lv := range label.Values {
		if strings.EqualFold(lv.Value, v) {
			return strconv.FormatInt(lv.ValueID, 10)
		}
	}
	return v
}

// regionArg resolves a 1-based segment number or a region id
func regionArg(s *session.Session, args []string, i int) (string, error) {
	if len(args) <= i {
		return "", errors.New("missing segment number")
	}
	segs := s.Segments()
	if n, err := strconv.Atoi(args[i]); err == nil {
		if n < 1 || n > len(segs) {
			return "", fmt.Errorf("no segment %d", n)
		}
		return segs[n-1].RegionID, nil
	}
	if _, ok := findSegment(s, args[i]); !ok {
		return "", fmt.Errorf("no segment %q", args[i])
	}
	return args[i], nil
}

func findSegment(s *session.Session, regionID string) (models.Segment, bool) {
	for _, seg := range s.Segments() {
		if seg.RegionID == regionID {
			return seg, true
		}
	}
	return models.Segment{}, false
}

func floatArg(args []string, i int, name string) (float64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return v, nil
}

func intArg(args []string, i int, name string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return v, nil
}

func onOff(args []string) (bool, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on", "yes", "true":
			return true, nil
		case "off", "no", "false":
			return false, nil
		}
	}
	return false, errors.New("usage: review on|off")
}
