package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/labels"
)

// render prints the open item, its neighbors and its segments
func (h *Host) render() {
	s := h.Current()
	if s == nil {
		return
	}
	t := s.Target()
	d := s.Detail()

	fmt.Fprintf(h.out, "\n%s  (data %d, page %d, %s)\n", t.Filename, t.DataID, t.Page, t.Active)
	if d.ReferenceTranscription != "" {
		fmt.Fprintf(h.out, "reference: %s\n", d.ReferenceTranscription)
	}
	if url := s.ReferenceVideoURL(); url != "" {
		fmt.Fprintf(h.out, "video:     %s\n", url)
	}
	review := "no"
	if s.MarkedForReview() {
		review = "yes"
	}
	fmt.Fprintf(h.out, "review:    %s   zoom: %d\n", review, s.ZoomLevel())

	cur := s.Cursor()
	fmt.Fprintf(h.out, "previous:  %s\nnext:      %s\n", neighborName(cur.Previous), neighborName(cur.Next))

	selected, _ := s.Selected()
	editable := s.Schema().Editable()

	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\t#\tstart\tend\tstate\ttranscription\tlabels")
	for i, seg := range s.Segments() {
		mark := " "
		if seg.RegionID == selected.RegionID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%s\t%s\t%s\n",
			mark, i+1, seg.Start, seg.End, seg.State, seg.Transcription, labelSummary(&seg, editable))
	}
	_ = tw.Flush()

	h.showAlert()
}

func neighborName(n *models.Neighbor) string {
	if n == nil {
		return "-"
	}
	return n.Filename
}

func labelSummary(seg *models.Segment, editable []models.Label) string {
	parts := make([]string, 0, len(editable))
	for _, label := range editable {
		names := labels.DisplayValues(label, labels.Read(seg, label))
		if len(names) == 0 {
			continue
		}
		parts = append(parts, label.Key+"="+strings.Join(names, ","))
	}
	return strings.Join(parts, " ")
}
