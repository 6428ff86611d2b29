package publisherimpl

import (
	"fmt"
	"strings"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
)

// reportOutcome sends the single terminal message of a run.
func (p *PublisherImpl) reportOutcome(report domain.RunReport) {
	var msg string
	switch report.Status {
	case domain.RunPosted:
		msg = postedMessage(report)
	case domain.RunPartial:
		msg = partialMessage(report)
	case domain.RunExhausted:
		msg = fmt.Sprintf("❌ Nothing posted after %d attempt(s)", report.Attempts)
	case domain.RunNoFiles:
		msg = fmt.Sprintf("📭 No media files found in %q", p.settings.folder)
	case domain.RunCapReached:
		msg = fmt.Sprintf("🛑 Daily cap of %d post(s) reached, skipping run", p.settings.dailyCap)
	case domain.RunFailed:
		msg = fmt.Sprintf("🔥 Run failed: %s", report.Error)
		if report.ErrorCode != "" {
			msg = fmt.Sprintf("🔥 Run failed [%s]: %s", report.ErrorCode, report.Error)
		}
	default:
		p.logger.Warn("Run ended without a status")
		return
	}
	p.notifier.Send(msg)
}

func postedMessage(report domain.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Successfully posted one %s: %s", postedKind(report), report.Candidate)
	for _, res := range report.Results {
		if res.Outcome != domain.OutcomeSuccess {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %s", res.Platform.Title(), res.PostID())
		if res.Job != nil && res.Job.Permalink != "" {
			fmt.Fprintf(&b, " %s", res.Job.Permalink)
		}
		if !res.Verified {
			b.WriteString(" (unverified)")
		}
	}
	return b.String()
}

// partialMessage names which platform posted and which one failed. The last
// results of the report belong to the partial candidate.
func partialMessage(report domain.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Partial success for %s, file kept in source", report.Candidate)
	for _, res := range candidateResults(report) {
		switch res.Outcome {
		case domain.OutcomeSuccess:
			fmt.Fprintf(&b, "\n%s: posted %s", res.Platform.Title(), res.PostID())
		case domain.OutcomeSkipped:
			fmt.Fprintf(&b, "\n%s: skipped", res.Platform.Title())
		default:
			fmt.Fprintf(&b, "\n%s: %s (%v)", res.Platform.Title(), strings.ToLower(string(res.Outcome)), res.Err)
		}
	}
	return b.String()
}

// candidateResults returns the results of the last attempted candidate.
func candidateResults(report domain.RunReport) []domain.Result {
	seen := make(map[domain.Platform]bool)
	var out []domain.Result
	for i := len(report.Results) - 1; i >= 0; i-- {
		res := report.Results[i]
		if seen[res.Platform] {
			break
		}
		seen[res.Platform] = true
		out = append([]domain.Result{res}, out...)
	}
	return out
}

func postedKind(report domain.RunReport) string {
	for _, res := range report.Results {
		if res.Outcome == domain.OutcomeSuccess && res.Job != nil && res.Job.MediaType == domain.MediaTypeImage {
			return "image"
		}
	}
	return "reel"
}
