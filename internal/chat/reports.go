package chat

import (
	"github.com/matheus3301/huddle/internal/bus"
	"go.uber.org/zap"
)

// QueueReport records a report against a contact for later submission.
func (s *Store) QueueReport(contactID string, topics []string, note string) Report {
	s.mu.Lock()
	report := Report{
		ID:        "r" + s.newID()[:8],
		ContactID: contactID,
		Topics:    topics,
		Note:      note,
		Reporter:  s.self,
		CreatedAt: s.now().UnixMilli(),
		Status:    ReportQueued,
	}
	s.reports = append(s.reports, report)
	s.flushLocked()
	s.mu.Unlock()

	s.publish(bus.KindReportQueued, contactID)
	return report
}

// PendingReports returns the reports still waiting for submission.
func (s *Store) PendingReports() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Report
	for _, r := range s.reports {
		if r.Status == ReportQueued {
			out = append(out, r)
		}
	}
	return out
}

// MarkReportSubmitted records a successful submission.
func (s *Store) MarkReportSubmitted(reportID string) {
	s.setReportStatus(reportID, ReportSubmitted, "")
}

// MarkReportFailed records a failed submission attempt.
func (s *Store) MarkReportFailed(reportID, errMsg string) {
	s.setReportStatus(reportID, ReportFailed, errMsg)
}

func (s *Store) setReportStatus(reportID, status, errMsg string) {
	s.mu.Lock()
	changed := false
	for i := range s.reports {
		if s.reports[i].ID == reportID {
			s.reports[i].Status = status
			s.reports[i].Error = errMsg
			changed = true
			break
		}
	}
	if changed {
		s.flushLocked()
	}
	s.mu.Unlock()

	if !changed {
		s.logger.Warn("report not found", zap.String("report_id", reportID))
	}
}
