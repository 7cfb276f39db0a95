package state

import (
	"context"
	"sync"

	"github.com/x3alone/01blog/internal/client/api"
	"github.com/x3alone/01blog/internal/models"
)

// ReportList is the moderation dashboard's local view of open reports.
// Removals are never optimistic: a dismissed report disappears only after the
// server confirms.
type ReportList struct {
	mu      sync.Mutex
	reports []models.Report

	coord *Coordinator
	api   *api.Client
}

// NewReportList builds an empty report list.
func NewReportList(coord *Coordinator, client *api.Client) *ReportList {
	return &ReportList{coord: coord, api: client}
}

// Refresh replaces the list with the server's state.
func (l *ReportList) Refresh(ctx context.Context) error {
	reports, err := l.api.Reports(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.reports = reports
	l.mu.Unlock()
	return nil
}

// Reports returns a snapshot of the list.
func (l *ReportList) Reports() []models.Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Report, len(l.reports))
	copy(out, l.reports)
	return out
}

func (l *ReportList) removeWhere(keep func(models.Report) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.reports[:0]
	for _, r := range l.reports {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	l.reports = kept
}

// Dismiss deletes a report server-side and filters it out of the local list
// on confirmed success only.
func (l *ReportList) Dismiss(ctx context.Context, reportID int64) bool {
	return l.coord.Do(ctx, Key{ItemID: reportID, Action: "dismiss report"}, Mutation{
		Confirm: func(ctx context.Context) error {
			return l.api.DeleteReport(ctx, reportID)
		},
		OnSuccess: func() {
			l.removeWhere(func(r models.Report) bool { return r.ID != reportID })
		},
	})
}

// DeleteReportedPost removes the offending post; on success every report
// against that post is dropped from the local list.
func (l *ReportList) DeleteReportedPost(ctx context.Context, postID int64) bool {
	return l.coord.Do(ctx, Key{ItemID: postID, Action: "delete reported post"}, Mutation{
		Confirm: func(ctx context.Context) error {
			return l.api.DeletePost(ctx, postID)
		},
		OnSuccess: func() {
			l.removeWhere(func(r models.Report) bool { return r.PostID != postID })
		},
	})
}
