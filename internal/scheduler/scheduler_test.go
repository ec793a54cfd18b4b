package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

type stubService struct {
	reportErr  error
	monitorErr error
	refreshErr error
	refreshes  int
}

func (s *stubService) Refresh(context.Context) (models.MatchupProjection, error) {
	s.refreshes++
	return models.MatchupProjection{Week: 4}, s.refreshErr
}

func (s *stubService) GetScheduledReport(context.Context) (string, error) {
	return "projection", s.reportErr
}

func (s *stubService) GetPlayersToMonitor() (string, error) {
	return "monitor", s.monitorErr
}

type stubRecorder struct {
	jobs []string
}

func (r *stubRecorder) ObserveJobError(job string) {
	r.jobs = append(r.jobs, job)
}

func newTestScheduler(t *testing.T, svc *stubService, rec *stubRecorder) (*Scheduler, *[]string) {
	t.Helper()
	var sent []string
	s, err := NewScheduler(svc, func(text string) error {
		sent = append(sent, text)
		return nil
	}, Options{ReportHour: 10, Metrics: rec})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, &sent
}

func TestReportsAreSent(t *testing.T) {
	s, sent := newTestScheduler(t, &stubService{}, &stubRecorder{})

	s.sendProjectionReport()
	s.sendPlayersToMonitor()

	if len(*sent) != 2 || (*sent)[0] != "projection" || (*sent)[1] != "monitor" {
		t.Fatalf("expected both reports sent, got %v", *sent)
	}
}

func TestFailedJobsAreRecordedNotSent(t *testing.T) {
	svc := &stubService{
		reportErr:  errors.New("espn down"),
		monitorErr: errors.New("nothing loaded"),
		refreshErr: errors.New("espn down"),
	}
	rec := &stubRecorder{}
	s, sent := newTestScheduler(t, svc, rec)

	s.sendProjectionReport()
	s.sendPlayersToMonitor()
	s.refresh()

	if len(*sent) != 0 {
		t.Fatalf("expected no messages, got %v", *sent)
	}
	want := []string{"projection_report", "players_to_monitor", "refresh"}
	if len(rec.jobs) != len(want) {
		t.Fatalf("expected %v, got %v", want, rec.jobs)
	}
	for i := range want {
		if rec.jobs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, rec.jobs)
		}
	}
}

func TestRefreshReloadsDisplayedMatchup(t *testing.T) {
	svc := &stubService{}
	rec := &stubRecorder{}
	s, sent := newTestScheduler(t, svc, rec)

	s.refresh()
	s.refresh()

	if svc.refreshes != 2 {
		t.Fatalf("expected 2 refreshes, got %d", svc.refreshes)
	}
	if len(*sent) != 0 || len(rec.jobs) != 0 {
		t.Fatalf("expected silent refresh, got sent=%v errors=%v", *sent, rec.jobs)
	}
}

func TestStartRegistersJobs(t *testing.T) {
	svc := &stubService{}
	s, err := NewScheduler(svc, func(string) error { return nil }, Options{ReportHour: 9, RefreshInterval: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if got := len(s.s.Jobs()); got != 2 {
		t.Fatalf("expected 2 jobs without refresh, got %d", got)
	}
}
