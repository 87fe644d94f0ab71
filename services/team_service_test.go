package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/cricket-system/models"
)

func newTestTeamService(teamRepo *fakeTeamRepo, authz *fakeAuthorizer) (*teamService, *fakeTxStarter) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	txs := &fakeTxStarter{}
	svc := NewTeamService(nil, teamRepo, nil, authz, logger).(*teamService)
	svc.txs = txs
	return svc, txs
}

func TestTeamCreateRequiresName(t *testing.T) {
	svc, _ := newTestTeamService(&fakeTeamRepo{}, &fakeAuthorizer{})
	if _, err := svc.Create(context.Background(), 1, CreateTeamInput{TournamentID: 1, Name: "   "}); !errors.Is(err, ErrTeamNameRequired) {
		t.Fatalf("error = %v, want %v", err, ErrTeamNameRequired)
	}
}

func TestTeamDeleteRemovesRoster(t *testing.T) {
	repo := &fakeTeamRepo{teams: []*models.Team{{ID: 7, TournamentID: 1, Name: "Strikers"}}}
	svc, txs := newTestTeamService(repo, &fakeAuthorizer{})

	if err := svc.Delete(context.Background(), 1, 7); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if len(repo.rosterDeleted) != 1 || repo.rosterDeleted[0] != 7 {
		t.Fatalf("roster deleted for %v, want [7]", repo.rosterDeleted)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 7 {
		t.Fatalf("teams deleted = %v, want [7]", repo.deleted)
	}
	if !txs.last.committed {
		t.Fatal("delete transaction was not committed")
	}
}

func TestTeamDeleteRollsBackOnRepoError(t *testing.T) {
	repo := &fakeTeamRepo{
		teams:     []*models.Team{{ID: 7, TournamentID: 1, Name: "Strikers"}},
		deleteErr: errors.New("delete failed"),
	}
	svc, txs := newTestTeamService(repo, &fakeAuthorizer{})

	if err := svc.Delete(context.Background(), 1, 7); err == nil {
		t.Fatal("Delete() succeeded despite repo error")
	}
	if txs.last.committed {
		t.Fatal("transaction was committed despite repo error")
	}
	if !txs.last.rolledBack {
		t.Fatal("transaction was not rolled back")
	}
}

func TestTeamDeleteRequiresAdmin(t *testing.T) {
	repo := &fakeTeamRepo{teams: []*models.Team{{ID: 7, TournamentID: 1, Name: "Strikers"}}}
	svc, txs := newTestTeamService(repo, &fakeAuthorizer{err: ErrNotTournamentAdmin})

	if err := svc.Delete(context.Background(), 5, 7); !errors.Is(err, ErrNotTournamentAdmin) {
		t.Fatalf("error = %v, want %v", err, ErrNotTournamentAdmin)
	}
	if txs.last != nil {
		t.Fatal("transaction was opened before the admin check")
	}
}
