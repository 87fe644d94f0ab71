package scheduling

import "testing"

func TestRoundRobinPairings(t *testing.T) {
	tests := []struct {
		name        string
		teamIDs     []int
		doubleRound bool
		wantCount   int
		wantErr     bool
	}{
		{name: "two teams", teamIDs: []int{1, 2}, wantCount: 1},
		{name: "four teams single", teamIDs: []int{1, 2, 3, 4}, wantCount: 6},
		{name: "four teams double", teamIDs: []int{1, 2, 3, 4}, doubleRound: true, wantCount: 12},
		{name: "one team", teamIDs: []int{1}, wantErr: true},
		{name: "empty", teamIDs: nil, wantErr: true},
		{name: "duplicate ids", teamIDs: []int{1, 2, 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairings, err := RoundRobinPairings(tt.teamIDs, tt.doubleRound)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(pairings) != tt.wantCount {
				t.Fatalf("got %d pairings, want %d", len(pairings), tt.wantCount)
			}

			type pair struct{ a, b int }
			seen := make(map[pair]bool)
			for _, p := range pairings {
				if p.Team1ID == p.Team2ID {
					t.Fatalf("team %d paired with itself", p.Team1ID)
				}
				key := pair{p.Team1ID, p.Team2ID}
				if seen[key] {
					t.Fatalf("pairing %v appears twice", p)
				}
				seen[key] = true
			}
		})
	}
}

func TestRoundRobinEveryTeamPlaysEveryOther(t *testing.T) {
	teamIDs := []int{10, 20, 30, 40, 50}
	pairings, err := RoundRobinPairings(teamIDs, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	met := make(map[int]map[int]bool)
	for _, p := range pairings {
		if met[p.Team1ID] == nil {
			met[p.Team1ID] = make(map[int]bool)
		}
		if met[p.Team2ID] == nil {
			met[p.Team2ID] = make(map[int]bool)
		}
		met[p.Team1ID][p.Team2ID] = true
		met[p.Team2ID][p.Team1ID] = true
	}

	for _, a := range teamIDs {
		for _, b := range teamIDs {
			if a == b {
				continue
			}
			if !met[a][b] {
				t.Fatalf("teams %d and %d never meet", a, b)
			}
		}
	}
}

func TestRoundRobinDoubleRoundSwapsHome(t *testing.T) {
	pairings, err := RoundRobinPairings([]int{1, 2}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairings) != 2 {
		t.Fatalf("got %d pairings, want 2", len(pairings))
	}
	if pairings[0].Team1ID != pairings[1].Team2ID || pairings[0].Team2ID != pairings[1].Team1ID {
		t.Fatalf("second leg does not swap home team: %v", pairings)
	}
}
