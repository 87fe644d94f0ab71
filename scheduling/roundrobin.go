package scheduling

import "fmt"

// Pairing — одна пара команд в круговом расписании. Первая команда
// считается хозяином пары.
type Pairing struct {
	Team1ID int
	Team2ID int
}

// RoundRobinPairings строит круговое расписание: каждая команда играет
// с каждой один раз, при doubleRound — дважды с переменой хозяина.
// Порядок пар детерминирован порядком входного среза.
func RoundRobinPairings(teamIDs []int, doubleRound bool) ([]Pairing, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("not enough teams for a round robin (found %d, min 2 required)", len(teamIDs))
	}

	seen := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		if seen[id] {
			return nil, fmt.Errorf("duplicate team id %d in round robin", id)
		}
		seen[id] = true
	}

	pairings := make([]Pairing, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	for i := 0; i < len(teamIDs); i++ {
		for j := i + 1; j < len(teamIDs); j++ {
			pairings = append(pairings, Pairing{Team1ID: teamIDs[i], Team2ID: teamIDs[j]})
		}
	}

	if doubleRound {
		secondLeg := make([]Pairing, 0, len(pairings))
		for _, p := range pairings {
			secondLeg = append(secondLeg, Pairing{Team1ID: p.Team2ID, Team2ID: p.Team1ID})
		}
		pairings = append(pairings, secondLeg...)
	}

	return pairings, nil
}
