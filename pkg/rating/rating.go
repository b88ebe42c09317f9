// Package rating implements the Weng-Lin PlackettLuce rating model the DLO
// ladder runs on: a Bayesian skill estimate per player, updated from team
// placements. Balancing and sigma limiting are intentionally off.
package rating

import "math"

const (
	// DefaultMu and DefaultSigma are the prior for an unseen player.
	DefaultMu    = 25.0
	DefaultSigma = DefaultMu / 3.0

	// Z is the confidence multiplier in the displayed ordinal.
	Z = 3.0

	beta  = DefaultSigma / 2.0
	kappa = 0.0001
)

// Rating is one player's skill estimate.
type Rating struct {
	Mu    float64
	Sigma float64
}

// New returns the default prior rating.
func New() Rating {
	return Rating{Mu: DefaultMu, Sigma: DefaultSigma}
}

// Ordinal is the conservative skill estimate shown on the ladder: the DLO.
func (r Rating) Ordinal() float64 {
	return r.Mu - Z*r.Sigma
}

type teamAggregate struct {
	mu      float64
	sigmaSq float64
	size    int
}

func aggregate(teams [][]Rating) []teamAggregate {
	aggs := make([]teamAggregate, len(teams))
	for i, team := range teams {
		for _, r := range team {
			aggs[i].mu += r.Mu
			aggs[i].sigmaSq += r.Sigma * r.Sigma
		}
		aggs[i].size = len(team)
	}
	return aggs
}

// Rate applies one match result. Teams are ordered by placement, winner
// first, and each team's ratings are returned updated in the same order.
func Rate(teams [][]Rating) [][]Rating {
	if len(teams) < 2 {
		return teams
	}

	aggs := aggregate(teams)

	cSq := 0.0
	for _, a := range aggs {
		cSq += a.sigmaSq + beta*beta
	}
	c := math.Sqrt(cSq)

	// sumQ[q] sums exp(mu/c) over every team placing at or below team q.
	sumQ := make([]float64, len(teams))
	for q := range teams {
		for i := range teams {
			if i >= q {
				sumQ[q] += math.Exp(aggs[i].mu / c)
			}
		}
	}

	result := make([][]Rating, len(teams))
	for i, team := range teams {
		omega := 0.0
		delta := 0.0
		expMu := math.Exp(aggs[i].mu / c)

		for q := range teams {
			if q > i {
				continue
			}
			quotient := expMu / sumQ[q]
			if q == i {
				omega += 1 - quotient
			} else {
				omega -= quotient
			}
			delta += quotient * (1 - quotient)
		}

		omega *= aggs[i].sigmaSq / c
		delta *= aggs[i].sigmaSq / (c * c)
		delta *= math.Sqrt(aggs[i].sigmaSq) / c // gamma factor

		result[i] = make([]Rating, len(team))
		for j, r := range team {
			sigmaSq := r.Sigma * r.Sigma
			result[i][j] = Rating{
				Mu:    r.Mu + (sigmaSq/aggs[i].sigmaSq)*omega,
				Sigma: r.Sigma * math.Sqrt(math.Max(1-(sigmaSq/aggs[i].sigmaSq)*delta, kappa)),
			}
		}
	}

	return result
}

// FillTeam pads team with synthetic players carrying the team's average mu
// and sigma until it reaches size. Callers must discard the padded entries
// after rating; only the first len(team) results are real.
func FillTeam(team []Rating, size int) []Rating {
	if len(team) >= size || len(team) == 0 {
		return team
	}

	avgMu, avgSigma := 0.0, 0.0
	for _, r := range team {
		avgMu += r.Mu
		avgSigma += r.Sigma
	}
	avgMu /= float64(len(team))
	avgSigma /= float64(len(team))

	for len(team) < size {
		team = append(team, Rating{Mu: avgMu, Sigma: avgSigma})
	}
	return team
}
