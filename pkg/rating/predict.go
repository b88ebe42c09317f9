package rating

import "math"

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func normQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

// PredictWin estimates the probability that the first of two teams wins.
func PredictWin(a, b []Rating) float64 {
	aggs := aggregate([][]Rating{a, b})
	playerCount := float64(aggs[0].size + aggs[1].size)

	denom := math.Sqrt(playerCount*beta*beta + aggs[0].sigmaSq + aggs[1].sigmaSq)
	return normCDF((aggs[0].mu - aggs[1].mu) / denom)
}

// PredictDraw estimates how close a match between the teams would be; the
// ladder reports it as match quality.
func PredictDraw(teams [][]Rating) float64 {
	if len(teams) < 2 {
		return 1
	}

	aggs := aggregate(teams)
	totalPlayers := 0
	for _, a := range aggs {
		totalPlayers += a.size
	}

	drawProbability := 1 / float64(totalPlayers)
	drawMargin := math.Sqrt(float64(totalPlayers)) * beta * normQuantile((1+drawProbability)/2)

	sum := 0.0
	pairs := 0
	for i := range aggs {
		for j := i + 1; j < len(aggs); j++ {
			pairCount := float64(aggs[i].size + aggs[j].size)
			denom := math.Sqrt(pairCount*beta*beta + aggs[i].sigmaSq + aggs[j].sigmaSq)
			deltaMu := aggs[i].mu - aggs[j].mu

			sum += normCDF((drawMargin-deltaMu)/denom) - normCDF((-drawMargin-deltaMu)/denom)
			pairs++
		}
	}

	return sum / float64(pairs)
}
