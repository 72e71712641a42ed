// Package rating defines the contract for rating-period updates and the
// production Glicko-2 implementation behind it.
package rating

import "math"

// Default engine constants (Glickman, 2001).
const (
	defaultTau         = 0.5      // system constant constraining volatility change
	defaultConvergence = 0.000001 // volatility iteration tolerance
	glickoScale        = 173.7178 // conversion between the 1500 scale and mu/phi
	baseRating         = 1500.0
)

// Game is one result within a rating period. Opponent values are the
// opponent's rating and deviation at the start of the period.
type Game struct {
	OpponentRating float64
	OpponentRD     float64
	Score          float64 // 1 win, 0.5 draw, 0 loss
}

// Engine computes one rating-period update. Implementations must be pure:
// identical inputs always produce identical outputs.
type Engine interface {
	// Update maps a prior (rating, rd, volatility) and a batch of games to
	// the posterior values. An empty batch leaves all three unchanged.
	Update(rating, rd, volatility float64, games []Game) (float64, float64, float64)
}

// Option applies a configuration option to the Glicko2 engine.
type Option func(*Glicko2)

// WithTau sets the system constant. Smaller values constrain volatility
// changes more tightly; 0.3 to 1.2 are reasonable.
func WithTau(tau float64) Option {
	return func(g *Glicko2) {
		if tau > 0 {
			g.tau = tau
		}
	}
}

// WithConvergence sets the volatility iteration tolerance.
func WithConvergence(eps float64) Option {
	return func(g *Glicko2) {
		if eps > 0 {
			g.eps = eps
		}
	}
}

// Glicko2 implements Engine with the standard Glicko-2 algorithm.
type Glicko2 struct {
	tau float64
	eps float64
}

// NewGlicko2 creates a Glicko-2 engine with configuration options.
func NewGlicko2(opts ...Option) *Glicko2 {
	g := &Glicko2{
		tau: defaultTau,
		eps: defaultConvergence,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// toInternal converts from the public 1500 scale to mu/phi.
func toInternal(r, rd float64) (mu, phi float64) {
	return (r - baseRating) / glickoScale, rd / glickoScale
}

// fromInternal converts mu/phi back to the public 1500 scale.
func fromInternal(mu, phi float64) (r, rd float64) {
	return mu*glickoScale + baseRating, phi * glickoScale
}

// gFactor dampens an opponent's impact by their rating uncertainty.
func gFactor(phi float64) float64 {
	return 1.0 / math.Sqrt(1.0+3.0*phi*phi/(math.Pi*math.Pi))
}

// expected is E(mu, muj, phij), the expected score against one opponent.
func expected(mu, muj, phij float64) float64 {
	return 1.0 / (1.0 + math.Exp(-gFactor(phij)*(mu-muj)))
}

// Update implements Engine.
func (g *Glicko2) Update(rating, rd, volatility float64, games []Game) (float64, float64, float64) {
	if len(games) == 0 {
		return rating, rd, volatility
	}

	mu, phi := toInternal(rating, rd)

	// Estimated variance (v) and improvement (delta) over the period.
	var invV float64    // sum of g^2 * E * (1-E)
	var outcome float64 // sum of g * (score - E)
	for _, game := range games {
		muj, phij := toInternal(game.OpponentRating, game.OpponentRD)
		gj := gFactor(phij)
		ej := expected(mu, muj, phij)
		invV += gj * gj * ej * (1.0 - ej)
		outcome += gj * (game.Score - ej)
	}
	v := 1.0 / invV
	delta := v * outcome

	sigma := g.newVolatility(phi, v, delta, volatility)

	phiStar := math.Sqrt(phi*phi + sigma*sigma)
	phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
	muNew := mu + phiNew*phiNew*outcome

	r, newRD := fromInternal(muNew, phiNew)
	return r, newRD, sigma
}

// newVolatility solves for sigma' with the Illinois variant of regula falsi,
// per step 5 of the Glicko-2 paper.
func (g *Glicko2) newVolatility(phi, v, delta, sigma float64) float64 {
	a := math.Log(sigma * sigma)
	phi2 := phi * phi
	d2 := delta * delta

	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (d2 - phi2 - v - ex)
		den := 2.0 * (phi2 + v + ex) * (phi2 + v + ex)
		return num/den - (x-a)/(g.tau*g.tau)
	}

	bigA := a
	var bigB float64
	if d2 > phi2+v {
		bigB = math.Log(d2 - phi2 - v)
	} else {
		k := 1.0
		for f(a-k*g.tau) < 0 {
			k++
		}
		bigB = a - k*g.tau
	}

	fA := f(bigA)
	fB := f(bigB)
	for math.Abs(bigB-bigA) > g.eps {
		bigC := bigA + (bigA-bigB)*fA/(fB-fA)
		fC := f(bigC)
		if fC*fB <= 0 {
			bigA = bigB
			fA = fB
		} else {
			fA /= 2.0
		}
		bigB = bigC
		fB = fC
	}

	return math.Exp(bigA / 2.0)
}
