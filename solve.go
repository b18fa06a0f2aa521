package polystrip

import "math"

// ITP tuning: one extra halving beyond bisection's worst case (n0) and the
// truncation factor k1. k2 is fixed at 2 in the truncation step below.
const (
	itpSlack = 1
	itpK1    = 0.2
)

// solveITP finds x in [a, b] with f(x) = 0 by interpolate-truncate-project
// (Oliveira and Takahashi, ACM TOMS 2020). ya and yb are f(a) < 0 and
// f(b) > 0, passed in because callers usually know them already. For
// monotonic f the result is within epsilon of the root, using at most
// itpSlack more evaluations than bisection would.
func solveITP(f func(float64) float64, a, b, epsilon, ya, yb float64) float64 {
	nHalf := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1, 0))
	// Allowed deviation from the midpoint, halved each step.
	slack := epsilon * float64(uint64(1)<<(nHalf+itpSlack))
	for b-a > 2*epsilon {
		mid := 0.5 * (a + b)
		width := b - a

		// Interpolate: regula falsi.
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := mid - xf

		// Truncate towards the midpoint.
		xt := mid
		if delta := itpK1 * width * width; delta <= math.Abs(sigma) {
			xt = xf + math.Copysign(delta, sigma)
		}

		// Project into the minmax interval around the midpoint.
		x := xt
		if r := slack - 0.5*width; math.Abs(xt-mid) > r {
			x = mid - math.Copysign(r, sigma)
		}

		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		default:
			return x
		}
		slack *= 0.5
	}
	return 0.5 * (a + b)
}

// Gauss-Legendre weights and abscissae as {w, x} pairs. The Half tables hold
// only the positive abscissae of symmetric rules; arclenQuadratureCore
// evaluates both signs. Values from
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>.

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs8Half = [...][2]float64{
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}

var gaussLegendreCoeffs24Half = [...][2]float64{
	{0.1279381953467522, 0.0640568928626056},
	{0.1258374563468283, 0.1911188674736163},
	{0.1216704729278034, 0.3150426796961634},
	{0.1155056680537256, 0.4337935076260451},
	{0.1074442701159656, 0.5454214713888396},
	{0.0976186521041139, 0.6480936519369755},
	{0.0861901615319533, 0.7401241915785544},
	{0.0733464814110803, 0.8200019859739029},
	{0.0592985849154368, 0.8864155270044011},
	{0.0442774388174198, 0.9382745520027328},
	{0.0285313886289337, 0.9747285559713095},
	{0.0123412297999872, 0.9951872199970213},
}
