// Package special holds the exponential integral used by the analytic
// ionization fits (Janev 1993, svlib routines of DEGAS2).
package special

import "math"

// Abramowitz & Stegun 5.1.53 (0 < p <= 1)
var e1Series = [6]float64{-0.57721566, 0.99999193, -0.24991055, 0.05519968, -0.00976004, 0.00107857}

// Abramowitz & Stegun 5.1.56 (1 <= p < inf)
var (
	e1Num = [4]float64{8.5733287401, 18.0590169730, 8.6347608925, 0.2677737343}
	e1Den = [4]float64{9.5733223454, 25.6329561486, 21.0996530827, 3.9584969228}
)

const (
	asymptoticFrom = 8.
	maxBackwardK   = 10
)

// Expint returns E_k(p) = ∫_1^∞ exp(-p t) / t^k dt.
// NaN is returned where the integral is undefined (p < 0, or k = 1 at p = 0).
func Expint(k int, p float64) float64 {
	if k < 0 || p < 0 {
		return math.NaN()
	}
	if k == 0 {
		return math.Exp(-p) / p
	}
	if p == 0 {
		if k == 1 {
			return math.NaN()
		}
		return 1. / float64(k-1)
	}

	if p < asymptoticFrom || k == 1 {
		ek := e1(p)
		for i := 2; i <= k; i++ {
			ek = (math.Exp(-p) - p*ek) / float64(i-1)
		}
		return ek
	}

	kp := int(p + 0.5)
	if k < kp && k <= maxBackwardK {
		kp = min(kp, maxBackwardK)
		ek := asymptotic(float64(kp), p)
		for i := kp - 1; i >= k; i-- {
			ek = (math.Exp(-p) - float64(i)*ek) / p
		}
		return ek
	}
	return asymptotic(float64(k), p)
}

func e1(p float64) float64 {
	if p < 1 {
		ze1 := e1Series[5]
		for i := 4; i >= 0; i-- {
			ze1 = e1Series[i] + ze1*p
		}
		return ze1 - math.Log(p)
	}
	num, den := 1., 1.
	for i := range e1Num {
		num = e1Num[i] + num*p
		den = e1Den[i] + den*p
	}
	return math.Exp(-p) * num / (den * p)
}

// large k + p expansion of E_k(p)
func asymptotic(k, p float64) float64 {
	s := p + k
	return math.Exp(-p) * (1 +
		k/math.Pow(s, 2) +
		k*(k-2*p)/math.Pow(s, 4) +
		k*(6*p*p-8*k*p+k*k)/math.Pow(s, 6)) / s
}
