// Package score implements the ACMG/AMP evidence scoring model using the
// Tavtigian et al. 2020 point-based recalibration. It exposes the static
// evidence-code table ([Codes], [Lookup]), the evidence parser ([Parse]),
// and the scoring pipeline ([Compute], [Classify], [Posterior]).
package score
