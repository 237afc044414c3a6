// Package analysis characterizes trajectories produced by generators.
//
//   - [PowerSpectrum], [DominantFrequency]: spectra of a sampled component
//   - [LyapunovExponent]: largest exponent via trajectory separation
//   - [PhasePortrait], [PoincareSection]: projections of phase space
//   - [Bifurcation]: parameter sweep recording the local maxima of a component
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(model, stepper, x0, nil, analysis.LyapunovOptions{})
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
