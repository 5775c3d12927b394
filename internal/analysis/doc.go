// Package analysis summarizes recorded runs from their frame series.
//
//   - [DominantFrequency]: strongest periodic component of a series, e.g.
//     the bounce rate of a ball from its kinetic energy
//   - [SettleTime]: when a series drops below a threshold for good
//   - [Summarize]: both of the above plus peak, mean and contact rate
package analysis
