// Package sample drives a compiled generator graph in rounds until each
// requested collection holds its target number of records.
//
// One Request fully determines the output: the namespace, the optional
// target collection, the count, and the seed. A single deterministic RNG
// is threaded through every generator step, so two runs with equal inputs
// produce byte-identical records. A round that contributes nothing new, or
// a uniqueness backing that runs dry, stops the run with a warning in the
// Result rather than an error — partial output is still output.
package sample
