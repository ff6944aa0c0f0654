// Package sweep drives the merge pass over a game root directory.
//
// For every immediate subdirectory it classifies the title, backs the
// original files up, invokes the merge tool, and either commits the result
// per the resolved retention decision or rolls the title back to its exact
// prior layout. One title's failure never stops the sweep; every title ends
// in a terminal outcome collected into a Report.
package sweep
