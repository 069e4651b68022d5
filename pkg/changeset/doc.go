// Package changeset models a pending bulk rename.
//
// A workspace directory carries two sidecar files, .mmv.sources and
// .mmv.targets. Line N of the first names a file relative to the
// workspace; line N of the second is the Action for it. The user edits the
// targets file by hand, so reading the pair back (Load) may produce an
// Import whose line counts disagree. Only a clean Import can be promoted
// to a ChangeSet, which is what update reconciles and execute applies.
//
// All ordering goes through ComparePaths so the scanner, the exported
// sidecars and the executor agree on one sequence.
package changeset
