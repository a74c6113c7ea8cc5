// Package preflight provides readiness checks for the binaries, directories,
// and credentials a pipeline run depends on.
//
// These checks run in two contexts:
//   - The pipeline calls RunAll before processing a job. If a required check
//     fails, the run stops before spending minutes on a doomed transcription.
//   - The CLI "subweave status" command uses individual check functions to
//     display environment health.
package preflight
