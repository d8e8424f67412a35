// SPDX-License-Identifier: EPL-2.0

// Package supervisor keeps a playback alive for the length of its buffer.
//
// Run sleeps one Interval per whole second of the buffer, truncating any
// fractional remainder, then once more for trailing audio. Every iteration
// advances the progress display, drains the engine's ErrorChannel into the
// log and picks up an inspection snapshot when one is waiting. Neither poll
// blocks.
//
//	sup := supervisor.Supervisor{
//	    Errors:      errs,
//	    Inspections: snapshots,
//	    Display:     bar,
//	    Logger:      logger,
//	}
//	report, err := sup.Run(ctx, buf.Duration())
//
// Cancelling ctx ends the run early with ctx.Err().
package supervisor
