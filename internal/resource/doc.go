// Package resource bounds the work admitted by batch matching.
//
// A Controller limits how many query keys are being probed at once
// (a weighted semaphore) and how fast keys are admitted (a token bucket).
// A nil *Controller admits everything, so callers never need to branch.
package resource
