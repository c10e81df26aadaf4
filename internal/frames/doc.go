// Package frames defines the shared data model for the selection
// engine: scenes from the external detector, per-frame candidates, and
// the face/audio/crop annotations attached to them as the pipeline
// progresses. All types round-trip through JSON losslessly.
package frames
