// Package language normalizes language hints into the ISO 639-1 codes the
// recognition tools expect.
//
// Inputs arrive in three shapes: BCP 47 tags from config ("en-US"), ISO
// 639-2 tags from container metadata ("eng"), and full word forms typed by
// users ("english"). All conversions are consolidated here so the whisper
// and ffprobe layers agree on one spelling.
package language
