// Package phonetic turns Hebrew words into phonetic keys for rhyme
// comparison.
//
// Two transcribers share the Transcriber interface. Fallback is a
// deterministic letter-to-sound table that keeps only the word ending.
// External asks a grapheme-to-phoneme model (OpenAI or Gemini, wrapped in a
// circuit breaker) and drops back to Fallback for any word the model cannot
// handle. The variant is chosen once at start-up by New.
package phonetic
