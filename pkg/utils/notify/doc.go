// Package notify writes the user-facing lines of harborsync commands.
//
// Every line starts with a symbol telling its kind: success (✔), error (✗), warning (⚠),
// info (ℹ), activity (►) and generate (✚). Titles open a stage with an emoji, and
// [StageSeparatingWriter] puts a blank line in front of every title after the first.
package notify
