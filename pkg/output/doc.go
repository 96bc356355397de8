// Package output renders build results for the command line: styled
// terminal text, plain text or JSON, plus an optional tree of the image.
package output
