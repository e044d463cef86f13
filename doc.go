// Package escpos builds receipts for ESC/POS thermal printers.
//
// A Receipt accumulates styled text through a small event API
// (AddText, SetFormat, NewLine, Finish), wraps it against the
// printer's column budget, and PrintTo serializes the result as
// ESC/POS commands over a Transport (USB, TCP, or an ANSI console
// preview).
//
// Subpackages split the pipeline. printer/codepage folds UTF-8 into
// code page 437, printer/layout wraps styled spans into lines,
// printer serializes documents with state diffing, and
// printer/transport carries the bytes to the device.
package escpos
