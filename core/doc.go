// Package core provides the PDF object types shared by the content-stream
// tokenizer and the font loader.
//
// PDF defines eight basic object types, all implemented as types satisfying
// the Object interface:
//
//   - [Null] - represents the PDF null object
//   - [Bool] - represents PDF boolean values (true/false)
//   - [Int] - represents PDF integers
//   - [Real] - represents PDF real numbers (floating point)
//   - [String] - represents PDF string objects (literal or hexadecimal)
//   - [Name] - represents PDF name objects (e.g., /Type, /Font)
//   - [Array] - represents PDF arrays
//   - [Dict] - represents PDF dictionaries
//
// Additionally, [Stream] represents a PDF stream whose data has already
// been decoded by the document reader.
//
// Operands of content-stream operators are Objects, and font dictionaries
// are handed to the font package as a [Dict] with indirect references
// already resolved.
//
// # Numbers
//
// Operands that may be either integer or real are read with [Number]:
//
//	if size, ok := core.Number(op.Operands[1]); ok {
//	    ...
//	}
package core
