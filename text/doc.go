// Package text interprets the operators of a page content stream and turns
// every text-showing operator into a positioned [model.TextRun].
//
// The [Interpreter] tracks the graphics state stack, the text and text line
// matrices and the page's fonts. Each run it produces is handed to every
// registered [RunConsumer] before the next operator is read, so consumers
// see runs in content stream order:
//
//	in := text.NewInterpreter(logger, detector, tester)
//	err := in.Run(1, contentstream.NewParser(data), page)
//
// Malformed input never stops a page. Unbalanced Q operators, unknown font
// resources and bad operands are reported through the handler set with
// [Interpreter.OnWarning] and interpretation carries on.
package text
