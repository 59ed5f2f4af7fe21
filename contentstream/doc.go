// Package contentstream tokenizes PDF content streams into operations.
//
// A content stream is a sequence of operands followed by an operator. The
// [Parser] reads it one [Operation] at a time:
//
//	p := contentstream.NewParser(data)
//	for {
//	    op, err := p.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    var syn *contentstream.SyntaxError
//	    if errors.As(err, &syn) {
//	        continue // the parser has already skipped the bad bytes
//	    }
//	    fmt.Println(op.Operator, op.Operands)
//	}
//
// [Parser.Parse] collects the whole stream at once.
//
// Comments are skipped. Inline images (BI ... ID ... EI) are returned as a
// single BI operation carrying the image dictionary; the sample data is
// never decoded.
//
// [Source] is the interface the text interpreter consumes, so callers can
// supply operations from somewhere other than raw bytes.
package contentstream
