// Package expr evaluates integer expressions over bigint.Int values.
//
// The grammar, from loosest to tightest binding:
//
//	stmt    = ident "=" stmt | compare
//	compare = shift { ("<" | "<=" | ">" | ">=" | "==" | "!=") shift }
//	shift   = sum { ("<<" | ">>") sum }
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/" | "%") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | ident | ident "(" args ")" | "(" stmt ")"
//
// Numbers accept the prefixes 0x, 0o and 0b and "_" digit separators.
// Division and remainder truncate toward zero. Comparisons yield 1 or 0.
// The identifier "_" holds the last result of an Env.
package expr
