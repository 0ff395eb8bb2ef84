// Package sexp reads tokenizer output into a forest of S-expression nodes.
//
// A node is either an atom (symbol, number or double quoted string, all kept
// as text) or a list of nodes:
//
//	<forest> :: <node>*
//	<node>   :: <atom> | "(" <node>* ")" | "'" <node>
//	<atom>   :: any token except "(" and ")"
//
// The reader keeps an explicit stack of open lists, so nesting depth is
// bounded by memory only. With quote shorthand enabled, '(a b) reads as
// (quote a b) and 'x reads as the string atom "x".
package sexp
