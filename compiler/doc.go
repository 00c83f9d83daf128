/*

Process of compilation

Program Text ->
	parse ->
Abstract Syntax Tree (ast) ->
	check ->
Typed Syntax Tree (ast) ->
	lower ->
Control Flow Graph IR (cfg) ->
	compile ->
Binary Object (obj) ->
	link ->
Binary Executable

This module currently carries the typed tree handles (ast), the type
handles (tp) and the CFG IR (cfg). Parsing, checking, lowering and
code generation are the phases around this layer.

*/
package compiler
