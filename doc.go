// Package vfpu compiles arithmetic expressions to postfix programs and
// evaluates them as float64.
//
// An expression is compiled once and can then be evaluated any number of
// times. Variables and custom functions are looked up each time the program is
// evaluated, so the usual way to compute a function over a range of inputs is
// to compile it, then alternate DefineVar and Eval:
//
//	c := vfpu.New(vfpu.SetVar("x", 0))
//	if err := c.Compile("2x^2 - 3x + 1"); err != nil {
//		// ...
//	}
//	for x := 0.0; x <= 1; x += 0.25 {
//		c.DefineVar("x", x)
//		y, _ := c.Eval()
//		fmt.Println(x, y)
//	}
//
// The syntax has the operators + - * / and ^, with - also meaning negation,
// round brackets, decimal numbers, and the built-in functions listed by
// Builtins. A number directly followed by a variable or function is a
// multiplication: "4sin(2.1)" is "4*sin(2.1)", and "2x^2" is "2*x^2".
// Exponentiation groups from the right, and negation binds tighter than it,
// so "-2^2" is 4.
package vfpu
