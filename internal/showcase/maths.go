package showcase

import (
	"strconv"

	"github.com/matzehuels/textblock/pkg/block"
)

func num(n int) block.Block { return block.OfText(strconv.Itoa(n)) }

func sym(s string) block.Block { return block.OfText(s) }

func add(a, b block.Block) block.Block {
	return a.BesideCenterBottom(sym(" + "), ' ').BesideCenterBottom(b, ' ')
}

// pow raises exponent above the right edge of base.
func pow(base, exponent block.Block) block.Block {
	return block.Must(base.PadTop(exponent.Height(), ' ')).BesideTop(exponent, ' ')
}

func pow2(base block.Block) block.Block { return pow(base, num(2)) }

func mult(a, b block.Block) block.Block {
	return block.Must(a.PadRight(1, ' ')).BesideCenterBottom(b, ' ')
}

// div sets dividend over divisor with a fraction bar as wide as the wider.
func div(dividend, divisor block.Block) block.Block {
	bar := block.Must(block.Empty(max(dividend.Width(), divisor.Width()), 1, '─'))
	return dividend.StackLeft(bar, ' ').StackCenterRight(divisor, ' ')
}

func apply(name, argument block.Block) block.Block {
	return name.BesideCenterBottom(paren(argument), ' ')
}

// column builds a one-column block of the given height from a top, a
// repeated middle and a bottom character.
func column(height int, top, middle, bottom rune) block.Block {
	mid := block.Must(block.Empty(1, height-2, middle))
	return block.OfText(string(top)).StackLeft(mid, ' ').StackLeft(block.OfText(string(bottom)), ' ')
}

// paren wraps expr in parentheses that grow with its height.
func paren(expr block.Block) block.Block {
	l, r := sym("("), sym(")")
	if h := expr.Height(); h > 1 {
		l = column(h, '⎛', '⎜', '⎝')
		r = column(h, '⎞', '⎟', '⎠')
	}
	return l.BesideCenterBottom(expr, ' ').BesideCenterBottom(r, ' ')
}

func integral(expr block.Block, differential string) block.Block {
	symbol := sym("⌠").AddText("⎮").AddText("⌡")
	b := block.Must(symbol.PadRight(1, ' ')).BesideCenterTop(expr, ' ')
	return block.Must(b.PadRight(1, ' ')).BesideCenterTop(sym(differential), ' ')
}

func equals(l, r block.Block) block.Block {
	return l.BesideCenterBottom(sym("  =  "), ' ').BesideCenterBottom(r, ' ')
}

// Maths typesets a three-step evaluation of the integral of cos²(x).
func Maths() block.Block {
	e := sym("e")

	expr1 := integral(apply(pow2(sym("cos")), sym("x")), "dx")
	expr2 := integral(
		pow2(paren(div(add(pow(e, sym("ix")), pow(e, sym("-ix"))), num(2)))),
		"dx",
	)
	expr3 := mult(
		div(num(1), num(4)),
		integral(paren(add(pow(e, sym("2ix")), add(num(2), pow(e, sym("-2ix"))))), "dx"),
	)
	expr4 := add(
		mult(div(num(1), num(4)), paren(add(sym("2x"), apply(sym("sin"), sym("2x"))))),
		sym("C"),
	)

	indent := block.Must(block.OfWidth(expr1.Width()))
	line1 := equals(expr1, expr2)
	line2 := equals(indent, expr3)
	line3 := equals(indent, expr4)

	out := block.Must(line1.PadBottom(2, ' ')).StackLeft(line2, ' ')
	return block.Must(out.PadBottom(2, ' ')).StackLeft(line3, ' ')
}
